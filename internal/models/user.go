package models

// User represents a user in the system
type User struct {
	Username  string `json:"username" db:"username"`
	Name      string `json:"name" db:"name"`
	AvatarURL string `json:"avatar_url" db:"avatar_url"`
}

// UserSummary is the projection returned by the users listing
type UserSummary struct {
	Username string `json:"username" db:"username"`
}
