package models

// Comment represents a comment on an article
type Comment struct {
	CommentID int       `json:"comment_id" db:"comment_id"`
	ArticleID int       `json:"article_id" db:"article_id"`
	Author    string    `json:"author" db:"author"`
	Body      string    `json:"body" db:"body"`
	Votes     int       `json:"votes" db:"votes"`
	CreatedAt Timestamp `json:"created_at" db:"created_at"`
}

// NewComment is the request body for POST /api/articles/:article_id/comments
type NewComment struct {
	ArticleID int    `json:"-" db:"article_id"`
	Author    string `json:"author" db:"author" binding:"required"`
	Body      string `json:"body" db:"body" binding:"required"`
}
