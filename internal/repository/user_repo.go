package repository

import (
	"context"

	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// List returns every username in storage order
func (r *userRepo) List(ctx context.Context) ([]models.UserSummary, error) {
	users := []models.UserSummary{}
	if err := r.db.SelectContext(ctx, &users, `SELECT username FROM users`); err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

// GetByUsername retrieves a user by primary key
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`SELECT username, name, avatar_url FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// Count returns the total number of users
func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users")
	return count, mapError(err)
}
