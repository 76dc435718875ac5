package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/internal/models"
)

const commentColumns = `comment_id, article_id, author, body, votes, created_at`

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// ListByArticle returns an article's comments, newest first
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC, comment_id DESC`

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, articleID); err != nil {
		return nil, mapError(err)
	}
	return comments, nil
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = $1`

	var comment models.Comment
	if err := r.db.GetContext(ctx, &comment, query, id); err != nil {
		return nil, mapError(err)
	}
	return &comment, nil
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.NewComment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (article_id, author, body)
		VALUES (:article_id, :author, :body)
		RETURNING ` + commentColumns

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer stmt.Close()

	var created models.Comment
	if err := stmt.GetContext(ctx, &created, comment); err != nil {
		return nil, mapError(err)
	}
	return &created, nil
}

// UpdateVotes adds delta to the comment's votes, see articleRepo.UpdateVotes
func (r *commentRepo) UpdateVotes(ctx context.Context, id int, delta int) (*models.Comment, error) {
	op, magnitude := voteOperator(delta)
	query := fmt.Sprintf(`
		UPDATE comments
		SET votes = votes %s $1
		WHERE comment_id = $2
		RETURNING %s`, op, commentColumns)

	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, query, magnitude, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &comment, nil
}

// Delete removes a comment
func (r *commentRepo) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE comment_id = $1`, id)
	return mapError(err)
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM comments")
	return count, mapError(err)
}
