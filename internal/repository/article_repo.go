package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// List runs the collection query built from filter
func (r *articleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, error) {
	query, args, err := BuildArticlesQuery(filter)
	if err != nil {
		return nil, err
	}

	articles := []models.Article{}
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, mapError(err)
	}
	return articles, nil
}

// GetByID retrieves an article with its comment count
func (r *articleRepo) GetByID(ctx context.Context, id int) (*models.Article, error) {
	query := articlesWithCommentCount + `
	WHERE articles.article_id = $1
	GROUP BY articles.article_id`

	var article models.Article
	if err := r.db.GetContext(ctx, &article, query, id); err != nil {
		return nil, mapError(err)
	}
	return &article, nil
}

// Create inserts a new article and returns the stored row
func (r *articleRepo) Create(ctx context.Context, article *models.NewArticle) (*models.Article, error) {
	query := `
		INSERT INTO articles (title, topic, author, body)
		VALUES (:title, :topic, :author, :body)
		RETURNING ` + articleColumns

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer stmt.Close()

	var created models.Article
	if err := stmt.GetContext(ctx, &created, article); err != nil {
		return nil, mapError(err)
	}
	return &created, nil
}

// UpdateVotes adds delta to the article's votes. The statement adds or
// subtracts |delta| depending on its sign. A row deleted since the caller's
// existence check yields (nil, nil).
func (r *articleRepo) UpdateVotes(ctx context.Context, id int, delta int) (*models.Article, error) {
	op, magnitude := voteOperator(delta)
	query := fmt.Sprintf(`
		UPDATE articles
		SET votes = votes %s $1
		WHERE article_id = $2
		RETURNING %s`, op, articleColumns)

	var article models.Article
	err := r.db.GetContext(ctx, &article, query, magnitude, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &article, nil
}

// Delete removes an article; its comments cascade in the schema
func (r *articleRepo) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE article_id = $1`, id)
	return mapError(err)
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles")
	return count, mapError(err)
}
