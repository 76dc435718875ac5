package repository

import (
	"context"

	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/internal/models"
)

type topicRepo struct {
	db *database.DB
}

// NewTopicRepo creates a new topic repository
func NewTopicRepo(db *database.DB) TopicRepository {
	return &topicRepo{db: db}
}

func (r *topicRepo) List(ctx context.Context) ([]models.Topic, error) {
	topics := []models.Topic{}
	if err := r.db.SelectContext(ctx, &topics, `SELECT slug, description FROM topics`); err != nil {
		return nil, mapError(err)
	}
	return topics, nil
}

func (r *topicRepo) GetBySlug(ctx context.Context, slug string) (*models.Topic, error) {
	var topic models.Topic
	err := r.db.GetContext(ctx, &topic, `SELECT slug, description FROM topics WHERE slug = $1`, slug)
	if err != nil {
		return nil, mapError(err)
	}
	return &topic, nil
}

func (r *topicRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM topics")
	return count, mapError(err)
}
