package service

import (
	"context"

	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
)

type topicService struct {
	topics repository.TopicRepository
}

func newTopicService(topics repository.TopicRepository) *topicService {
	return &topicService{topics: topics}
}

func (s *topicService) List(ctx context.Context) ([]models.Topic, error) {
	return s.topics.List(ctx)
}

func (s *topicService) Get(ctx context.Context, slug string) (*models.Topic, error) {
	return s.topics.GetBySlug(ctx, slug)
}
