package service

import (
	"context"
	"fmt"

	"github.com/nc-news-api/internal/repository"
)

type statsService struct {
	repos *repository.Repositories
	db    Pinger
}

func newStatsService(repos *repository.Repositories, db Pinger) *statsService {
	return &statsService{repos: repos, db: db}
}

// Counts returns the number of rows per resource
func (s *statsService) Counts(ctx context.Context) (map[string]int, error) {
	counters := []struct {
		name  string
		count func(context.Context) (int, error)
	}{
		{"topics", s.repos.Topic.Count},
		{"users", s.repos.User.Count},
		{"articles", s.repos.Article.Count},
		{"comments", s.repos.Comment.Count},
	}

	counts := make(map[string]int, len(counters))
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
		counts[c.name] = n
	}
	return counts, nil
}

func (s *statsService) Ping(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}
