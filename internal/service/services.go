package service

import (
	"context"

	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for article operations
type ArticleService interface {
	// List returns []models.Article, or a single *models.Article when a
	// topic filter matches exactly one row.
	List(ctx context.Context, filter models.ArticleFilter) (interface{}, error)
	Get(ctx context.Context, id int) (*models.Article, error)
	Create(ctx context.Context, article *models.NewArticle) (*models.Article, error)
	Vote(ctx context.Context, id int, delta int) (*models.Article, error)
	Delete(ctx context.Context, id int) error
	Comments(ctx context.Context, id int) ([]models.Comment, error)
	AddComment(ctx context.Context, id int, comment *models.NewComment) (*models.Comment, error)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	Get(ctx context.Context, id int) (*models.Comment, error)
	Vote(ctx context.Context, id int, delta int) (*models.Comment, error)
	Delete(ctx context.Context, id int) error
}

// UserService defines the interface for user operations
type UserService interface {
	List(ctx context.Context) ([]models.UserSummary, error)
	Get(ctx context.Context, username string) (*models.User, error)
}

// TopicService defines the interface for topic operations
type TopicService interface {
	List(ctx context.Context) ([]models.Topic, error)
	Get(ctx context.Context, slug string) (*models.Topic, error)
}

// StatsService reports row counts and database health
type StatsService interface {
	Counts(ctx context.Context) (map[string]int, error)
	Ping(ctx context.Context) error
}

// Pinger checks that the database is reachable
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Article ArticleService
	Comment CommentService
	User    UserService
	Topic   TopicService
	Stats   StatsService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, db Pinger, log zerolog.Logger) *Services {
	return &Services{
		Article: newArticleService(repos, log),
		Comment: newCommentService(repos.Comment, log),
		User:    newUserService(repos.User),
		Topic:   newTopicService(repos.Topic),
		Stats:   newStatsService(repos, db),
	}
}
