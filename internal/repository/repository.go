package repository

import (
	"context"

	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/internal/models"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, error)
	GetByID(ctx context.Context, id int) (*models.Article, error)
	Create(ctx context.Context, article *models.NewArticle) (*models.Article, error)
	UpdateVotes(ctx context.Context, id int, delta int) (*models.Article, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByArticle(ctx context.Context, articleID int) ([]models.Comment, error)
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	Create(ctx context.Context, comment *models.NewComment) (*models.Comment, error)
	UpdateVotes(ctx context.Context, id int, delta int) (*models.Comment, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context) ([]models.UserSummary, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// TopicRepository defines the interface for topic data operations
type TopicRepository interface {
	List(ctx context.Context) ([]models.Topic, error)
	GetBySlug(ctx context.Context, slug string) (*models.Topic, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
	Comment CommentRepository
	User    UserRepository
	Topic   TopicRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
		User:    NewUserRepo(db),
		Topic:   NewTopicRepo(db),
	}
}
