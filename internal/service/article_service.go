package service

import (
	"context"

	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newArticleService(repos *repository.Repositories, log zerolog.Logger) *articleService {
	return &articleService{
		repos: repos,
		log:   log.With().Str("service", "articles").Logger(),
	}
}

// List returns the filtered, sorted page of articles.
func (s *articleService) List(ctx context.Context, filter models.ArticleFilter) (interface{}, error) {
	articles, err := s.repos.Article.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.Topic == "" {
		return articles, nil
	}

	switch len(articles) {
	case 0:
		// an unknown topic is not the same as a topic without articles
		if _, err := s.repos.Topic.GetBySlug(ctx, filter.Topic); err != nil {
			return nil, err
		}
	case 1:
		return &articles[0], nil
	}
	return articles, nil
}

func (s *articleService) Get(ctx context.Context, id int) (*models.Article, error) {
	return s.repos.Article.GetByID(ctx, id)
}

// Create inserts an article. Unknown authors or topics surface as
// repository.ErrConstraint.
func (s *articleService) Create(ctx context.Context, article *models.NewArticle) (*models.Article, error) {
	article.Author = trimQuotes(article.Author)
	article.Title = trimQuotes(article.Title)
	article.Body = trimQuotes(article.Body)
	article.Topic = trimQuotes(article.Topic)

	created, err := s.repos.Article.Create(ctx, article)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("article_id", created.ArticleID).
		Str("author", created.Author).
		Msg("Article created")
	return created, nil
}

// Vote adds delta to the article's votes. The existence check and the update
// are separate statements, so a concurrent delete yields a nil article.
func (s *articleService) Vote(ctx context.Context, id int, delta int) (*models.Article, error) {
	if _, err := s.repos.Article.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repos.Article.UpdateVotes(ctx, id, delta)
}

func (s *articleService) Delete(ctx context.Context, id int) error {
	if _, err := s.repos.Article.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repos.Article.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int("article_id", id).Msg("Article deleted")
	return nil
}

// Comments lists an article's comments, newest first.
func (s *articleService) Comments(ctx context.Context, id int) ([]models.Comment, error) {
	if _, err := s.repos.Article.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repos.Comment.ListByArticle(ctx, id)
}

func (s *articleService) AddComment(ctx context.Context, id int, comment *models.NewComment) (*models.Comment, error) {
	if _, err := s.repos.Article.GetByID(ctx, id); err != nil {
		return nil, err
	}

	comment.ArticleID = id
	comment.Author = trimQuotes(comment.Author)
	comment.Body = trimQuotes(comment.Body)

	created, err := s.repos.Comment.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("article_id", id).
		Int("comment_id", created.CommentID).
		Msg("Comment created")
	return created, nil
}

// trimQuotes removes one pair of surrounding single quotes.
func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}
