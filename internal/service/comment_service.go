package service

import (
	"context"

	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments repository.CommentRepository
	log      zerolog.Logger
}

func newCommentService(comments repository.CommentRepository, log zerolog.Logger) *commentService {
	return &commentService{
		comments: comments,
		log:      log.With().Str("service", "comments").Logger(),
	}
}

func (s *commentService) Get(ctx context.Context, id int) (*models.Comment, error) {
	return s.comments.GetByID(ctx, id)
}

// Vote adds delta to the comment's votes after checking it exists.
func (s *commentService) Vote(ctx context.Context, id int, delta int) (*models.Comment, error) {
	if _, err := s.comments.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.comments.UpdateVotes(ctx, id, delta)
}

func (s *commentService) Delete(ctx context.Context, id int) error {
	if _, err := s.comments.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int("comment_id", id).Msg("Comment deleted")
	return nil
}
