package api

import (
	"github.com/gin-gonic/gin"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/service"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	comments service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services) *CommentHandler {
	return &CommentHandler{comments: services.Comment}
}

// Get handles GET /api/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) (*models.Comment, error) {
	id, err := pathID(c, "comment_id")
	if err != nil {
		return nil, err
	}
	return h.comments.Get(c.Request.Context(), id)
}

// Vote handles PATCH /api/comments/:comment_id
func (h *CommentHandler) Vote(c *gin.Context) (*models.Comment, error) {
	id, err := pathID(c, "comment_id")
	if err != nil {
		return nil, err
	}
	delta, err := voteDelta(c)
	if err != nil {
		return nil, err
	}
	return h.comments.Vote(c.Request.Context(), id, delta)
}

// Delete handles DELETE /api/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) error {
	id, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}
	return h.comments.Delete(c.Request.Context(), id)
}
