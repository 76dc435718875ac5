package api

import (
	"github.com/gin-gonic/gin"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/service"
)

// TopicHandler handles topic endpoints
type TopicHandler struct {
	topics service.TopicService
}

// NewTopicHandler creates a new TopicHandler
func NewTopicHandler(services *service.Services) *TopicHandler {
	return &TopicHandler{topics: services.Topic}
}

// List handles GET /api/topics
func (h *TopicHandler) List(c *gin.Context) ([]models.Topic, error) {
	return h.topics.List(c.Request.Context())
}

// Get handles GET /api/topics/:slug
func (h *TopicHandler) Get(c *gin.Context) (*models.Topic, error) {
	return h.topics.Get(c.Request.Context(), c.Param("slug"))
}
