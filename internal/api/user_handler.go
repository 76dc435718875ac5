package api

import (
	"github.com/gin-gonic/gin"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/service"
)

// UserHandler handles user endpoints
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services) *UserHandler {
	return &UserHandler{users: services.User}
}

// List handles GET /api/users
func (h *UserHandler) List(c *gin.Context) ([]models.UserSummary, error) {
	return h.users.List(c.Request.Context())
}

// Get handles GET /api/users/:username
func (h *UserHandler) Get(c *gin.Context) (*models.User, error) {
	return h.users.Get(c.Request.Context(), c.Param("username"))
}
