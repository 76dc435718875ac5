package api

import (
	"github.com/gin-gonic/gin"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/service"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	articles service.ArticleService
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articles: services.Article,
		log:      log.With().Str("handler", "articles").Logger(),
	}
}

// List handles GET /api/articles
func (h *ArticleHandler) List(c *gin.Context) (interface{}, error) {
	filter := articleFilter(c)
	h.log.Debug().
		Str("topic", filter.Topic).
		Str("sort_by", filter.SortBy).
		Str("order", filter.Order).
		Int("limit", filter.Limit).
		Int("page", filter.Page).
		Msg("Listing articles")
	return h.articles.List(c.Request.Context(), filter)
}

// Get handles GET /api/articles/:article_id
func (h *ArticleHandler) Get(c *gin.Context) (*models.Article, error) {
	id, err := pathID(c, "article_id")
	if err != nil {
		return nil, err
	}
	return h.articles.Get(c.Request.Context(), id)
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) (*models.Article, error) {
	var body models.NewArticle
	if err := bindJSON(c, &body); err != nil {
		return nil, err
	}
	return h.articles.Create(c.Request.Context(), &body)
}

// Vote handles PATCH /api/articles/:article_id
func (h *ArticleHandler) Vote(c *gin.Context) (*models.Article, error) {
	id, err := pathID(c, "article_id")
	if err != nil {
		return nil, err
	}
	delta, err := voteDelta(c)
	if err != nil {
		return nil, err
	}
	return h.articles.Vote(c.Request.Context(), id, delta)
}

// Delete handles DELETE /api/articles/:article_id
func (h *ArticleHandler) Delete(c *gin.Context) error {
	id, err := pathID(c, "article_id")
	if err != nil {
		return err
	}
	return h.articles.Delete(c.Request.Context(), id)
}

// Comments handles GET /api/articles/:article_id/comments
func (h *ArticleHandler) Comments(c *gin.Context) ([]models.Comment, error) {
	id, err := pathID(c, "article_id")
	if err != nil {
		return nil, err
	}
	return h.articles.Comments(c.Request.Context(), id)
}

// AddComment handles POST /api/articles/:article_id/comments
func (h *ArticleHandler) AddComment(c *gin.Context) (*models.Comment, error) {
	id, err := pathID(c, "article_id")
	if err != nil {
		return nil, err
	}
	var body models.NewComment
	if err := bindJSON(c, &body); err != nil {
		return nil, err
	}
	return h.articles.AddComment(c.Request.Context(), id, &body)
}
