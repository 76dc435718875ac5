package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nc-news-api/internal/service"
	"github.com/nc-news-api/internal/validation"
	"github.com/nc-news-api/pkg/logger"
	"github.com/rs/zerolog"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.RegisterTags(v); err != nil {
			log.Fatal().Err(err).Msg("Failed to register validators")
		}
	}

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(errorHandler(log))

	// Handlers
	articles := NewArticleHandler(services, log)
	comments := NewCommentHandler(services)
	users := NewUserHandler(services)
	topics := NewTopicHandler(services)

	// Health check
	router.GET("/health", healthCheck(services))
	router.GET("/metrics", metricsHandler(services))

	api := router.Group("/api")
	{
		api.GET("", endpoints)

		api.GET("/topics", Read(topics.List, "topics"))
		api.GET("/topics/:slug", Read(topics.Get, "topic"))

		api.GET("/articles", validateArticleQuery(), Read(articles.List, "articles"))
		api.POST("/articles", Create(articles.Create, "article"))
		api.GET("/articles/:article_id", Read(articles.Get, "article"))
		api.PATCH("/articles/:article_id", Update(articles.Vote, "article"))
		api.DELETE("/articles/:article_id", Delete(articles.Delete))
		api.GET("/articles/:article_id/comments", Read(articles.Comments, "comments"))
		api.POST("/articles/:article_id/comments", Create(articles.AddComment, "comment"))

		api.GET("/comments/:comment_id", Read(comments.Get, "comment"))
		api.PATCH("/comments/:comment_id", Update(comments.Vote, "comment"))
		api.DELETE("/comments/:comment_id", Delete(comments.Delete))

		api.GET("/users", Read(users.List, "users"))
		api.GET("/users/:username", Read(users.Get, "user"))
	}

	router.NoRoute(pathNotFound)

	return router
}

// healthCheck returns the health status
func healthCheck(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, db, code := "healthy", "up", http.StatusOK
		if err := services.Stats.Ping(c.Request.Context()); err != nil {
			status, db, code = "unhealthy", "down", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"database":  db,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   logger.ServiceName,
		})
	}
}

// metricsHandler returns row counts per resource
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := services.Stats.Counts(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"database":  counts,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("request_id", c.GetString(requestIDKey)).
					Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": msgInternalError,
				})
			}
		}()
		c.Next()
	}
}

// requestIDMiddleware propagates X-Request-ID or assigns a new one
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
