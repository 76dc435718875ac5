package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nc-news-api/internal/repository"
	"github.com/nc-news-api/internal/validation"
	"github.com/rs/zerolog"
)

// ErrBadRequest marks malformed path identifiers and request bodies
var ErrBadRequest = errors.New("bad request")

const (
	msgBadRequest    = "Bad Request"
	msgNotFound      = "No results found"
	msgInternalError = "Internal Server Error"
	msgPathNotFound  = "Path not found"
)

// statusFor maps an error to the response status and message
func statusFor(err error) (int, string) {
	var verr *validation.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusBadRequest, msgNotFound
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, repository.ErrConstraint),
		errors.Is(err, repository.ErrInvalidSortColumn),
		errors.Is(err, repository.ErrInvalidOrder):
		return http.StatusBadRequest, msgBadRequest
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}

// errorHandler writes the {message} body for the last error attached to the
// context. It is the only place error responses are produced.
func errorHandler(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, message := statusFor(err)

		event := log.Warn()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Err(err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Msg("Request failed")

		c.JSON(status, gin.H{"message": message})
	}
}

func pathNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": msgPathNotFound})
}
