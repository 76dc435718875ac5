package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Read wraps fn so that its result is returned as 200 {key: result}.
func Read[T any](fn func(c *gin.Context) (T, error), key string) gin.HandlerFunc {
	return respond(fn, key, http.StatusOK)
}

// Create wraps fn so that its result is returned as 201 {key: result}.
func Create[T any](fn func(c *gin.Context) (T, error), key string) gin.HandlerFunc {
	return respond(fn, key, http.StatusCreated)
}

// Update wraps fn so that its result is returned as 200 {key: result}.
// A nil result renders as {key: null}.
func Update[T any](fn func(c *gin.Context) (T, error), key string) gin.HandlerFunc {
	return respond(fn, key, http.StatusOK)
}

// Delete wraps fn so that success is an empty 204.
func Delete(fn func(c *gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := fn(c); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func respond[T any](fn func(c *gin.Context) (T, error), key string, status int) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := fn(c)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(status, gin.H{key: result})
	}
}

// abortWithError hands err to errorHandler, which writes the response
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
