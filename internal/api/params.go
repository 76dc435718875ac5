package api

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/validation"
)

const filterKey = "article_filter"

// pathID parses an integer path parameter
func pathID(c *gin.Context, name string) (int, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrBadRequest, name, raw)
	}
	return int(id), nil
}

// bindJSON decodes and validates the request body into obj
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

// voteDelta reads inc_votes from the body. An empty body counts as zero.
func voteDelta(c *gin.Context) (int, error) {
	var body models.VoteUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return body.Delta(), nil
}

// validateArticleQuery checks the article listing query string and stores
// the resulting filter for the handler.
func validateArticleQuery() gin.HandlerFunc {
	return func(c *gin.Context) {
		var query validation.ArticleQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			abortWithError(c, validation.Translate(err))
			return
		}

		filter, err := query.Filter()
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(filterKey, filter)
		c.Next()
	}
}

func articleFilter(c *gin.Context) models.ArticleFilter {
	filter, _ := c.Get(filterKey)
	f, _ := filter.(models.ArticleFilter)
	return f
}
