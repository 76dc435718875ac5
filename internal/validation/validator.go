// Package validation checks article listing query strings before they reach
// the service layer.
package validation

import (
	"errors"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
)

// ValidationError is a client error carrying the message returned to the caller.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ArticleQuery is the query string accepted by GET /api/articles.
// Field order is the order in which failures are reported.
type ArticleQuery struct {
	Limit   string `form:"limit" binding:"omitempty,number"`
	Page    string `form:"p" binding:"omitempty,number"`
	Order   string `form:"order" binding:"omitempty,sortorder"`
	OrderBy string `form:"order_by" binding:"omitempty,sortorder"`
	SortBy  string `form:"sort_by" binding:"omitempty,sortcolumn"`
	Topic   string `form:"topic"`
}

var messages = map[string]string{
	"Limit":   "limit must be a number",
	"Page":    "p must be a number",
	"Order":   "order must be either 'asc' or 'desc'",
	"OrderBy": "order must be either 'asc' or 'desc'",
	"SortBy":  "sort_by must be a valid column",
}

var fieldNames = map[string]string{
	"Limit":   "limit",
	"Page":    "p",
	"Order":   "order",
	"OrderBy": "order_by",
	"SortBy":  "sort_by",
}

// RegisterTags adds the custom tags used by ArticleQuery to v.
func RegisterTags(v *validator.Validate) error {
	if err := v.RegisterValidation("sortcolumn", func(fl validator.FieldLevel) bool {
		return repository.IsArticleSortColumn(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("sortorder", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "asc", "desc":
			return true
		}
		return false
	})
}

// New returns a validator reading the same struct tags as gin's binding.
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterTags(v); err != nil {
		panic(err)
	}
	return v
}

// Translate turns a validator failure into the first ValidationError in
// field order. Other errors are returned unchanged.
func Translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	field := verrs[0].StructField()
	msg, ok := messages[field]
	if !ok {
		return err
	}
	return &ValidationError{Field: fieldNames[field], Message: msg}
}

// Filter converts a validated query into a repository filter.
// A page without a limit uses models.DefaultPageSize.
func (q ArticleQuery) Filter() (models.ArticleFilter, error) {
	filter := models.ArticleFilter{
		Topic:  q.Topic,
		SortBy: q.SortBy,
		Order:  q.Order,
	}
	if filter.Order == "" {
		filter.Order = q.OrderBy
	}

	if q.Limit != "" {
		limit, err := strconv.Atoi(q.Limit)
		if err != nil {
			return filter, &ValidationError{Field: "limit", Message: messages["Limit"]}
		}
		filter.Limit = limit
	}
	if q.Page != "" {
		page, err := strconv.Atoi(q.Page)
		if err != nil {
			return filter, &ValidationError{Field: "p", Message: messages["Page"]}
		}
		filter.Page = page
		if filter.Limit == 0 && page > 1 {
			filter.Limit = models.DefaultPageSize
		}
	}

	// the page must start at a row number that fits in an int
	if filter.Limit > 0 && filter.Page > 1 && filter.Page-1 > math.MaxInt/filter.Limit {
		return filter, &ValidationError{Field: "limit", Message: messages["Limit"]}
	}

	return filter, nil
}
