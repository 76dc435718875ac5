package models

import "math"

// Article represents an article in the system.
// CommentCount is only populated by reads that aggregate comments.
type Article struct {
	ArticleID    int       `json:"article_id" db:"article_id"`
	Title        string    `json:"title" db:"title"`
	Topic        string    `json:"topic" db:"topic"`
	Author       string    `json:"author" db:"author"`
	Body         string    `json:"body" db:"body"`
	CreatedAt    Timestamp `json:"created_at" db:"created_at"`
	Votes        int       `json:"votes" db:"votes"`
	CommentCount *int64    `json:"comment_count,omitempty,string" db:"comment_count"`
}

// NewArticle is the request body for POST /api/articles
type NewArticle struct {
	Author string `json:"author" db:"author" binding:"required"`
	Title  string `json:"title" db:"title" binding:"required"`
	Body   string `json:"body" db:"body" binding:"required"`
	Topic  string `json:"topic" db:"topic" binding:"required"`
}

// ArticleFilter controls article collection reads.
type ArticleFilter struct {
	Topic  string
	SortBy string
	Order  string
	Limit  int
	Page   int
}

// DefaultPageSize is used when a page is requested without a limit
const DefaultPageSize = 10

// Offset returns the number of rows skipped before the requested page.
// It saturates at math.MaxInt instead of overflowing.
func (f ArticleFilter) Offset() int {
	if f.Limit <= 0 || f.Page <= 1 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (f.Page - 1) * f.Limit
}
