package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nc-news-api/internal/models"
)

// DefaultSortColumn orders article listings when no sort_by is given
const DefaultSortColumn = "created_at"

var (
	ErrInvalidSortColumn = errors.New("invalid sort column")
	ErrInvalidOrder      = errors.New("invalid sort order")
)

// articleSortColumns is the whitelist of sort_by values. Only these
// expressions are ever interpolated into SQL.
var articleSortColumns = map[string]string{
	"article_id":    "articles.article_id",
	"title":         "articles.title",
	"topic":         "articles.topic",
	"author":        "articles.author",
	"body":          "articles.body",
	"created_at":    "articles.created_at",
	"votes":         "articles.votes",
	"comment_count": "comment_count",
}

// IsArticleSortColumn reports whether name may be used as sort_by.
func IsArticleSortColumn(name string) bool {
	_, ok := articleSortColumns[name]
	return ok
}

const articleColumns = `article_id, title, topic, author, body, created_at, votes`

const articlesWithCommentCount = `
	SELECT articles.article_id, articles.title, articles.topic, articles.author, articles.body,
		articles.created_at, articles.votes, COUNT(comments.comment_id) AS comment_count
	FROM articles
	LEFT JOIN comments ON comments.article_id = articles.article_id`

// BuildArticlesQuery returns the collection query for filter and its arguments.
func BuildArticlesQuery(filter models.ArticleFilter) (string, []interface{}, error) {
	column := filter.SortBy
	if column == "" {
		column = DefaultSortColumn
	}
	sortExpr, ok := articleSortColumns[column]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidSortColumn, column)
	}

	var direction string
	switch filter.Order {
	case "", "desc":
		direction = "DESC"
	case "asc":
		direction = "ASC"
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidOrder, filter.Order)
	}

	var (
		b    strings.Builder
		args []interface{}
	)
	b.WriteString(articlesWithCommentCount)

	if filter.Topic != "" {
		args = append(args, filter.Topic)
		fmt.Fprintf(&b, "\n\tWHERE articles.topic = $%d", len(args))
	}

	b.WriteString("\n\tGROUP BY articles.article_id")

	fmt.Fprintf(&b, "\n\tORDER BY %s %s", sortExpr, direction)
	if column != "article_id" {
		// ties broken by id so repeated reads return the same order
		fmt.Fprintf(&b, ", articles.article_id %s", direction)
	}

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, "\n\tLIMIT $%d", len(args))
		if offset := filter.Offset(); offset > 0 {
			args = append(args, offset)
			fmt.Fprintf(&b, " OFFSET $%d", len(args))
		}
	}

	return b.String(), args, nil
}

// voteOperator picks the arithmetic used to apply delta. The magnitude is
// always bound as a parameter.
func voteOperator(delta int) (string, int) {
	if delta > 0 {
		return "+", delta
	}
	return "-", -delta
}
