package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nc-news-api/internal/api"
	"github.com/nc-news-api/internal/mocks"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
	"github.com/nc-news-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *repository.Repositories, *mocks.MockPinger) {
	t.Helper()

	store := mocks.NewTestStore()
	store.Now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	repos := store.Repositories()
	pinger := &mocks.MockPinger{}

	router := api.NewRouter(service.NewServices(repos, pinger, zerolog.Nop()), zerolog.Nop())
	return router, repos, pinger
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

func assertMessage(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assert.Equal(t, status, w.Code)
	assert.Equal(t, message, decode(t, w)["message"])
}

func TestEndpointsDocument(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Contains(t, body, "GET /api/articles")
	assert.Contains(t, body, "PATCH /api/comments/:comment_id")
}

func TestGetTopics(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/topics", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Topics []map[string]string `json:"topics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []map[string]string{
		{"slug": "mitch", "description": "The man, the Mitch, the legend"},
		{"slug": "cats", "description": "Not dogs"},
		{"slug": "paper", "description": "what books are made of"},
	}, body.Topics)

	w = doRequest(router, http.MethodGet, "/api/topics/cats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Not dogs", decode(t, w)["topic"].(map[string]interface{})["description"])

	assertMessage(t, doRequest(router, http.MethodGet, "/api/topics/dogs", ""), http.StatusBadRequest, "No results found")
}

type articleJSON struct {
	ArticleID    int    `json:"article_id"`
	Title        string `json:"title"`
	Topic        string `json:"topic"`
	Author       string `json:"author"`
	Body         string `json:"body"`
	CreatedAt    string `json:"created_at"`
	Votes        int    `json:"votes"`
	CommentCount string `json:"comment_count"`
}

func listArticles(t *testing.T, router http.Handler, query string) []articleJSON {
	t.Helper()
	w := doRequest(router, http.MethodGet, "/api/articles"+query, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Articles []articleJSON `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Articles
}

func TestGetArticles(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	articles := listArticles(t, router, "")
	require.Len(t, articles, 12)
	for _, a := range articles {
		assert.NotZero(t, a.ArticleID)
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Topic)
		assert.NotEmpty(t, a.Author)
		assert.NotEmpty(t, a.CreatedAt)
		assert.NotEmpty(t, a.CommentCount)
	}
	assert.True(t, sort.SliceIsSorted(articles, func(i, j int) bool {
		return articles[i].CreatedAt > articles[j].CreatedAt
	}), "default order is created_at descending")
}

func TestGetArticles_Sorting(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	articles := listArticles(t, router, "?sort_by=title&order=asc")
	require.Len(t, articles, 12)
	assert.True(t, sort.SliceIsSorted(articles, func(i, j int) bool {
		return articles[i].Title < articles[j].Title
	}))

	articles = listArticles(t, router, "?sort_by=votes&order_by=desc")
	assert.Equal(t, 1, articles[0].ArticleID)

	articles = listArticles(t, router, "?sort_by=comment_count")
	assert.Equal(t, 1, articles[0].ArticleID)
	assert.Equal(t, "11", articles[0].CommentCount)
}

func TestGetArticles_Pagination(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	articles := listArticles(t, router, "?sort_by=article_id&order=asc&limit=5&p=2")
	require.Len(t, articles, 5)
	assert.Equal(t, 6, articles[0].ArticleID)

	articles = listArticles(t, router, "?limit=3")
	assert.Len(t, articles, 3)

	articles = listArticles(t, router, "?sort_by=article_id&order=asc&p=2")
	require.Len(t, articles, 2)
	assert.Equal(t, 11, articles[0].ArticleID)
}

func TestGetArticles_HugeLimit(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	articles := listArticles(t, router, "?limit=9223372036854775807&p=1")
	assert.Len(t, articles, 12)

	articles = listArticles(t, router, "?limit=9223372036854775807")
	assert.Len(t, articles, 12)
}

func TestGetArticles_TopicFilter(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	articles := listArticles(t, router, "?topic=mitch")
	assert.Len(t, articles, 11)

	w := doRequest(router, http.MethodGet, "/api/articles?topic=cats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var single struct {
		Article map[string]interface{} `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &single), "single topic match renders as an object")
	for _, key := range []string{"article_id", "title", "topic", "author", "body", "created_at", "votes", "comment_count"} {
		assert.Contains(t, single.Article, key)
	}
	assert.Equal(t, float64(5), single.Article["article_id"])
	assert.Equal(t, "2", single.Article["comment_count"])

	articles = listArticles(t, router, "?topic=paper")
	assert.Empty(t, articles)

	assertMessage(t, doRequest(router, http.MethodGet, "/api/articles?topic=dogs", ""), http.StatusBadRequest, "No results found")
}

func TestGetArticles_InvalidQueries(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	tests := []struct {
		query   string
		message string
	}{
		{"?limit=ten", "limit must be a number"},
		{"?limit=-5", "limit must be a number"},
		{"?p=second", "p must be a number"},
		{"?order=up", "order must be either 'asc' or 'desc'"},
		{"?order_by=up", "order must be either 'asc' or 'desc'"},
		{"?order=DESC", "order must be either 'asc' or 'desc'"},
		{"?order=Asc", "order must be either 'asc' or 'desc'"},
		{"?order_by=ASC", "order must be either 'asc' or 'desc'"},
		{"?limit=9223372036854775807&p=3", "limit must be a number"},
		{"?sort_by=password", "sort_by must be a valid column"},
		{"?sort_by=password&limit=x", "limit must be a number"},
		{"?sort_by=password&order=x", "order must be either 'asc' or 'desc'"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assertMessage(t, doRequest(router, http.MethodGet, "/api/articles"+tt.query, ""), http.StatusBadRequest, tt.message)
		})
	}
}

func TestGetArticleByID(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/articles/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Article articleJSON `json:"article"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, articleJSON{
		ArticleID:    1,
		Title:        "Living in the shadow of a great man",
		Topic:        "mitch",
		Author:       "butter_bridge",
		Body:         "I find this existence challenging",
		CreatedAt:    "2020-07-09T20:11:00.000Z",
		Votes:        100,
		CommentCount: "11",
	}, body.Article)

	assertMessage(t, doRequest(router, http.MethodGet, "/api/articles/10000000", ""), http.StatusBadRequest, "No results found")
	assertMessage(t, doRequest(router, http.MethodGet, "/api/articles/bad", ""), http.StatusBadRequest, "Bad Request")
	assertMessage(t, doRequest(router, http.MethodGet, "/api/articles/99999999999", ""), http.StatusBadRequest, "Bad Request")
}

func TestPostArticle(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/articles",
		`{"author":"lurker","title":"New","body":"Fresh","topic":"paper"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	article := decode(t, w)["article"].(map[string]interface{})
	assert.Equal(t, float64(13), article["article_id"])
	assert.Equal(t, float64(0), article["votes"])
	assert.Equal(t, "2024-01-02T03:04:05.000Z", article["created_at"])

	assertMessage(t, doRequest(router, http.MethodPost, "/api/articles", `{"author":"lurker"}`), http.StatusBadRequest, "Bad Request")
	assertMessage(t, doRequest(router, http.MethodPost, "/api/articles",
		`{"author":"ghost","title":"t","body":"b","topic":"paper"}`), http.StatusBadRequest, "Bad Request")
}

func TestPatchArticle(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodPatch, "/api/articles/1", `{"inc_votes": 100}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Article articleJSON `json:"article"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 200, body.Article.Votes)
	assert.Equal(t, "Living in the shadow of a great man", body.Article.Title)
	assert.Equal(t, "2020-07-09T20:11:00.000Z", body.Article.CreatedAt)
	assert.Empty(t, body.Article.CommentCount)

	tests := []struct {
		body  string
		votes int
	}{
		{`{"inc_votes": -50}`, 150},
		{`{}`, 150},
		{``, 150},
		{`{"inc_votes": "ten"}`, 150},
		{`{"inc_votes": 1.5}`, 150},
	}
	for _, tt := range tests {
		w := doRequest(router, http.MethodPatch, "/api/articles/1", tt.body)
		require.Equal(t, http.StatusOK, w.Code, tt.body)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tt.votes, body.Article.Votes, tt.body)
	}

	assertMessage(t, doRequest(router, http.MethodPatch, "/api/articles/10000000", `{"inc_votes": 1}`), http.StatusBadRequest, "No results found")
	assertMessage(t, doRequest(router, http.MethodPatch, "/api/articles/bad", `{"inc_votes": 1}`), http.StatusBadRequest, "Bad Request")
	assertMessage(t, doRequest(router, http.MethodPatch, "/api/articles/1", `not json`), http.StatusBadRequest, "Bad Request")
}

func TestPatchArticle_RowVanished(t *testing.T) {
	router, repos, _ := setupTestRouter(t)
	repos.Article.(*mocks.MockArticleRepository).UpdateVotesFunc = func(_ context.Context, _ int, _ int) (*models.Article, error) {
		return nil, nil
	}

	w := doRequest(router, http.MethodPatch, "/api/articles/1", `{"inc_votes": 1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"article": null}`, w.Body.String())
}

func TestDeleteArticle(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodDelete, "/api/articles/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	assertMessage(t, doRequest(router, http.MethodGet, "/api/articles/1", ""), http.StatusBadRequest, "No results found")
	assertMessage(t, doRequest(router, http.MethodGet, "/api/comments/2", ""), http.StatusBadRequest, "No results found")
	assertMessage(t, doRequest(router, http.MethodDelete, "/api/articles/1", ""), http.StatusBadRequest, "No results found")
}

func TestGetArticleComments(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/articles/1/comments", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Comments []struct {
			CommentID int    `json:"comment_id"`
			ArticleID int    `json:"article_id"`
			CreatedAt string `json:"created_at"`
		} `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Comments, 11)
	for i, c := range body.Comments {
		assert.Equal(t, 1, c.ArticleID)
		if i > 0 {
			assert.GreaterOrEqual(t, body.Comments[i-1].CreatedAt, c.CreatedAt)
		}
	}

	w = doRequest(router, http.MethodGet, "/api/articles/2/comments", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"comments": []}`, w.Body.String())

	assertMessage(t, doRequest(router, http.MethodGet, "/api/articles/10000000/comments", ""), http.StatusBadRequest, "No results found")
	assertMessage(t, doRequest(router, http.MethodGet, "/api/articles/bad/comments", ""), http.StatusBadRequest, "Bad Request")
}

func TestPostComment(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/articles/2/comments", `{"author":"'lurker'","body":"Yes, good"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.JSONEq(t, `{"comment": {
		"comment_id": 19,
		"article_id": 2,
		"author": "lurker",
		"body": "Yes, good",
		"votes": 0,
		"created_at": "2024-01-02T03:04:05.000Z"
	}}`, w.Body.String())

	assertMessage(t, doRequest(router, http.MethodPost, "/api/articles/2/comments", `{"author":"lurker"}`), http.StatusBadRequest, "Bad Request")
	assertMessage(t, doRequest(router, http.MethodPost, "/api/articles/2/comments", `{"author":"ghost","body":"b"}`), http.StatusBadRequest, "Bad Request")
	assertMessage(t, doRequest(router, http.MethodPost, "/api/articles/10000000/comments", `{"author":"lurker","body":"b"}`), http.StatusBadRequest, "No results found")
	assertMessage(t, doRequest(router, http.MethodPost, "/api/articles/bad/comments", `{"author":"lurker","body":"b"}`), http.StatusBadRequest, "Bad Request")
}

func TestPatchComment(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodPatch, "/api/comments/1", `{"inc_votes": 100}`)
	require.Equal(t, http.StatusOK, w.Code)
	comment := decode(t, w)["comment"].(map[string]interface{})
	assert.Equal(t, float64(116), comment["votes"])

	w = doRequest(router, http.MethodPatch, "/api/comments/1", `{"inc_votes": -200}`)
	require.Equal(t, http.StatusOK, w.Code)
	comment = decode(t, w)["comment"].(map[string]interface{})
	assert.Equal(t, float64(-84), comment["votes"])

	assertMessage(t, doRequest(router, http.MethodPatch, "/api/comments/10000000", `{"inc_votes": 1}`), http.StatusBadRequest, "No results found")
	assertMessage(t, doRequest(router, http.MethodPatch, "/api/comments/bad", `{"inc_votes": 1}`), http.StatusBadRequest, "Bad Request")
}

func TestDeleteComment(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/comments/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodDelete, "/api/comments/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	assertMessage(t, doRequest(router, http.MethodGet, "/api/comments/1", ""), http.StatusBadRequest, "No results found")
	assertMessage(t, doRequest(router, http.MethodDelete, "/api/comments/1", ""), http.StatusBadRequest, "No results found")
	assertMessage(t, doRequest(router, http.MethodDelete, "/api/comments/bad", ""), http.StatusBadRequest, "Bad Request")
}

func TestGetUsers(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"users": [
		{"username": "butter_bridge"},
		{"username": "icellusedkars"},
		{"username": "rogersop"},
		{"username": "lurker"}
	]}`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/api/users/lurker", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user": {
		"username": "lurker",
		"name": "do_nothing",
		"avatar_url": "https://www.golenbock.com/wp-content/uploads/2015/01/placeholder-user.png"
	}}`, w.Body.String())

	assertMessage(t, doRequest(router, http.MethodGet, "/api/users/ghost", ""), http.StatusBadRequest, "No results found")
}

func TestUnknownRoute(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	assertMessage(t, doRequest(router, http.MethodGet, "/api/nope", ""), http.StatusNotFound, "Path not found")
	assertMessage(t, doRequest(router, http.MethodGet, "/", ""), http.StatusNotFound, "Path not found")
}

func TestUnexpectedErrorsAreInternal(t *testing.T) {
	router, repos, _ := setupTestRouter(t)
	repos.Topic.(*mocks.MockTopicRepository).Err = errors.New("connection reset")

	assertMessage(t, doRequest(router, http.MethodGet, "/api/topics", ""), http.StatusInternalServerError, "Internal Server Error")
}

func TestPanicRecovered(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	assertMessage(t, doRequest(router, http.MethodGet, "/panic", ""), http.StatusInternalServerError, "Internal Server Error")
}

func TestRequestID(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/topics", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestHealthEndpoint(t *testing.T) {
	router, _, pinger := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "nc-news-api", body["service"])

	pinger.Err = errors.New("down")
	w = doRequest(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", decode(t, w)["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)

	database := decode(t, w)["database"].(map[string]interface{})
	assert.Equal(t, float64(12), database["articles"])
	assert.Equal(t, float64(18), database["comments"])
	assert.Equal(t, float64(4), database["users"])
	assert.Equal(t, float64(3), database["topics"])
}

func TestCORSPreflight(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodOptions, "/api/articles", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
