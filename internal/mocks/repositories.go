package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nc-news-api/internal/fixtures"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
)

// Store is an in-memory copy of the database shared by the mock repositories.
// Ids are assigned the way PostgreSQL identity columns assign them.
type Store struct {
	mu            sync.Mutex
	topics        []models.Topic
	users         []models.User
	articles      map[int]*models.Article
	comments      map[int]*models.Comment
	nextArticleID int
	nextCommentID int

	// Now stamps inserted rows
	Now func() time.Time
}

// NewStore loads ds into a new Store.
func NewStore(ds *fixtures.Dataset) *Store {
	s := &Store{
		articles: make(map[int]*models.Article),
		comments: make(map[int]*models.Comment),
		Now:      time.Now,
	}
	for _, t := range ds.Topics {
		s.topics = append(s.topics, models.Topic{Slug: t.Slug, Description: t.Description})
	}
	for _, u := range ds.Users {
		s.users = append(s.users, models.User{Username: u.Username, Name: u.Name, AvatarURL: u.AvatarURL})
	}
	for i, a := range ds.Articles {
		id := i + 1
		s.articles[id] = &models.Article{
			ArticleID: id,
			Title:     a.Title,
			Topic:     a.Topic,
			Author:    a.Author,
			Body:      a.Body,
			CreatedAt: models.NewTimestamp(a.CreatedAt),
			Votes:     a.Votes,
		}
	}
	for i, c := range ds.Comments {
		id := i + 1
		s.comments[id] = &models.Comment{
			CommentID: id,
			ArticleID: c.ArticleID,
			Author:    c.Author,
			Body:      c.Body,
			Votes:     c.Votes,
			CreatedAt: models.NewTimestamp(c.CreatedAt),
		}
	}
	s.nextArticleID = len(ds.Articles) + 1
	s.nextCommentID = len(ds.Comments) + 1
	return s
}

// NewTestStore returns a Store holding the embedded test dataset.
func NewTestStore() *Store {
	ds, err := fixtures.Test()
	if err != nil {
		panic(err)
	}
	return NewStore(ds)
}

// Repositories returns mock repositories backed by s.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Article: &MockArticleRepository{store: s},
		Comment: &MockCommentRepository{store: s},
		User:    &MockUserRepository{store: s},
		Topic:   &MockTopicRepository{store: s},
	}
}

func (s *Store) userExists(username string) bool {
	for _, u := range s.users {
		if u.Username == username {
			return true
		}
	}
	return false
}

func (s *Store) topicExists(slug string) bool {
	for _, t := range s.topics {
		if t.Slug == slug {
			return true
		}
	}
	return false
}

// withCount copies a with its comment count filled in. Caller holds s.mu.
func (s *Store) withCount(a *models.Article) models.Article {
	var n int64
	for _, c := range s.comments {
		if c.ArticleID == a.ArticleID {
			n++
		}
	}
	out := *a
	out.CommentCount = &n
	return out
}

func notFound(kind string, key interface{}) error {
	return fmt.Errorf("%w: %s %v", repository.ErrNotFound, kind, key)
}

func constraint(detail string) error {
	return fmt.Errorf("%w: %s", repository.ErrConstraint, detail)
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	store *Store

	// Err, when set, is returned by every method
	Err error
	// UpdateVotesFunc replaces UpdateVotes when set
	UpdateVotesFunc func(ctx context.Context, id int, delta int) (*models.Article, error)
}

var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func (m *MockArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	column := filter.SortBy
	if column == "" {
		column = repository.DefaultSortColumn
	}
	if !repository.IsArticleSortColumn(column) {
		return nil, fmt.Errorf("%w: %q", repository.ErrInvalidSortColumn, column)
	}
	var desc bool
	switch filter.Order {
	case "", "desc":
		desc = true
	case "asc":
	default:
		return nil, fmt.Errorf("%w: %q", repository.ErrInvalidOrder, filter.Order)
	}

	m.store.mu.Lock()
	articles := []models.Article{}
	for _, a := range m.store.articles {
		if filter.Topic != "" && a.Topic != filter.Topic {
			continue
		}
		articles = append(articles, m.store.withCount(a))
	}
	m.store.mu.Unlock()

	sort.Slice(articles, func(i, j int) bool {
		c := compareArticles(&articles[i], &articles[j], column)
		if c == 0 {
			c = articles[i].ArticleID - articles[j].ArticleID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	if filter.Limit > 0 {
		start := filter.Offset()
		if start > len(articles) {
			start = len(articles)
		}
		end := len(articles)
		if filter.Limit < end-start {
			end = start + filter.Limit
		}
		articles = articles[start:end]
	}
	return articles, nil
}

func compareArticles(a, b *models.Article, column string) int {
	switch column {
	case "article_id":
		return a.ArticleID - b.ArticleID
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "topic":
		return strings.Compare(a.Topic, b.Topic)
	case "author":
		return strings.Compare(a.Author, b.Author)
	case "body":
		return strings.Compare(a.Body, b.Body)
	case "votes":
		return a.Votes - b.Votes
	case "comment_count":
		return int(*a.CommentCount - *b.CommentCount)
	default:
		return a.CreatedAt.Compare(b.CreatedAt.Time)
	}
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	a, ok := m.store.articles[id]
	if !ok {
		return nil, notFound("article", id)
	}
	out := m.store.withCount(a)
	return &out, nil
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.NewArticle) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if !m.store.userExists(article.Author) {
		return nil, constraint("articles_author_fkey")
	}
	if !m.store.topicExists(article.Topic) {
		return nil, constraint("articles_topic_fkey")
	}

	a := &models.Article{
		ArticleID: m.store.nextArticleID,
		Title:     article.Title,
		Topic:     article.Topic,
		Author:    article.Author,
		Body:      article.Body,
		CreatedAt: models.NewTimestamp(m.store.Now()),
	}
	m.store.nextArticleID++
	m.store.articles[a.ArticleID] = a

	out := *a
	return &out, nil
}

func (m *MockArticleRepository) UpdateVotes(ctx context.Context, id int, delta int) (*models.Article, error) {
	if m.UpdateVotesFunc != nil {
		return m.UpdateVotesFunc(ctx, id, delta)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	a, ok := m.store.articles[id]
	if !ok {
		return nil, nil
	}
	a.Votes += delta
	out := *a
	return &out, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int) error {
	if m.Err != nil {
		return m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	delete(m.store.articles, id)
	for cid, c := range m.store.comments {
		if c.ArticleID == id {
			delete(m.store.comments, cid)
		}
	}
	return nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.articles), nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	store *Store

	// Err, when set, is returned by every method
	Err error
	// UpdateVotesFunc replaces UpdateVotes when set
	UpdateVotesFunc func(ctx context.Context, id int, delta int) (*models.Comment, error)
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int) ([]models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.Lock()
	comments := []models.Comment{}
	for _, c := range m.store.comments {
		if c.ArticleID == articleID {
			comments = append(comments, *c)
		}
	}
	m.store.mu.Unlock()

	sort.Slice(comments, func(i, j int) bool {
		if c := comments[i].CreatedAt.Compare(comments[j].CreatedAt.Time); c != 0 {
			return c > 0
		}
		return comments[i].CommentID > comments[j].CommentID
	})
	return comments, nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	c, ok := m.store.comments[id]
	if !ok {
		return nil, notFound("comment", id)
	}
	out := *c
	return &out, nil
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.NewComment) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.articles[comment.ArticleID]; !ok {
		return nil, constraint("comments_article_id_fkey")
	}
	if !m.store.userExists(comment.Author) {
		return nil, constraint("comments_author_fkey")
	}

	c := &models.Comment{
		CommentID: m.store.nextCommentID,
		ArticleID: comment.ArticleID,
		Author:    comment.Author,
		Body:      comment.Body,
		CreatedAt: models.NewTimestamp(m.store.Now()),
	}
	m.store.nextCommentID++
	m.store.comments[c.CommentID] = c

	out := *c
	return &out, nil
}

func (m *MockCommentRepository) UpdateVotes(ctx context.Context, id int, delta int) (*models.Comment, error) {
	if m.UpdateVotesFunc != nil {
		return m.UpdateVotesFunc(ctx, id, delta)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	c, ok := m.store.comments[id]
	if !ok {
		return nil, nil
	}
	c.Votes += delta
	out := *c
	return &out, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int) error {
	if m.Err != nil {
		return m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	delete(m.store.comments, id)
	return nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.comments), nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	store *Store

	// Err, when set, is returned by every method
	Err error
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) List(ctx context.Context) ([]models.UserSummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	users := make([]models.UserSummary, 0, len(m.store.users))
	for _, u := range m.store.users {
		users = append(users, models.UserSummary{Username: u.Username})
	}
	return users, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, u := range m.store.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, notFound("user", username)
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.users), nil
}

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	store *Store

	// Err, when set, is returned by every method
	Err error
}

var _ repository.TopicRepository = (*MockTopicRepository)(nil)

func (m *MockTopicRepository) List(ctx context.Context) ([]models.Topic, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return append([]models.Topic{}, m.store.topics...), nil
}

func (m *MockTopicRepository) GetBySlug(ctx context.Context, slug string) (*models.Topic, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, t := range m.store.topics {
		if t.Slug == slug {
			out := t
			return &out, nil
		}
	}
	return nil, notFound("topic", slug)
}

func (m *MockTopicRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.topics), nil
}
