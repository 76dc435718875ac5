package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/nc-news-api/internal/fixtures"
)

// Seed replaces the contents of every table with the dataset.
// Identity sequences restart so that article and comment ids follow file order.
func (db *DB) Seed(ctx context.Context, ds *fixtures.Dataset) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`TRUNCATE comments, articles, users, topics RESTART IDENTITY CASCADE`); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	topics := make([][]interface{}, 0, len(ds.Topics))
	for _, t := range ds.Topics {
		topics = append(topics, []interface{}{t.Slug, t.Description})
	}
	users := make([][]interface{}, 0, len(ds.Users))
	for _, u := range ds.Users {
		users = append(users, []interface{}{u.Username, u.Name, u.AvatarURL})
	}
	articles := make([][]interface{}, 0, len(ds.Articles))
	for _, a := range ds.Articles {
		articles = append(articles, []interface{}{a.Title, a.Topic, a.Author, a.Body, a.CreatedAt.UTC(), a.Votes})
	}
	comments := make([][]interface{}, 0, len(ds.Comments))
	for _, c := range ds.Comments {
		comments = append(comments, []interface{}{c.ArticleID, c.Author, c.Body, c.Votes, c.CreatedAt.UTC()})
	}

	batches := []struct {
		table   string
		columns []string
		rows    [][]interface{}
	}{
		{"topics", []string{"slug", "description"}, topics},
		{"users", []string{"username", "name", "avatar_url"}, users},
		{"articles", []string{"title", "topic", "author", "body", "created_at", "votes"}, articles},
		{"comments", []string{"article_id", "author", "body", "votes", "created_at"}, comments},
	}

	for _, b := range batches {
		if err := copyIn(ctx, tx, b.table, b.columns, b.rows); err != nil {
			return fmt.Errorf("failed to seed %s: %w", b.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	db.log.Info().
		Int("topics", len(topics)).
		Int("users", len(users)).
		Int("articles", len(articles)).
		Int("comments", len(comments)).
		Msg("Database seeded")

	return nil
}

type preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// copyIn bulk loads rows with PostgreSQL COPY
func copyIn(ctx context.Context, tx preparer, table string, columns []string, rows [][]interface{}) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return err
		}
	}

	// Flush the COPY buffer
	_, err = stmt.ExecContext(ctx)
	return err
}
