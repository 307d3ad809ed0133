package database

import (
	"context"
	"fmt"

	"college_assistant_bot/internal/domain/news"

	"github.com/jmoiron/sqlx"
)

type PostgresNewsRepository struct {
	db *sqlx.DB
}

func NewPostgresNewsRepository(db *sqlx.DB) *PostgresNewsRepository {
	return &PostgresNewsRepository{db: db}
}

func (r *PostgresNewsRepository) ListLatest(ctx context.Context, limit int) ([]*news.Item, error) {
	query := `SELECT id, title, body, created_at FROM news ORDER BY created_at DESC, id DESC LIMIT $1`
	items := make([]*news.Item, 0)
	if err := r.db.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, fmt.Errorf("error listing latest news: %w", err)
	}
	return items, nil
}

func (r *PostgresNewsRepository) Create(ctx context.Context, d news.Draft) (*news.Item, error) {
	query := `INSERT INTO news (title, body) VALUES ($1, $2)
               RETURNING id, title, body, created_at`
	item := &news.Item{}
	if err := r.db.GetContext(ctx, item, query, d.Title, d.Body); err != nil {
		return nil, fmt.Errorf("error creating news: %w", err)
	}
	return item, nil
}
