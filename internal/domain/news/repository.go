package news

import "context"

// Repository persists announcements.
type Repository interface {
	// ListLatest returns at most limit items, newest first.
	ListLatest(ctx context.Context, limit int) ([]*Item, error)
	Create(ctx context.Context, d Draft) (*Item, error)
}
