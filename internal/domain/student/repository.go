package student

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no student row exists for the given key.
var ErrNotFound = errors.New("student not found")

// Repository defines the operations for persisting and retrieving students.
type Repository interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*Student, error)
	// UpsertName inserts the student or overwrites the name of an existing row.
	// Repeating it with the same arguments is a no-op.
	UpsertName(ctx context.Context, telegramID int64, fullName string) (*Student, error)
	// SetGroup returns ErrNotFound when there is no row for telegramID.
	SetGroup(ctx context.Context, telegramID int64, groupID int64) error
	ListByGroup(ctx context.Context, groupID int64) ([]*Student, error)
}
