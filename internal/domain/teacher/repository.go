package teacher

import (
	"context"
)

// Repository defines the read operations on the teacher contact list.
type Repository interface {
	ListActive(ctx context.Context) ([]*Teacher, error)
}
