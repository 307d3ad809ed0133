package group

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no group matches the lookup.
var ErrNotFound = errors.New("group not found")

// Repository is read-only: groups and timetables are managed outside the bot.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Group, error)
	// GetByName matches the name exactly.
	GetByName(ctx context.Context, name string) (*Group, error)
	List(ctx context.Context) ([]*Group, error)
	ListSchedule(ctx context.Context, groupID int64) ([]*ScheduleEntry, error)
}
