package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"college_assistant_bot/internal/domain/group"

	"github.com/jmoiron/sqlx"
)

type PostgresGroupRepository struct {
	db *sqlx.DB
}

func NewPostgresGroupRepository(db *sqlx.DB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

func (r *PostgresGroupRepository) GetByID(ctx context.Context, id int64) (*group.Group, error) {
	return r.getOne(ctx, `SELECT id, name FROM groups WHERE id = $1`, id)
}

func (r *PostgresGroupRepository) GetByName(ctx context.Context, name string) (*group.Group, error) {
	return r.getOne(ctx, `SELECT id, name FROM groups WHERE name = $1`, name)
}

func (r *PostgresGroupRepository) getOne(ctx context.Context, query string, arg any) (*group.Group, error) {
	g := &group.Group{}
	if err := r.db.GetContext(ctx, g, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, group.ErrNotFound
		}
		return nil, fmt.Errorf("error getting group: %w", err)
	}
	return g, nil
}

func (r *PostgresGroupRepository) List(ctx context.Context) ([]*group.Group, error) {
	groups := make([]*group.Group, 0)
	if err := r.db.SelectContext(ctx, &groups, `SELECT id, name FROM groups ORDER BY name`); err != nil {
		return nil, fmt.Errorf("error listing groups: %w", err)
	}
	return groups, nil
}

func (r *PostgresGroupRepository) ListSchedule(ctx context.Context, groupID int64) ([]*group.ScheduleEntry, error) {
	query := `SELECT group_id, day_of_week, to_char(start_time, 'HH24:MI') AS start_time,
                     subject, classroom, teacher
               FROM schedule_entries
               WHERE group_id = $1
               ORDER BY day_of_week, start_time, subject`
	entries := make([]*group.ScheduleEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, query, groupID); err != nil {
		return nil, fmt.Errorf("error listing schedule: %w", err)
	}
	return entries, nil
}
