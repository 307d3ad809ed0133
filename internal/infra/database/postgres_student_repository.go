package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"college_assistant_bot/internal/domain/group"
	"college_assistant_bot/internal/domain/student"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pgForeignKeyViolation = "23503"

type PostgresStudentRepository struct {
	db *sqlx.DB
}

func NewPostgresStudentRepository(db *sqlx.DB) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

const studentColumns = `id, telegram_id, full_name, group_id, created_at, updated_at`

func (r *PostgresStudentRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE telegram_id = $1`
	s := &student.Student{}
	if err := r.db.GetContext(ctx, s, query, telegramID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, student.ErrNotFound
		}
		return nil, fmt.Errorf("error getting student by Telegram ID: %w", err)
	}
	return s, nil
}

// UpsertName relies on the unique telegram_id so concurrent registrations of
// the same caller converge on one row.
func (r *PostgresStudentRepository) UpsertName(ctx context.Context, telegramID int64, fullName string) (*student.Student, error) {
	query := `INSERT INTO students (telegram_id, full_name)
               VALUES ($1, $2)
               ON CONFLICT (telegram_id) DO UPDATE
               SET full_name = EXCLUDED.full_name, updated_at = NOW()
               RETURNING ` + studentColumns
	s := &student.Student{}
	if err := r.db.GetContext(ctx, s, query, telegramID, fullName); err != nil {
		return nil, fmt.Errorf("error upserting student name: %w", err)
	}
	return s, nil
}

func (r *PostgresStudentRepository) SetGroup(ctx context.Context, telegramID int64, groupID int64) error {
	query := `UPDATE students SET group_id = $1, updated_at = NOW() WHERE telegram_id = $2`
	res, err := r.db.ExecContext(ctx, query, groupID, telegramID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return group.ErrNotFound
		}
		return fmt.Errorf("error setting student group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return student.ErrNotFound
	}
	return nil
}

func (r *PostgresStudentRepository) ListByGroup(ctx context.Context, groupID int64) ([]*student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE group_id = $1 ORDER BY full_name`
	students := make([]*student.Student, 0)
	if err := r.db.SelectContext(ctx, &students, query, groupID); err != nil {
		return nil, fmt.Errorf("error listing students by group: %w", err)
	}
	return students, nil
}
