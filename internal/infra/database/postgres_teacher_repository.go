package database

import (
	"context"
	"fmt"

	"college_assistant_bot/internal/domain/teacher"

	"github.com/jmoiron/sqlx"
)

type PostgresTeacherRepository struct {
	db *sqlx.DB
}

func NewPostgresTeacherRepository(db *sqlx.DB) *PostgresTeacherRepository {
	return &PostgresTeacherRepository{db: db}
}

func (r *PostgresTeacherRepository) ListActive(ctx context.Context) ([]*teacher.Teacher, error) {
	query := `SELECT id, first_name, last_name, subject, contact, is_active
               FROM teachers WHERE is_active = TRUE ORDER BY first_name, last_name`

	teachers := make([]*teacher.Teacher, 0)
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("error listing active teachers: %w", err)
	}
	return teachers, nil
}
