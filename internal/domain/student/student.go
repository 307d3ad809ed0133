package student

import (
	"database/sql"
	"time"
)

// Student is a caller who has submitted a name, and possibly picked a group.
// Corresponds to the 'students' table; telegram_id is unique.
type Student struct {
	ID         int64         `db:"id"`
	TelegramID int64         `db:"telegram_id"`
	FullName   string        `db:"full_name"`
	GroupID    sql.NullInt64 `db:"group_id"` // NULL until the group step is completed
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

// Registered reports whether the student has completed group selection.
func (s *Student) Registered() bool {
	return s != nil && s.GroupID.Valid
}
