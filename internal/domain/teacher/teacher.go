package teacher

import (
	"database/sql"
	"strings"
)

// Teacher is a member of staff whose contact details students can look up.
type Teacher struct {
	ID        int64          `db:"id"`
	FirstName string         `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
	Subject   string         `db:"subject"`
	Contact   string         `db:"contact"`
	IsActive  bool           `db:"is_active"`
}

// FullName joins first and last name, skipping an empty last name.
func (t *Teacher) FullName() string {
	if !t.LastName.Valid || strings.TrimSpace(t.LastName.String) == "" {
		return t.FirstName
	}
	return t.FirstName + " " + t.LastName.String
}
