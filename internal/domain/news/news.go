package news

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DraftDelimiter separates the title from the body in admin input.
const DraftDelimiter = "|"

// DraftFormat is shown to admins when their input cannot be parsed.
const DraftFormat = "Заголовок | Текст новини"

var ErrBadFormat = errors.New("news draft must look like 'title | body'")

// Item is a published announcement.
type Item struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}

// Draft is the validated admin input for a new Item.
type Draft struct {
	Title string `validate:"required,max=200"`
	Body  string `validate:"required,max=3000"`
}

var validate = validator.New()

// ParseDraft splits "Title | Body" on the first delimiter. Both parts are trimmed
// and must be non-empty; the body may itself contain the delimiter.
func ParseDraft(text string) (Draft, error) {
	title, body, ok := strings.Cut(text, DraftDelimiter)
	if !ok {
		return Draft{}, ErrBadFormat
	}
	d := Draft{Title: strings.TrimSpace(title), Body: strings.TrimSpace(body)}
	if err := validate.Struct(d); err != nil {
		return Draft{}, errors.Join(ErrBadFormat, err)
	}
	return d, nil
}
