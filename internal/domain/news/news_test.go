package news

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDraft(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Draft
		wantErr bool
	}{
		{"simple", "Title | Body", Draft{"Title", "Body"}, false},
		{"body keeps later delimiters", "A|B|C", Draft{"A", "B|C"}, false},
		{"trims both parts", "  Заголовок  |  Текст новини  ", Draft{"Заголовок", "Текст новини"}, false},
		{"no delimiter", "Title Body", Draft{}, true},
		{"empty title", " | Body", Draft{}, true},
		{"empty body", "Title | ", Draft{}, true},
		{"empty", "", Draft{}, true},
		{"title too long", strings.Repeat("x", 201) + " | body", Draft{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDraft(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadFormat) {
					t.Fatalf("expected ErrBadFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDraft(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
