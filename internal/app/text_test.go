package app

import (
	"strings"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"/start", "/start", true},
		{"/Start@college_bot", "/start", true},
		{"/admin extra args", "/admin", true},
		{"start", "", false},
		{"", "", false},
		{"Мій розклад", "", false},
	}
	for _, tt := range tests {
		got, ok := parseCommand(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseCommand(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseFullName(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Ivan Petrenko", "Ivan Petrenko", true},
		{"  Іван   Петренко  ", "Іван Петренко", true},
		{"Ivan <b>Petrenko</b>", "Ivan Petrenko", true},
		{"Ivan\tPetro\nPetrenko", "Ivan Petro Petrenko", true},
		{"Ivan", "", false},
		{"<b>Ivan</b>", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := parseFullName(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseFullName(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}

	long := "A " + strings.Repeat("b", maxNameLength)
	if _, ok := parseFullName(long); ok {
		t.Error("names over the length limit must be rejected")
	}
}
