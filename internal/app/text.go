package app

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxNameLength = 100

var tagRx = regexp.MustCompile(`<.*?>`)

// parseCommand returns the command of a "/cmd[@bot] [args]" message, lowercased
// and without the bot mention.
func parseCommand(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	name := strings.Fields(text)[0]
	if at := strings.IndexByte(name, '@'); at > 0 {
		name = name[:at]
	}
	return strings.ToLower(name), true
}

// sanitizeText removes markup and control characters and collapses whitespace.
func sanitizeText(input string) string {
	cleaned := tagRx.ReplaceAllString(input, "")
	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cleaned)
	return strings.Join(strings.Fields(cleaned), " ")
}

// parseFullName accepts at least a first and a last name.
func parseFullName(input string) (string, bool) {
	name := sanitizeText(input)
	if len(strings.Fields(name)) < 2 || utf8.RuneCountInString(name) > maxNameLength {
		return "", false
	}
	return name, true
}
