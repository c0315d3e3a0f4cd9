package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultWidth = 80

var titleCaser = cases.Title(language.English)

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// Humanize turns an identifier such as "golden_apple" into "Golden Apple".
func Humanize(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}
