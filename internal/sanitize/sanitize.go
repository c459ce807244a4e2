// Package sanitize cleans raw user input before it enters the pipeline.
package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxInputLen caps how many characters of a message are processed.
const MaxInputLen = 1000

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Clean strips HTML tags, caps the length at MaxInputLen (marking the cut
// with an ellipsis) and trims surrounding whitespace. It is total: any input,
// including empty, yields a valid result.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = tagPattern.ReplaceAllString(text, "")

	// The cap counts characters, not bytes, so multi-byte input is never
	// split mid-rune.
	if utf8.RuneCountInString(text) > MaxInputLen {
		runes := []rune(text)
		text = string(runes[:MaxInputLen]) + "..."
	}

	return strings.TrimSpace(text)
}
