// Package crisis implements the safety branch of the pipeline: keyword
// detection, the static resource directory and the interaction log.
package crisis

import "strings"

// Keywords is the static phrase list that triggers the emergency branch.
// Matching is a plain case-insensitive substring scan: no tokenization, no
// stemming, no negation handling. A phrase inside a negated or quoted
// sentence still triggers; the heuristic deliberately over-triggers.
var Keywords = []string{
	"suicide",
	"kill myself",
	"end it all",
	"hurt myself",
	"self harm",
	"worthless",
	"hopeless",
	"can't go on",
	"want to die",
	"no point",
}

// IsCrisis reports whether the text contains any crisis keyword. Empty text
// never matches.
func IsCrisis(text string) bool {
	if text == "" {
		return false
	}

	lower := strings.ToLower(text)
	for _, keyword := range Keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
