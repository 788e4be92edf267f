package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// maxAttemptLen caps how much of a chat message the matcher ever sees.
const maxAttemptLen = 512

// SanitizeAttempt cleans an inbound chat message before it is matched
// against an answer: no tags, no null bytes, bounded length. The
// unescape restores plain-text characters bluemonday entity-encodes.
func SanitizeAttempt(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	input = htmlPolicy.Sanitize(input)
	input = html.UnescapeString(input)

	if len(input) > maxAttemptLen {
		input = input[:maxAttemptLen]
	}

	return strings.TrimSpace(input)
}
