package quiz

import (
	"regexp"
	"strings"
)

// Markup tags and stray backslash-escapes before apostrophes show up in
// provider answers and should never be printed.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

var escapedQuote = strings.NewReplacer(`\'`, `'`)

// Cleanup rules applied as one left-to-right scan, in alternation order:
//   - a leading "the", "a" or "an" (optionally behind a quote)
//   - double quotes anywhere
//   - one parenthesised clause with its surrounding spaces
//   - a trailing plural "s"
//
// The single scan matters: a trailing "s" is only stripped when it ends the
// answer as written, so `"Atlantis"` keeps its s after the quotes go. The
// plural rule is lossy on purpose ("The Beatles" becomes "beatle"); don't
// "fix" it.
var cleanupPattern = regexp.MustCompile(`(?i)^"?(the|a|an) |"| ?\(.*\) ?|s$`)

// StripMarkup removes the junk a provider answer may carry that should
// never reach the chat: html tags and escape backslashes.
func StripMarkup(raw string) string {
	return escapedQuote.Replace(tagPattern.ReplaceAllString(raw, ""))
}

// Normalize reduces an answer to the form attempts are matched against.
// The result is never displayed.
func Normalize(raw string) string {
	s := cleanupPattern.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, "&", "and")
	return strings.ToLower(s)
}
