package quiz

import (
	"fmt"
	"strings"
)

// defaultValue stands in when the provider reports no value for a clue.
const defaultValue = 100

// QuestionData is the raw tuple a question provider returns.
type QuestionData struct {
	Text     string
	Answer   string
	Category string
	Value    int
}

// Question is one trivia item. Everything except the answered flag is
// fixed at construction; answered is guarded by the owning session's mutex.
type Question struct {
	Text     string
	Category string
	Value    int

	// RawAnswer is what gets revealed in chat; normalized is what
	// attempts are matched against.
	RawAnswer  string
	normalized string

	answered bool
}

func NewQuestion(data QuestionData) *Question {
	raw := StripMarkup(data.Answer)
	value := data.Value
	if value <= 0 {
		value = defaultValue
	}
	return &Question{
		Text:       strings.TrimSpace(data.Text),
		Category:   data.Category,
		Value:      value,
		RawAnswer:  raw,
		normalized: Normalize(raw),
	}
}

// AttemptMatches reports whether a free-text guess contains the answer.
// Substring matching is deliberate so participants can answer in a
// full sentence.
func (q *Question) AttemptMatches(text string) bool {
	if text == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), q.normalized)
}

// Display formats the question for presentation. It never includes
// the answer.
func (q *Question) Display() string {
	return fmt.Sprintf("%s (%s) [%d]", q.Text, q.Category, q.Value)
}
