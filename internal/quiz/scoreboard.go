package quiz

import "sort"

// Score is one scoreboard entry.
type Score struct {
	Nick   string
	Points int
}

// Scoreboard accumulates points per participant within one session.
// Entries are created lazily on first award and never removed. It is
// not safe for concurrent use; the owning session serializes access.
type Scoreboard struct {
	points map[string]int
	order  []string // first-award order, keeps snapshot ties stable
}

func NewScoreboard() *Scoreboard {
	return &Scoreboard{points: make(map[string]int)}
}

// Award adds amount to a participant's score and returns the new total.
func (sb *Scoreboard) Award(nick string, amount int) int {
	if _, ok := sb.points[nick]; !ok {
		sb.order = append(sb.order, nick)
	}
	sb.points[nick] += amount
	return sb.points[nick]
}

// Total returns a participant's score, zero if they never scored.
func (sb *Scoreboard) Total(nick string) int {
	return sb.points[nick]
}

func (sb *Scoreboard) Len() int {
	return len(sb.points)
}

// Snapshot returns the scoreboard ordered best-first. Ties keep the
// order in which the participants first scored.
func (sb *Scoreboard) Snapshot() []Score {
	snapshot := make([]Score, 0, len(sb.order))
	for _, nick := range sb.order {
		snapshot = append(snapshot, Score{Nick: nick, Points: sb.points[nick]})
	}
	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Points > snapshot[j].Points
	})
	return snapshot
}
