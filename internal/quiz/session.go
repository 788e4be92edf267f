package quiz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rfoley/quizbot/pkg/errors"
	"github.com/rfoley/quizbot/pkg/logger"
)

// Win methods
const (
	WinMethodPoints = "points"
	WinMethodScore  = "score"
)

type State int

const (
	StateIdle State = iota
	StateActive
	StateFinished
)

// Provider supplies one fresh trivia item per call. It may fail
// transiently; the session retries once before giving up.
type Provider interface {
	Fetch(ctx context.Context) (QuestionData, error)
}

// Recorder persists a win and reports the participant's updated
// lifetime win count.
type Recorder interface {
	RecordWin(nick string) (int, error)
}

// Announcer delivers a line of text to the session's chat scope.
type Announcer interface {
	Say(text string)
}

// Settings is the rule set a session runs under, fixed at creation.
type Settings struct {
	WinMethod     string
	Threshold     int
	AnswerTimeout time.Duration
	QuestionPause time.Duration

	// TrackedStarters gates persistence: a win only reaches the
	// recorder when the list is empty or contains the starter.
	TrackedStarters []string
}

// Session runs one quiz from start to a win or an explicit stop. All
// entry points, including the timer callbacks, serialize on a single
// mutex; that is what makes an answer racing a timeout resolve to
// exactly one advance.
type Session struct {
	settings  Settings
	provider  Provider
	recorder  Recorder
	announcer Announcer

	mu       sync.Mutex
	state    State
	starter  string
	qno      int
	question *Question
	scores   *Scoreboard
	timer    *SessionTimer

	// gen bumps every time the timer is armed. Callbacks carry the
	// value they were armed with and bail when it no longer matches,
	// so a stale timeout or pause can never touch a later question.
	gen uint64
}

func NewSession(settings Settings, provider Provider, recorder Recorder, announcer Announcer) *Session {
	return &Session{
		settings:  settings,
		provider:  provider,
		recorder:  recorder,
		announcer: announcer,
		state:     StateIdle,
		scores:    NewScoreboard(),
		timer:     &SessionTimer{},
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start moves the session from Idle to Active, presents question 1 and
// arms the answer timeout. The session stays Idle if no question can
// be fetched.
func (s *Session) Start(starter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return errors.New(errors.ErrCodeSessionRunning, "quiz is already running")
	}

	q, err := s.fetchQuestion()
	if err != nil {
		return err
	}

	s.state = StateActive
	s.starter = starter
	s.qno = 1
	s.question = q

	s.announcer.Say(fmt.Sprintf("Quiz started by %s", starter))
	if s.settings.WinMethod == WinMethodScore {
		s.announcer.Say(fmt.Sprintf("First to %d points wins!", s.settings.Threshold))
	} else {
		s.announcer.Say(fmt.Sprintf("First to answer %d questions wins!", s.settings.Threshold))
	}
	s.announcer.Say(s.questionLine())
	s.armTimeoutLocked()
	return nil
}

// Stop ends the session and cancels whatever the timer holds, answer
// timeout or inter-question pause alike. The caller drops the session
// afterwards.
func (s *Session) Stop(nick string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return errors.New(errors.ErrCodeSessionNotRunning, "no quiz running")
	}

	s.state = StateFinished
	s.timer.Cancel()
	s.announcer.Say(fmt.Sprintf("Quiz stopped by %s", nick))
	return nil
}

// Shutdown quietly tears the session down, for process shutdown. No
// announcement, no state error; just make sure no timer fires later.
func (s *Session) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateActive {
		s.state = StateFinished
		s.timer.Cancel()
	}
}

// Skip reveals the current answer without scoring and advances.
func (s *Session) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return errors.New(errors.ErrCodeSessionNotRunning, "no quiz running")
	}

	s.announcer.Say(fmt.Sprintf("Fine, the answer was %s", s.question.RawAnswer))
	s.question.answered = true
	s.advanceLocked()
	return nil
}

// Attempt judges one free-text guess. A correct first answer scores
// and advances; on reaching the win threshold the session finishes
// instead and the win is recorded. Late attempts on an already
// answered question are no-ops.
func (s *Session) Attempt(nick, text string) error {
	s.mu.Lock()

	if s.state != StateActive {
		s.mu.Unlock()
		return errors.New(errors.ErrCodeSessionNotRunning, "no quiz running")
	}

	q := s.question
	if q.answered || !q.AttemptMatches(text) {
		s.mu.Unlock()
		return nil
	}

	q.answered = true
	amount := 1
	if s.settings.WinMethod == WinMethodScore {
		amount = q.Value
	}
	total := s.scores.Award(nick, amount)

	s.announcer.Say(fmt.Sprintf("Correct! The answer was %s", q.RawAnswer))
	s.announcer.Say(fmt.Sprintf("%s has %d point%s!", nick, total, plural(total)))

	if total >= s.settings.Threshold {
		s.state = StateFinished
		s.timer.Cancel()
		s.announcer.Say(fmt.Sprintf("%s is the winner!", nick))
		s.announceScoresLocked()
		tracked := s.winTrackedLocked()
		s.mu.Unlock()

		// Persistence happens outside the critical section; a slow or
		// failing recorder must not block the declared winner.
		if tracked {
			s.recordWin(nick)
		}
		return nil
	}

	s.advanceLocked()
	s.mu.Unlock()
	return nil
}

// AnnounceScores surfaces the current scoreboard to the chat.
func (s *Session) AnnounceScores() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return errors.New(errors.ErrCodeSessionNotRunning, "no quiz running")
	}
	s.announceScoresLocked()
	return nil
}

// Scores returns the scoreboard ordered best-first.
func (s *Session) Scores() []Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scores.Snapshot()
}

// onTimeout fires when nobody answered in time. A stale callback, one
// that lost the race against an answer, a skip or a stop, does nothing.
func (s *Session) onTimeout(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive || gen != s.gen || s.question.answered {
		return
	}

	s.question.answered = true
	s.announcer.Say(fmt.Sprintf("No answer within %d seconds. The answer was %s",
		int(s.settings.AnswerTimeout/time.Second), s.question.RawAnswer))
	s.advanceLocked()
}

// advanceLocked schedules the next question after the inter-question
// pause. The pause runs on the session timer, not a sleep, so Stop can
// cancel it and nothing blocks while holding the mutex.
func (s *Session) advanceLocked() {
	if s.qno%10 == 0 {
		s.announceScoresLocked()
	}
	s.gen++
	gen := s.gen
	s.timer.Arm(s.settings.QuestionPause, func() { s.presentNext(gen) })
}

// presentNext fetches and presents the question after the pause. On
// provider failure (after the retry in fetchQuestion) the session
// halts with a report rather than spinning or crashing.
func (s *Session) presentNext(gen uint64) {
	s.mu.Lock()
	if s.state != StateActive || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	q, err := s.fetchQuestion()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive || gen != s.gen {
		return
	}
	if err != nil {
		logger.Error("Halting quiz, question provider unavailable", "error", err)
		s.state = StateFinished
		s.timer.Cancel()
		s.announcer.Say("Couldn't fetch the next question, stopping the quiz. Try again later!")
		return
	}

	s.qno++
	s.question = q
	s.announcer.Say(s.questionLine())
	s.armTimeoutLocked()
}

func (s *Session) armTimeoutLocked() {
	s.gen++
	gen := s.gen
	s.timer.Arm(s.settings.AnswerTimeout, func() { s.onTimeout(gen) })
}

// fetchQuestion asks the provider for a clue, retrying once.
func (s *Session) fetchQuestion() (*Question, error) {
	data, err := s.provider.Fetch(context.Background())
	if err != nil {
		logger.Warn("Question fetch failed, retrying", "error", err)
		data, err = s.provider.Fetch(context.Background())
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeProviderUnavailable, "could not fetch a question")
	}
	return NewQuestion(data), nil
}

func (s *Session) announceScoresLocked() {
	snapshot := s.scores.Snapshot()
	if len(snapshot) == 0 {
		s.announcer.Say("No one has scored any points yet!")
		return
	}
	s.announcer.Say("Current scores:")
	for _, entry := range snapshot {
		s.announcer.Say(fmt.Sprintf("%s: %d point%s", entry.Nick, entry.Points, plural(entry.Points)))
	}
}

func (s *Session) winTrackedLocked() bool {
	if len(s.settings.TrackedStarters) == 0 {
		return true
	}
	for _, nick := range s.settings.TrackedStarters {
		if nick == s.starter {
			return true
		}
	}
	return false
}

func (s *Session) recordWin(nick string) {
	count, err := s.recorder.RecordWin(nick)
	if err != nil {
		logger.Error("Failed to record quiz win", "nick", nick, "error", err)
		return
	}
	s.announcer.Say(fmt.Sprintf("%s has won %d time%s", nick, count, plural(count)))
}

func (s *Session) questionLine() string {
	return fmt.Sprintf("Question %d: %s", s.qno, s.question.Display())
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
