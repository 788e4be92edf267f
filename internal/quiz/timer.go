package quiz

import (
	"sync"
	"time"
)

// SessionTimer holds at most one pending callback. Arming replaces and
// cancels whatever was armed before, so a session can never have two
// timers in flight for the same scope.
type SessionTimer struct {
	mu sync.Mutex
	t  *time.Timer
}

// Arm schedules fn after delay, canceling any previously armed callback.
func (st *SessionTimer) Arm(delay time.Duration, fn func()) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.t != nil {
		st.t.Stop()
	}
	st.t = time.AfterFunc(delay, fn)
}

// Cancel stops the pending callback if any. Safe to call repeatedly or
// when nothing is armed.
func (st *SessionTimer) Cancel() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.t != nil {
		st.t.Stop()
		st.t = nil
	}
}
