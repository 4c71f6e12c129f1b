package client

import (
	"sync"
	"time"
)

const (
	maxFailedAttempts = 5
	lockoutDuration   = 30 * time.Second
)

// LoginThrottle is the client-held lockout state machine. It counts
// server-reported authentication failures and, on the fifth, refuses further
// submissions locally for thirty seconds. The state is ephemeral: it lives
// for the process and is a UX guard, not a security control (the server
// keeps its own rate limit).
//
// States: Normal (counting) and Locked (until lockoutUntil). Expiry returns
// the machine to Normal with the counter already at zero; no explicit
// transition call is needed.
type LoginThrottle struct {
	mu           sync.Mutex
	failed       int
	lockoutUntil time.Time
	now          func() time.Time
}

func NewLoginThrottle() *LoginThrottle {
	return &LoginThrottle{now: time.Now}
}

// WithClock replaces the throttle's clock and returns the throttle.
func (t *LoginThrottle) WithClock(now func() time.Time) *LoginThrottle {
	t.now = now
	return t
}

// Allow reports whether a login attempt may be submitted. While locked it
// returns false and the time remaining until the lockout expires.
func (t *LoginThrottle) Allow() (bool, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if remaining := t.lockoutUntil.Sub(t.now()); remaining > 0 {
		return false, remaining
	}
	return true, 0
}

// RecordFailure counts a server-reported authentication failure. Client-side
// validation failures must not be recorded. The fifth consecutive failure
// engages the lockout and resets the counter.
func (t *LoginThrottle) RecordFailure() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.failed++
	if t.failed >= maxFailedAttempts {
		t.lockoutUntil = t.now().Add(lockoutDuration)
		t.failed = 0
	}
}

// RecordSuccess resets the failure counter.
func (t *LoginThrottle) RecordSuccess() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed = 0
}

// FailedAttempts returns the current counter, for remaining-attempts hints.
func (t *LoginThrottle) FailedAttempts() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}
