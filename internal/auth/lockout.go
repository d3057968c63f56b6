package auth

import (
	"sync"
	"time"
)

// Policy defaults matching the original gate.
const (
	DefaultMaxAttempts   = 3
	DefaultLockoutWindow = 24 * time.Hour
)

// LockoutTracker counts failed logins per client key and denies further
// attempts for a window once the limit is hit. State is in memory; a
// process restart forgives everyone.
type LockoutTracker struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	attempts    map[string]*attemptState
}

type attemptState struct {
	count    int
	lockedAt time.Time
}

func NewLockoutTracker(maxAttempts int, window time.Duration) *LockoutTracker {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if window <= 0 {
		window = DefaultLockoutWindow
	}
	return &LockoutTracker{
		maxAttempts: maxAttempts,
		window:      window,
		attempts:    make(map[string]*attemptState),
	}
}

// Locked reports whether the client is currently locked out and, if so,
// how long remains. An expired lockout clears the counter entirely.
func (t *LockoutTracker) Locked(key string, now time.Time) (bool, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.attempts[key]
	if st == nil || st.lockedAt.IsZero() {
		return false, 0
	}

	until := st.lockedAt.Add(t.window)
	if now.Before(until) {
		return true, until.Sub(now)
	}

	delete(t.attempts, key)
	return false, 0
}

// Fail records a failed attempt. It returns how many attempts remain and
// whether this failure triggered the lockout.
func (t *LockoutTracker) Fail(key string, now time.Time) (remaining int, locked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.attempts[key]
	if st == nil {
		st = &attemptState{}
		t.attempts[key] = st
	}

	st.count++
	if st.count >= t.maxAttempts {
		st.lockedAt = now
		return 0, true
	}
	return t.maxAttempts - st.count, false
}

// Reset clears the counter after a successful login.
func (t *LockoutTracker) Reset(key string) {
	t.mu.Lock()
	delete(t.attempts, key)
	t.mu.Unlock()
}
