// Package guard holds abuse protections for the login surface: a failed-login
// lockout tracker and a sliding-window rate limiter. Both are in-process so
// they work identically under either database backend.
package guard

import (
	"sync"
	"time"

	"github.com/guttakrutt/guildsite/internal/domain"
)

const (
	MaxAttempts   = 5
	LockoutWindow = 15 * time.Minute
)

// Lockout tracks failed login attempts per key (username + realm).
type Lockout struct {
	mu       sync.Mutex
	failures map[string][]time.Time
}

// NewLockout creates an empty lockout tracker.
func NewLockout() *Lockout {
	return &Lockout{failures: make(map[string][]time.Time)}
}

// RecordFailure registers one failed login attempt for the key.
func (l *Lockout) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[key] = append(l.prune(key), time.Now())
}

// RecordSuccess clears the failure history for the key.
func (l *Lockout) RecordSuccess(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, key)
}

// CheckLocked returns ErrAccountLocked if the key has MaxAttempts or more
// failures within the lockout window.
func (l *Lockout) CheckLocked(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	valid := l.prune(key)
	l.failures[key] = valid
	if len(valid) >= MaxAttempts {
		return domain.ErrAccountLocked("too many failed login attempts, try again later")
	}
	return nil
}

// prune drops failures older than the window. Caller holds the lock.
func (l *Lockout) prune(key string) []time.Time {
	cutoff := time.Now().Add(-LockoutWindow)
	entries := l.failures[key]
	valid := entries[:0]
	for _, t := range entries {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	return valid
}
