package auth

import (
	"sync"
	"time"
)

// LoginLimiter tracks failed login attempts per username and locks the
// account out once the threshold is reached within the window.
type LoginLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*attemptRecord
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time
}

type attemptRecord struct {
	count     int
	firstSeen time.Time
}

func NewLoginLimiter(maxAttempts int, lockout time.Duration) *LoginLimiter {
	return &LoginLimiter{
		attempts:    make(map[string]*attemptRecord),
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
	}
}

// Allow reports whether another attempt is permitted for the key.
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.attempts[key]
	if !ok {
		return true
	}
	if l.now().Sub(rec.firstSeen) > l.lockout {
		delete(l.attempts, key)
		return true
	}
	return rec.count < l.maxAttempts
}

// RecordFailure counts a failed attempt against the key.
func (l *LoginLimiter) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.attempts[key]
	if !ok || now.Sub(rec.firstSeen) > l.lockout {
		l.attempts[key] = &attemptRecord{count: 1, firstSeen: now}
		return
	}
	rec.count++
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}
