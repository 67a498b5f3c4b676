package auth

import (
	"sync"
	"time"
)

// LoginLimiter locks out a client/login pair after repeated failed logins.
type LoginLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*loginAttempts
	maxFailures int
	window      time.Duration
	lockout     time.Duration
	now         func() time.Time
}

type loginAttempts struct {
	failures    int
	windowStart time.Time
	lockedUntil time.Time
}

// NewLoginLimiter allows maxFailures failed logins per window before locking
// the pair out for lockout.
func NewLoginLimiter(maxFailures int, window, lockout time.Duration) *LoginLimiter {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	if lockout <= 0 {
		lockout = 30 * time.Minute
	}
	return &LoginLimiter{
		attempts:    make(map[string]*loginAttempts),
		maxFailures: maxFailures,
		window:      window,
		lockout:     lockout,
		now:         time.Now,
	}
}

func limiterKey(ip, login string) string {
	return ip + ":" + login
}

// Allow reports whether a login attempt may proceed and, if not, how long
// the caller must wait.
func (l *LoginLimiter) Allow(ip, login string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.attempts[limiterKey(ip, login)]
	if !ok {
		return true, 0
	}
	now := l.now()
	if now.Before(a.lockedUntil) {
		return false, a.lockedUntil.Sub(now)
	}
	return true, 0
}

// RecordFailure counts a failed login and reports whether it triggered a lockout.
func (l *LoginLimiter) RecordFailure(ip, login string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := limiterKey(ip, login)
	a, ok := l.attempts[key]
	if !ok || now.Sub(a.windowStart) > l.window {
		a = &loginAttempts{windowStart: now}
		l.attempts[key] = a
	}

	a.failures++
	if a.failures >= l.maxFailures {
		a.lockedUntil = now.Add(l.lockout)
		return true
	}
	return false
}

func (l *LoginLimiter) RecordSuccess(ip, login string) {
	l.mu.Lock()
	delete(l.attempts, limiterKey(ip, login))
	l.mu.Unlock()
}

// Prune drops records whose window and lockout have both expired.
func (l *LoginLimiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, a := range l.attempts {
		if now.Sub(a.windowStart) > l.window && !now.Before(a.lockedUntil) {
			delete(l.attempts, key)
		}
	}
}
