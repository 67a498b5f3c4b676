package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiter_LocksAfterMaxFailures(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(3, time.Minute, 10*time.Minute)
	l.now = func() time.Time { return now }

	assert.False(t, l.RecordFailure("1.2.3.4", "admin"))
	assert.False(t, l.RecordFailure("1.2.3.4", "admin"))
	allowed, _ := l.Allow("1.2.3.4", "admin")
	assert.True(t, allowed)

	assert.True(t, l.RecordFailure("1.2.3.4", "admin"))
	allowed, wait := l.Allow("1.2.3.4", "admin")
	assert.False(t, allowed)
	assert.Equal(t, 10*time.Minute, wait)

	other, _ := l.Allow("5.6.7.8", "admin")
	assert.True(t, other)

	now = now.Add(11 * time.Minute)
	allowed, _ = l.Allow("1.2.3.4", "admin")
	assert.True(t, allowed)
}

func TestLoginLimiter_SuccessClears(t *testing.T) {
	l := NewLoginLimiter(2, time.Minute, time.Minute)

	l.RecordFailure("ip", "user")
	l.RecordSuccess("ip", "user")

	assert.False(t, l.RecordFailure("ip", "user"))
}

func TestLoginLimiter_Prune(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(5, time.Minute, time.Minute)
	l.now = func() time.Time { return now }

	l.RecordFailure("ip", "user")
	l.Prune()
	assert.Len(t, l.attempts, 1)

	now = now.Add(2 * time.Minute)
	l.Prune()
	assert.Empty(t, l.attempts)
}
