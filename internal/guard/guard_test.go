package guard

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockout_LocksAfterMaxAttempts(t *testing.T) {
	l := NewLockout()
	key := "arthas:admin"

	for i := 0; i < MaxAttempts-1; i++ {
		l.RecordFailure(key)
		assert.NoError(t, l.CheckLocked(key), "attempt %d should not lock", i+1)
	}

	l.RecordFailure(key)
	err := l.CheckLocked(key)
	require.Error(t, err)

	var appErr *domain.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "ACCOUNT_LOCKED", appErr.Code)
}

func TestLockout_SuccessClearsFailures(t *testing.T) {
	l := NewLockout()
	key := "jaina:admin"

	for i := 0; i < MaxAttempts; i++ {
		l.RecordFailure(key)
	}
	require.Error(t, l.CheckLocked(key))

	l.RecordSuccess(key)
	assert.NoError(t, l.CheckLocked(key))
}

func TestLockout_KeysAreIndependent(t *testing.T) {
	l := NewLockout()

	for i := 0; i < MaxAttempts; i++ {
		l.RecordFailure("locked:admin")
	}

	assert.Error(t, l.CheckLocked("locked:admin"))
	assert.NoError(t, l.CheckLocked("other:admin"))
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d should pass", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	require.True(t, rl.Allow("k"))
	require.False(t, rl.Allow("k"))

	time.Sleep(15 * time.Millisecond)
	assert.True(t, rl.Allow("k"))
}

func TestRateLimiter_ManyKeys(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	for i := 0; i < 100; i++ {
		assert.True(t, rl.Allow(fmt.Sprintf("key-%d", i)))
	}
}
