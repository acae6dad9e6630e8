package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These run against the in-process fallback (no Redis in unit tests).

func TestTryLockExcludesSecondHolder(t *testing.T) {
	lock, err := TryLock("test:lock:a", time.Minute)
	require.NoError(t, err)

	_, err = TryLock("test:lock:a", time.Minute)
	assert.Equal(t, ErrLockHeld, err)

	lock.Unlock()

	again, err := TryLock("test:lock:a", time.Minute)
	require.NoError(t, err)
	again.Unlock()
}

func TestUnlockIsScopedToOwner(t *testing.T) {
	first, err := TryLock("test:lock:b", time.Minute)
	require.NoError(t, err)
	first.Unlock()

	second, err := TryLock("test:lock:b", time.Minute)
	require.NoError(t, err)

	// A stale handle must not release the new holder.
	first.Unlock()
	_, err = TryLock("test:lock:b", time.Minute)
	assert.Equal(t, ErrLockHeld, err)

	second.Unlock()
}

func TestNilLockUnlockIsSafe(t *testing.T) {
	var l *Lock
	l.Unlock()
}
