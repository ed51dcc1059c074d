package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohi-devhub/genie/internal/config"
)

func newTestWindow(t *testing.T, window time.Duration, max int) (*FixedWindow, *time.Time) {
	t.Helper()
	fw := NewFixedWindow(config.WindowConfig{Window: window, Max: max})
	t.Cleanup(fw.Stop)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fw.now = func() time.Time { return now }
	return fw, &now
}

func TestFixedWindowBudget(t *testing.T) {
	ctx := context.Background()
	fw, _ := newTestWindow(t, time.Minute, 3)

	for i := 0; i < 3; i++ {
		res, err := fw.Check(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	// budget spent: the (N+1)-th call within the window is denied
	res, err := fw.Check(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}

func TestFixedWindowResetsAfterExpiry(t *testing.T) {
	ctx := context.Background()
	fw, now := newTestWindow(t, time.Minute, 1)

	res, _ := fw.Check(ctx, "user-1")
	assert.True(t, res.Allowed)

	res, _ = fw.Check(ctx, "user-1")
	assert.False(t, res.Allowed)

	// after the window elapses the count restarts at 1
	*now = now.Add(time.Minute + time.Second)
	res, _ = fw.Check(ctx, "user-1")
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, now.Add(time.Minute), res.ResetTime)
}

func TestFixedWindowIdentitiesAreIndependent(t *testing.T) {
	ctx := context.Background()
	fw, _ := newTestWindow(t, time.Minute, 1)

	res, _ := fw.Check(ctx, "user-1")
	assert.True(t, res.Allowed)
	res, _ = fw.Check(ctx, "user-1")
	assert.False(t, res.Allowed)

	res, _ = fw.Check(ctx, "user-2")
	assert.True(t, res.Allowed)
}

func TestFixedWindowReset(t *testing.T) {
	ctx := context.Background()
	fw, _ := newTestWindow(t, time.Minute, 1)

	fw.Check(ctx, "user-1")
	res, _ := fw.Check(ctx, "user-1")
	assert.False(t, res.Allowed)

	fw.Reset("user-1")
	res, _ = fw.Check(ctx, "user-1")
	assert.True(t, res.Allowed)
}

func TestFixedWindowCleanupDropsExpired(t *testing.T) {
	ctx := context.Background()
	fw, now := newTestWindow(t, time.Minute, 5)

	fw.Check(ctx, "user-1")
	fw.Check(ctx, "user-2")

	*now = now.Add(2 * time.Minute)
	fw.cleanup()

	fw.mu.Lock()
	defer fw.mu.Unlock()
	assert.Empty(t, fw.entries)
}

func TestRedisWindow(t *testing.T) {
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	rw := NewRedisWindow(client, "vote", config.WindowConfig{Window: time.Minute, Max: 2})

	res, err := rw.Check(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)

	res, err = rw.Check(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	res, err = rw.Check(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	// other identities keep their own budget
	res, err = rw.Check(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	// key expiry resets the window
	mr.FastForward(time.Minute + time.Second)
	res, err = rw.Check(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
}
