package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikurilov/canvaskeeper/internal/config"
	"github.com/ikurilov/canvaskeeper/internal/logger"
)

// newFallbackSessionStore points the client at a closed port so every redis
// call fails fast and the store runs purely on the fallback map.
func newFallbackSessionStore(t *testing.T) *RedisSessionStore {
	t.Helper()
	return NewRedisSessionStore(context.Background(), config.Redis{Addr: "127.0.0.1:1"}, logger.Nop())
}

func TestSessionStore_FallbackSaveAndCheck(t *testing.T) {
	s := newFallbackSessionStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok-1", "u-1", time.Hour))

	active, err := s.Check(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, active)
}

func TestSessionStore_UnknownTokenIsInactive(t *testing.T) {
	s := newFallbackSessionStore(t)

	active, err := s.Check(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestSessionStore_RevokeRemovesSession(t *testing.T) {
	s := newFallbackSessionStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok-1", "u-1", time.Hour))
	require.NoError(t, s.Revoke(ctx, "tok-1"))

	active, err := s.Check(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestSessionStore_ExpiredFallbackSessionIsInactive(t *testing.T) {
	s := newFallbackSessionStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok-1", "u-1", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	active, err := s.Check(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestSessionStore_SaveEvictsExpiredEntries(t *testing.T) {
	s := newFallbackSessionStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "old", "u-1", time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.Save(ctx, "fresh", "u-1", time.Hour))

	s.mu.RLock()
	_, oldKept := s.fallback["old"]
	s.mu.RUnlock()
	assert.False(t, oldKept, "expired entries are dropped on the next save")
}
