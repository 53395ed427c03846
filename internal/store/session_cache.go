package store

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ikurilov/canvaskeeper/internal/config"
	"github.com/ikurilov/canvaskeeper/internal/logger"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps issued token sessions in Redis so a token can be
// revoked before its JWT expiry. When Redis is unreachable the store falls
// back to an in-process map, which keeps a single-node deployment working at
// the cost of losing sessions on restart.
type RedisSessionStore struct {
	client *redis.Client
	logger *logger.Logger

	mu       sync.RWMutex
	fallback map[string]sessionEntry
}

type sessionEntry struct {
	userID    string
	expiresAt time.Time
}

// NewRedisSessionStore connects to Redis using the provided configuration.
// A failed ping is not fatal: the store starts in fallback mode and keeps
// trying Redis on every call.
func NewRedisSessionStore(ctx context.Context, cfg config.Redis, log *logger.Logger) *RedisSessionStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).
			Str("func", "NewRedisSessionStore").
			Str("addr", cfg.Addr).
			Msg("redis unavailable, session store starts in fallback mode")
	} else {
		log.Info().Str("func", "NewRedisSessionStore").Msg("connected to redis successfully")
	}

	return &RedisSessionStore{
		client:   client,
		logger:   log,
		fallback: make(map[string]sessionEntry),
	}
}

// Save records an active session for tokenID with the given ttl.
func (s *RedisSessionStore) Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	err := s.client.Set(ctx, sessionKeyPrefix+tokenID, userID, ttl).Err()
	if err == nil {
		return nil
	}

	s.logger.Warn().Err(err).
		Str("func", "RedisSessionStore.Save").
		Msg("redis set failed, saving session in fallback map")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()
	s.fallback[tokenID] = sessionEntry{userID: userID, expiresAt: time.Now().Add(ttl)}

	return nil
}

// Check reports whether tokenID belongs to an active, non-revoked session.
func (s *RedisSessionStore) Check(ctx context.Context, tokenID string) (bool, error) {
	_, err := s.client.Get(ctx, sessionKeyPrefix+tokenID).Result()
	if err == nil {
		return true, nil
	}
	if err == redis.Nil {
		// Redis is healthy and the session genuinely does not exist there,
		// but it may still live in the fallback map from an earlier outage.
		return s.checkFallback(tokenID), nil
	}

	s.logger.Warn().Err(err).
		Str("func", "RedisSessionStore.Check").
		Msg("redis get failed, checking fallback map")

	return s.checkFallback(tokenID), nil
}

// Revoke removes the session for tokenID from both Redis and the fallback.
func (s *RedisSessionStore) Revoke(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+tokenID).Err(); err != nil {
		s.logger.Warn().Err(err).
			Str("func", "RedisSessionStore.Revoke").
			Msg("redis del failed, revoking in fallback map only")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fallback, tokenID)

	return nil
}

func (s *RedisSessionStore) checkFallback(tokenID string) bool {
	s.mu.RLock()
	entry, ok := s.fallback[tokenID]
	s.mu.RUnlock()

	return ok && time.Now().Before(entry.expiresAt)
}

// evictExpiredLocked drops expired fallback entries. Caller holds s.mu.
func (s *RedisSessionStore) evictExpiredLocked() {
	now := time.Now()
	for id, entry := range s.fallback {
		if now.After(entry.expiresAt) {
			delete(s.fallback, id)
		}
	}
}
