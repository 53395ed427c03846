package store

import (
	"context"

	"github.com/ikurilov/canvaskeeper/internal/config"
	"github.com/ikurilov/canvaskeeper/internal/logger"
)

// Storages bundles every persistence dependency the service layer needs.
type Storages struct {
	UserRepository UserRepository
	ItemRepository ItemRepository
	SessionStore   SessionStore

	// DB exposes the shared connection so the entrypoint can run migrations
	// against it before any request is served.
	DB *DB
}

// NewStorages opens the PostgreSQL connection, wires the repositories around
// it, and connects the Redis-backed session store.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		ItemRepository: NewItemRepository(db, log),
		SessionStore:   NewRedisSessionStore(ctx, cfg.Redis, log),
		DB:             db,
	}, nil
}
