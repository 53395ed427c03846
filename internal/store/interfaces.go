package store

import (
	"context"
	"time"

	"github.com/ikurilov/canvaskeeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts a new account and returns the persisted record.
	// Returns [ErrLoginAlreadyExists] when the login is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin looks an account up by login.
	// Returns [ErrNoUserWasFound] on an empty result.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// ItemRepository persists canvas items.
type ItemRepository interface {
	// GetItemsByBoard returns every item of the given board owned by ownerID.
	GetItemsByBoard(ctx context.Context, boardID, ownerID string) ([]models.WireItem, error)

	// BatchUpsert inserts-or-updates the given items in one transaction and
	// returns the persisted state of each, with server-side timestamps.
	BatchUpsert(ctx context.Context, ownerID string, items []models.WireItem) ([]models.WireItem, error)

	// DeleteByID removes one item scoped by owner. The boolean reports
	// whether a row was removed; a miss is not an error.
	DeleteByID(ctx context.Context, itemID, ownerID string) (bool, error)
}

// SessionStore keeps issued session tokens so that they can be checked and
// revoked before their JWT expiry.
type SessionStore interface {
	// Save stores the token identifier for userID with the given lifetime.
	Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error

	// Check reports whether the token identifier is still active.
	Check(ctx context.Context, tokenID string) (bool, error)

	// Revoke drops the token identifier.
	Revoke(ctx context.Context, tokenID string) error
}
