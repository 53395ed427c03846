// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Kurilov

// Package adapter provides transport-layer abstractions for communicating
// with the canvaskeeper server.
//
// The primary abstractions are [AuthClient] for the credential flow and
// [ItemGateway] for canvas item persistence. The package ships an HTTP/REST
// implementation ([NewHTTPGateway]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling. The canvas state engine retries only [ErrRemote]-class
// failures; everything else is terminal for a save attempt.
package adapter

import (
	"context"

	"github.com/ikurilov/canvaskeeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/gateway_mock.go -package=mock

// AuthClient defines the credential flow against the canvaskeeper server.
// Implementations manage the bearer token attached to item requests.
type AuthClient interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It is called automatically after a
	// successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored, or an empty string if
	// none has been set yet.
	Token() string

	// Register sends a registration request with the provided credentials.
	// On success it stores the returned bearer token via SetToken.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates an existing user. On success it stores the
	// returned bearer token via SetToken.
	Login(ctx context.Context, user models.User) (models.Token, error)
}

// ItemGateway defines transport-agnostic access to the remote canvas item
// collection. Implementations are responsible for serialization,
// authentication headers, and mapping transport failures to the sentinel
// errors of this package.
type ItemGateway interface {
	// FetchByBoard retrieves every wire item belonging to the given board.
	FetchByBoard(ctx context.Context, boardID string) ([]models.WireItem, error)

	// BatchUpsert inserts-or-updates the given items in a single round trip
	// and returns the persisted state of every submitted item, including
	// server-assigned ids and timestamps.
	BatchUpsert(ctx context.Context, items []models.WireItem) ([]models.WireItem, error)

	// DeleteByID removes one item. The boolean reports whether a row was
	// actually removed; a miss is not an error.
	DeleteByID(ctx context.Context, itemID string) (bool, error)
}
