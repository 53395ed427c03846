package adapter

import "errors"

var (
	// ErrUnauthorized is returned on HTTP 401: the bearer token is missing,
	// expired, or invalid. Never retried by the engine.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrForbidden is returned on HTTP 403: authenticated but not permitted
	// to touch the addressed board or item. Never retried.
	ErrForbidden = errors.New("access forbidden")

	// ErrNotFound is returned on HTTP 404.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation is returned on HTTP 400: the server rejected the payload
	// shape. Never retried.
	ErrValidation = errors.New("invalid request payload")

	// ErrRemote wraps transport-class failures: timeouts, DNS errors,
	// connection resets, and 5xx responses. This is the only error class the
	// engine's batch-save pipeline retries.
	ErrRemote = errors.New("remote store unavailable")
)
