package http

import (
	"errors"
	"net/http"

	"github.com/ikurilov/canvaskeeper/internal/service"
	"github.com/ikurilov/canvaskeeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrValidationFailed:        http.StatusBadRequest,

	store.ErrLoginAlreadyExists:     http.StatusConflict,
	store.ErrNoUserWasFound:         http.StatusNotFound,
	store.ErrItemNotSaved:           http.StatusInternalServerError,
	store.ErrItemOwnedByAnotherUser: http.StatusForbidden,

	// Transient database failures map to 503 so clients treat them as a
	// transport-class failure and retry the batch.
	store.ErrTransient: http.StatusServiceUnavailable,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	// ErrTransient wins over the wrapped low-level error so a retryable
	// failure is never downgraded to a plain 500.
	if errors.Is(err, store.ErrTransient) {
		return http.StatusServiceUnavailable
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
