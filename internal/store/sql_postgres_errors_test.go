package store

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify_RetryableCodes(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	retryable := []string{
		pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow,
	}

	for _, code := range retryable {
		assert.Equal(t, Retryable, classifier.Classify(&pgconn.PgError{Code: code}), "code %s", code)
	}
}

func TestClassify_NonRetryableCodes(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	nonRetryable := []string{
		pgerrcode.UniqueViolation,
		pgerrcode.SyntaxError,
		pgerrcode.UndefinedTable,
		pgerrcode.NotNullViolation,
	}

	for _, code := range nonRetryable {
		assert.Equal(t, NonRetryable, classifier.Classify(&pgconn.PgError{Code: code}), "code %s", code)
	}
}

func TestClassify_NilAndForeignErrors(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	assert.Equal(t, NonRetryable, classifier.Classify(nil))
	assert.Equal(t, NonRetryable, classifier.Classify(errors.New("not a pg error")))
}

func TestClassify_WrappedPgError(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	wrapped := errors.Join(errors.New("query failed"), &pgconn.PgError{Code: pgerrcode.DeadlockDetected})
	assert.Equal(t, Retryable, classifier.Classify(wrapped))
}
