package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrItemNotSaved is returned when an upsert completes without error but
	// the number of affected rows is zero, meaning nothing was persisted.
	ErrItemNotSaved = errors.New("canvas item was not saved")

	// ErrItemOwnedByAnotherUser is returned when an upsert hits an existing
	// item id that belongs to a different owner. The owner guard on the update
	// arm makes such an upsert affect zero rows instead of stealing the item.
	ErrItemOwnedByAnotherUser = errors.New("canvas item belongs to another user")

	// ErrTransient marks a database failure that the classifier considers
	// retryable (connection loss, deadlock, serialization failure). The HTTP
	// layer maps it to 503 so clients treat it as a transport-class failure
	// and retry.
	ErrTransient = errors.New("transient database failure")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a read-only query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan canvas item row")

	// ErrScanningRows is returned when scanning fails during multi-row
	// iteration, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan canvas item rows")
)
