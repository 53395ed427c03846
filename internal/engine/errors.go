package engine

import "errors"

var (
	// ErrLoad wraps a failed board load. It is the only error the engine
	// returns to its caller: save and delete failures are absorbed and
	// surface through the status tracker instead.
	ErrLoad = errors.New("board load failed")
)
