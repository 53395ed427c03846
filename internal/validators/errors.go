package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidItemID   = errors.New("invalid item id")
	ErrInvalidBoardID  = errors.New("invalid board id")
	ErrInvalidItemType = errors.New("invalid item type")
	ErrInvalidSize     = errors.New("invalid size")
	ErrEmptyBatch      = errors.New("items list cannot be empty")
)
