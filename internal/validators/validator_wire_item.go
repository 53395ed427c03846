package validators

import (
	"context"
	"encoding/json"

	"github.com/ikurilov/canvaskeeper/models"
)

// Field name constants passed to Validate to restrict validation to a subset
// of wire item fields.
const (
	FieldItemID   = "item_id"
	FieldBoardID  = "board_id"
	FieldItemType = "item_type"
	FieldSize     = "size"
	FieldBatch    = "batch"
)

type WireItemValidator struct {
}

func NewWireItemValidator() Validator {
	return &WireItemValidator{}
}

func (v *WireItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.WireItem:
		return v.validateWireItem(ctx, value, fields...)
	case *models.WireItem:
		return v.validateWireItem(ctx, *value, fields...)

	case models.BatchUpsertRequest:
		return v.validateBatch(ctx, value, fields...)
	case *models.BatchUpsertRequest:
		return v.validateBatch(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *WireItemValidator) validateWireItem(ctx context.Context, item models.WireItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldItemID, FieldBoardID, FieldItemType, FieldSize}
	}

	for _, f := range fields {
		switch f {
		case FieldItemID:
			if item.ID == "" {
				return ErrInvalidItemID
			}
		case FieldBoardID:
			if item.BoardID == "" {
				return ErrInvalidBoardID
			}
		case FieldItemType:
			if !models.KnownItemType(item.ItemType) {
				return ErrInvalidItemType
			}
		case FieldSize:
			if !hasValidSize(item.Size) {
				return ErrInvalidSize
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *WireItemValidator) validateBatch(ctx context.Context, batch models.BatchUpsertRequest, fields ...string) error {
	if len(batch.Items) == 0 {
		return ErrEmptyBatch
	}

	for _, item := range batch.Items {
		if err := v.validateWireItem(ctx, item, fields...); err != nil {
			return err
		}
	}

	return nil
}

// hasValidSize accepts an empty size field (defaults apply downstream) but
// rejects negative dimensions. A size that fails to parse as JSON is left for
// the tolerant mapper to zero out, not rejected here.
func hasValidSize(raw string) bool {
	if raw == "" {
		return true
	}

	var size models.Size
	if err := json.Unmarshal([]byte(raw), &size); err != nil {
		return true
	}

	return size.Width >= 0 && size.Height >= 0
}
