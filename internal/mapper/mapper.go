// Package mapper converts between the in-memory [models.Item] and the wire
// representation [models.WireItem].
//
// The wire format stores position, size, content and metadata as
// independently serialized JSON text fields. Deserialization is tolerant: a
// malformed or missing field decodes to that field's empty default instead of
// failing the item, so one corrupt column never aborts loading a batch.
package mapper

import (
	"encoding/json"

	"github.com/ikurilov/canvaskeeper/models"
)

// ToWire serializes item into its transport representation.
func ToWire(item models.Item) models.WireItem {
	return models.WireItem{
		ID:        item.ID,
		BoardID:   item.BoardID,
		OwnerID:   item.OwnerID,
		ItemType:  item.ItemType,
		Position:  marshalField(item.Position),
		Size:      marshalField(item.Size),
		Content:   marshalMap(item.Content),
		Metadata:  marshalMap(item.Metadata),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// ToWireBatch serializes a slice of items.
func ToWireBatch(items []models.Item) []models.WireItem {
	wire := make([]models.WireItem, 0, len(items))
	for _, item := range items {
		wire = append(wire, ToWire(item))
	}
	return wire
}

// FromWire deserializes a wire record into an [models.Item]. Malformed JSON
// in any of the four opaque fields yields that field's empty default.
func FromWire(wire models.WireItem) models.Item {
	item := models.Item{
		ID:        wire.ID,
		BoardID:   wire.BoardID,
		OwnerID:   wire.OwnerID,
		ItemType:  wire.ItemType,
		Content:   map[string]any{},
		Metadata:  map[string]any{},
		CreatedAt: wire.CreatedAt,
		UpdatedAt: wire.UpdatedAt,
	}

	// Errors are deliberately dropped: a broken column falls back to the
	// zero value and the rest of the item survives.
	if wire.Position != "" {
		_ = json.Unmarshal([]byte(wire.Position), &item.Position)
	}
	if wire.Size != "" {
		_ = json.Unmarshal([]byte(wire.Size), &item.Size)
	}
	if wire.Content != "" {
		var content map[string]any
		if err := json.Unmarshal([]byte(wire.Content), &content); err == nil && content != nil {
			item.Content = content
		}
	}
	if wire.Metadata != "" {
		var metadata map[string]any
		if err := json.Unmarshal([]byte(wire.Metadata), &metadata); err == nil && metadata != nil {
			item.Metadata = metadata
		}
	}

	return item
}

// FromWireBatch deserializes a slice of wire records. A malformed field in
// one record never affects the others.
func FromWireBatch(wire []models.WireItem) []models.Item {
	items := make([]models.Item, 0, len(wire))
	for _, w := range wire {
		items = append(items, FromWire(w))
	}
	return items
}

func marshalField(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func marshalMap(m map[string]any) string {
	if m == nil {
		m = map[string]any{}
	}
	return marshalField(m)
}
