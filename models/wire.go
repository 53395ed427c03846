package models

import "time"

// WireItem is the transport and storage representation of an [Item].
//
// Position, Size, Content and Metadata travel as independently serialized
// JSON text, not as nested objects: the database stores each of them in a
// plain text column and the server never looks inside. The mapper package
// owns the conversion in both directions.
type WireItem struct {
	ID       string `json:"id"`
	BoardID  string `json:"board_id"`
	OwnerID  string `json:"owner_id"`
	ItemType string `json:"item_type"`

	Position string `json:"position"`
	Size     string `json:"size"`
	Content  string `json:"content"`
	Metadata string `json:"metadata"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// BatchUpsertRequest carries one batch of wire items to be inserted or
// updated in a single round trip.
type BatchUpsertRequest struct {
	Items  []WireItem `json:"items"`
	Length int        `json:"length"`
}

// BatchUpsertResponse returns the persisted state of every submitted item,
// including server-assigned ids and timestamps.
type BatchUpsertResponse struct {
	Items []WireItem `json:"items"`
}

// DeleteResponse reports whether a delete-by-id removed a row. A miss is not
// an error.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
