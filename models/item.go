// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Kurilov

package models

import "time"

// Item types supported by the canvas. The set is closed: the server rejects
// anything else, and the engine treats the value as opaque after creation.
const (
	ItemTypeNote  = "note"
	ItemTypeImage = "image"
	ItemTypeLink  = "link"
	ItemTypeTodo  = "todo"
)

// KnownItemType reports whether itemType belongs to the closed set of
// canvas item types.
func KnownItemType(itemType string) bool {
	switch itemType {
	case ItemTypeNote, ItemTypeImage, ItemTypeLink, ItemTypeTodo:
		return true
	}
	return false
}

// Position is the free-form 2D placement of an item plus its stacking order.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	ZIndex int     `json:"z_index"`
}

// Size is the rendered width and height of an item.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Item is a single piece of canvas content: a note, image, link or todo
// placed on a board.
//
// Content and Metadata are schema-less key-value containers. Their
// interpretation depends on the item type and happens in the rendering layer;
// the engine and the server treat both as opaque.
type Item struct {
	// ID is the stable unique identifier of the item. The client assigns a
	// UUID before the first optimistic render; the server keeps it on upsert.
	ID string `json:"id"`

	// BoardID identifies the owning board. Immutable after creation.
	BoardID string `json:"board_id"`

	// OwnerID identifies the owning user. Immutable; access scoping by the
	// remote store, never checked locally.
	OwnerID string `json:"owner_id"`

	// ItemType is one of the ItemType* constants. Immutable after creation.
	ItemType string `json:"item_type"`

	Position Position `json:"position"`
	Size     Size     `json:"size"`

	Content  map[string]any `json:"content"`
	Metadata map[string]any `json:"metadata"`

	// CreatedAt is set once by the server on first persistence.
	CreatedAt *time.Time `json:"created_at,omitempty"`

	// UpdatedAt is set by the server on every successful write and is the
	// last-write-wins conflict signal. The engine stamps a provisional local
	// value on mutation and overwrites it with the server value after a
	// successful save.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
