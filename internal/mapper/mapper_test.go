package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikurilov/canvaskeeper/models"
)

// ── ToWire / FromWire ────────────────────────────────────────────────────────

func TestToWire_FromWire_RoundTrip(t *testing.T) {
	created := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	item := models.Item{
		ID:        "item-1",
		BoardID:   "board-1",
		OwnerID:   "owner-1",
		ItemType:  models.ItemTypeNote,
		Position:  models.Position{X: 10.5, Y: -3, ZIndex: 2},
		Size:      models.Size{Width: 200, Height: 120},
		Content:   map[string]any{"text": "hello"},
		Metadata:  map[string]any{"color": "yellow"},
		CreatedAt: &created,
		UpdatedAt: &updated,
	}

	got := FromWire(ToWire(item))

	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, item.BoardID, got.BoardID)
	assert.Equal(t, item.OwnerID, got.OwnerID)
	assert.Equal(t, item.ItemType, got.ItemType)
	assert.Equal(t, item.Position, got.Position)
	assert.Equal(t, item.Size, got.Size)
	assert.Equal(t, item.Content, got.Content)
	assert.Equal(t, item.Metadata, got.Metadata)
	assert.Equal(t, item.CreatedAt, got.CreatedAt)
	assert.Equal(t, item.UpdatedAt, got.UpdatedAt)
}

func TestToWire_NilMapsBecomeEmptyObjects(t *testing.T) {
	wire := ToWire(models.Item{ID: "x", ItemType: models.ItemTypeLink})

	assert.Equal(t, "{}", wire.Content)
	assert.Equal(t, "{}", wire.Metadata)
}

func TestFromWire_MalformedFieldsFallBackToDefaults(t *testing.T) {
	wire := models.WireItem{
		ID:       "item-1",
		BoardID:  "board-1",
		ItemType: models.ItemTypeImage,
		Position: `{"x": broken`,
		Size:     `not json at all`,
		Content:  `[1,2,3]`, // валидный JSON, но не объект
		Metadata: `null`,
	}

	item := FromWire(wire)

	assert.Equal(t, "item-1", item.ID, "broken columns must not lose the item")
	assert.Equal(t, models.Position{}, item.Position)
	assert.Equal(t, models.Size{}, item.Size)
	assert.Equal(t, map[string]any{}, item.Content)
	assert.Equal(t, map[string]any{}, item.Metadata)
}

func TestFromWire_EmptyFields(t *testing.T) {
	item := FromWire(models.WireItem{ID: "item-1"})

	assert.Equal(t, models.Position{}, item.Position)
	assert.Equal(t, models.Size{}, item.Size)
	assert.NotNil(t, item.Content)
	assert.NotNil(t, item.Metadata)
}

// ── batch helpers ────────────────────────────────────────────────────────────

func TestFromWireBatch_OneBrokenRecordDoesNotAffectOthers(t *testing.T) {
	wire := []models.WireItem{
		{ID: "good", ItemType: models.ItemTypeNote, Position: `{"x":1,"y":2,"z_index":0}`},
		{ID: "bad", ItemType: models.ItemTypeNote, Position: `{{{`},
	}

	items := FromWireBatch(wire)
	require.Len(t, items, 2)

	assert.Equal(t, 1.0, items[0].Position.X)
	assert.Equal(t, 2.0, items[0].Position.Y)
	assert.Equal(t, models.Position{}, items[1].Position)
}

func TestToWireBatch_PreservesOrder(t *testing.T) {
	items := []models.Item{
		{ID: "a", ItemType: models.ItemTypeNote},
		{ID: "b", ItemType: models.ItemTypeTodo},
	}

	wire := ToWireBatch(items)
	require.Len(t, wire, 2)
	assert.Equal(t, "a", wire[0].ID)
	assert.Equal(t, "b", wire[1].ID)
}
