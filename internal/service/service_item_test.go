package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ikurilov/canvaskeeper/internal/logger"
	"github.com/ikurilov/canvaskeeper/internal/mock"
	"github.com/ikurilov/canvaskeeper/internal/store"
	"github.com/ikurilov/canvaskeeper/models"
)

func newTestItemService(t *testing.T) (ItemService, *mock.MockItemRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	items := mock.NewMockItemRepository(ctrl)
	return NewItemService(items, logger.Nop()), items
}

func validWireItem(id string) models.WireItem {
	return models.WireItem{
		ID:       id,
		BoardID:  "b1",
		ItemType: models.ItemTypeNote,
		Position: `{"x":1,"y":2,"z_index":0}`,
		Size:     `{"width":100,"height":80}`,
		Content:  `{"text":"hi"}`,
		Metadata: `{}`,
	}
}

// ── ListBoardItems ───────────────────────────────────────────────────────────

func TestListBoardItems_EmptyBoardID(t *testing.T) {
	svc, _ := newTestItemService(t)

	_, err := svc.ListBoardItems(context.Background(), "", "u-1")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestListBoardItems_DelegatesToRepository(t *testing.T) {
	svc, items := newTestItemService(t)

	items.EXPECT().
		GetItemsByBoard(gomock.Any(), "b1", "u-1").
		Return([]models.WireItem{validWireItem("a")}, nil)

	got, err := svc.ListBoardItems(context.Background(), "b1", "u-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

// ── BatchUpsert ──────────────────────────────────────────────────────────────

func TestBatchUpsert_AssignsMissingIDsAndOwner(t *testing.T) {
	svc, items := newTestItemService(t)

	withoutID := validWireItem("")

	var received []models.WireItem
	items.EXPECT().
		BatchUpsert(gomock.Any(), "u-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, batch []models.WireItem) ([]models.WireItem, error) {
			received = batch
			return batch, nil
		})

	_, err := svc.BatchUpsert(context.Background(), "u-1", models.BatchUpsertRequest{
		Items: []models.WireItem{withoutID},
	})
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.NotEmpty(t, received[0].ID, "items without an id get one before persisting")
	assert.Equal(t, "u-1", received[0].OwnerID)
}

func TestBatchUpsert_EmptyBatchRejected(t *testing.T) {
	svc, _ := newTestItemService(t)

	_, err := svc.BatchUpsert(context.Background(), "u-1", models.BatchUpsertRequest{})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestBatchUpsert_UnknownItemTypeRejected(t *testing.T) {
	svc, _ := newTestItemService(t)

	bad := validWireItem("a")
	bad.ItemType = "sticker"

	_, err := svc.BatchUpsert(context.Background(), "u-1", models.BatchUpsertRequest{
		Items: []models.WireItem{bad},
	})
	assert.ErrorIs(t, err, ErrValidationFailed, "repository must not see an invalid batch")
}

func TestBatchUpsert_RepositoryErrorPassesThrough(t *testing.T) {
	svc, items := newTestItemService(t)

	items.EXPECT().
		BatchUpsert(gomock.Any(), "u-1", gomock.Any()).
		Return(nil, store.ErrTransient)

	_, err := svc.BatchUpsert(context.Background(), "u-1", models.BatchUpsertRequest{
		Items: []models.WireItem{validWireItem("a")},
	})
	assert.ErrorIs(t, err, store.ErrTransient)
}

// ── DeleteItem ───────────────────────────────────────────────────────────────

func TestDeleteItem_EmptyID(t *testing.T) {
	svc, _ := newTestItemService(t)

	_, err := svc.DeleteItem(context.Background(), "", "u-1")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestDeleteItem_DelegatesToRepository(t *testing.T) {
	svc, items := newTestItemService(t)

	items.EXPECT().
		DeleteByID(gomock.Any(), "item-1", "u-1").
		Return(true, nil)

	deleted, err := svc.DeleteItem(context.Background(), "item-1", "u-1")
	require.NoError(t, err)
	assert.True(t, deleted)
}
