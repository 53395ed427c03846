// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Kurilov

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikurilov/canvaskeeper/internal/adapter"
	"github.com/ikurilov/canvaskeeper/internal/logger"
	"github.com/ikurilov/canvaskeeper/internal/status"
	"github.com/ikurilov/canvaskeeper/models"
)

// fakeGateway скриптуемый двойник ItemGateway: очередь ошибок на upsert,
// сигнальные каналы на каждый вызов.
type fakeGateway struct {
	mu         sync.Mutex
	fetchItems []models.WireItem
	fetchErr   error
	upsertErrs []error // очередь ошибок; после исчерпания — успех
	upserts    [][]models.WireItem
	upsertGate chan struct{} // если не nil, BatchUpsert блокируется до закрытия
	serverTime *time.Time
	deleteErr  error
	deletes    []string

	upsertDone chan struct{}
	deleteDone chan string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		upsertDone: make(chan struct{}, 32),
		deleteDone: make(chan string, 32),
	}
}

func (f *fakeGateway) FetchByBoard(_ context.Context, _ string) ([]models.WireItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]models.WireItem(nil), f.fetchItems...), nil
}

func (f *fakeGateway) BatchUpsert(_ context.Context, items []models.WireItem) ([]models.WireItem, error) {
	f.mu.Lock()
	gate := f.upsertGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	defer func() { f.upsertDone <- struct{}{} }()

	f.upserts = append(f.upserts, append([]models.WireItem(nil), items...))

	if len(f.upsertErrs) > 0 {
		err := f.upsertErrs[0]
		f.upsertErrs = f.upsertErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	serverTime := f.serverTime
	if serverTime == nil {
		serverTime = &now
	}
	saved := make([]models.WireItem, len(items))
	for i, item := range items {
		item.CreatedAt = serverTime
		item.UpdatedAt = serverTime
		saved[i] = item
	}
	return saved, nil
}

func (f *fakeGateway) DeleteByID(_ context.Context, itemID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	defer func() { f.deleteDone <- itemID }()

	f.deletes = append(f.deletes, itemID)
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	return true, nil
}

func (f *fakeGateway) upsertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.upserts)
}

func (f *fakeGateway) lastUpsert() []models.WireItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.upserts) == 0 {
		return nil
	}
	return f.upserts[len(f.upserts)-1]
}

func newTestEngine(t *testing.T, gw *fakeGateway, cfg Config) (*Engine, *status.Tracker) {
	t.Helper()
	tracker := status.NewTracker()
	e := New(gw, tracker, cfg, logger.Nop())
	t.Cleanup(e.Close)
	return e, tracker
}

func fastConfig() Config {
	return Config{
		AutoSaveDebounce: 30 * time.Millisecond,
		MaxRetryAttempts: 2,
		RetryBaseDelay:   2 * time.Millisecond,
	}
}

func waitSignal[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		panic("unreachable")
	}
}

func wireItem(id, boardID string) models.WireItem {
	return models.WireItem{
		ID:       id,
		BoardID:  boardID,
		ItemType: models.ItemTypeNote,
		Position: `{"x":0,"y":0,"z_index":0}`,
		Size:     `{"width":100,"height":80}`,
		Content:  `{"text":"hi"}`,
		Metadata: `{}`,
	}
}

// ── LoadItems ────────────────────────────────────────────────────────────────

func TestLoadItems_ReplacesWorkingSet(t *testing.T) {
	gw := newFakeGateway()
	gw.fetchItems = []models.WireItem{wireItem("a", "b1"), wireItem("b", "b1")}
	e, tracker := newTestEngine(t, gw, fastConfig())

	err := e.LoadItems(context.Background(), "b1")
	require.NoError(t, err)

	assert.Equal(t, "b1", e.BoardID())
	assert.Len(t, e.Items(), 2)
	assert.Zero(t, e.UnsavedCount())
	assert.Empty(t, e.Selection())
	assert.True(t, tracker.Online())
	assert.False(t, tracker.HasUnsavedChanges())
}

func TestLoadItems_FetchError(t *testing.T) {
	gw := newFakeGateway()
	gw.fetchErr = fmt.Errorf("%w: boom", adapter.ErrRemote)
	e, tracker := newTestEngine(t, gw, fastConfig())

	err := e.LoadItems(context.Background(), "b1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoad)
	assert.False(t, tracker.Online())
}

func TestLoadItems_SecondLoadDropsLocalState(t *testing.T) {
	gw := newFakeGateway()
	e, _ := newTestEngine(t, gw, fastConfig())

	require.NoError(t, e.LoadItems(context.Background(), "b1"))
	e.AddItem(models.Item{ItemType: models.ItemTypeNote})
	require.Equal(t, 1, e.UnsavedCount())

	gw.mu.Lock()
	gw.fetchItems = []models.WireItem{wireItem("x", "b2")}
	gw.mu.Unlock()

	require.NoError(t, e.LoadItems(context.Background(), "b2"))
	assert.Equal(t, "b2", e.BoardID())
	assert.Len(t, e.Items(), 1)
	assert.Zero(t, e.UnsavedCount(), "dirty set must be dropped on reload")
}

// ── AddItem / mutations ──────────────────────────────────────────────────────

func TestAddItem_AssignsIDAndMarksDirty(t *testing.T) {
	gw := newFakeGateway()
	e, tracker := newTestEngine(t, gw, fastConfig())
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	added := e.AddItem(models.Item{ItemType: models.ItemTypeNote})

	assert.NotEmpty(t, added.ID, "client assigns an id immediately")
	assert.Equal(t, "b1", added.BoardID)
	assert.Equal(t, 1, e.UnsavedCount())
	assert.True(t, tracker.HasUnsavedChanges())
}

func TestUpdateItem_UnknownID_NoOp(t *testing.T) {
	gw := newFakeGateway()
	e, tracker := newTestEngine(t, gw, fastConfig())
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	e.UpdateItemPosition("ghost", 1, 2)
	e.UpdateItemContent("ghost", map[string]any{"text": "x"})

	assert.Zero(t, e.UnsavedCount())
	assert.False(t, tracker.HasUnsavedChanges())
}

func TestUpdateItem_GeometryAndOpaqueFields(t *testing.T) {
	gw := newFakeGateway()
	gw.fetchItems = []models.WireItem{wireItem("a", "b1")}
	e, tracker := newTestEngine(t, gw, fastConfig())
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	itemByID := func(id string) models.Item {
		t.Helper()
		for _, item := range e.Items() {
			if item.ID == id {
				return item
			}
		}
		t.Fatalf("item %s not found", id)
		panic("unreachable")
	}

	e.UpdateItemSize("a", 320, 240)
	got := itemByID("a")
	assert.Equal(t, models.Size{Width: 320, Height: 240}, got.Size)

	e.UpdateItemSizeAndPosition("a", 160, 120, 10, 20)
	got = itemByID("a")
	assert.Equal(t, models.Size{Width: 160, Height: 120}, got.Size)
	assert.Equal(t, 10.0, got.Position.X)
	assert.Equal(t, 20.0, got.Position.Y)

	e.UpdateItemZIndex("a", 7)
	got = itemByID("a")
	assert.Equal(t, 7, got.Position.ZIndex)
	assert.Equal(t, 10.0, got.Position.X, "z-index change keeps x/y")

	e.UpdateItemMetadata("a", map[string]any{"color": "yellow"})
	got = itemByID("a")
	assert.Equal(t, map[string]any{"color": "yellow"}, got.Metadata)

	assert.Equal(t, 1, e.UnsavedCount(), "one item stays one dirty entry")
	assert.True(t, tracker.HasUnsavedChanges())
}

func TestOnItemsChanged_FiresOnMutation(t *testing.T) {
	gw := newFakeGateway()
	gw.fetchItems = []models.WireItem{wireItem("a", "b1")}
	e, _ := newTestEngine(t, gw, fastConfig())

	var calls int
	e.OnItemsChanged(func() { calls++ })

	require.NoError(t, e.LoadItems(context.Background(), "b1"))
	e.UpdateItemPosition("a", 5, 5)

	assert.Equal(t, 2, calls, "load and mutation each notify once")
}

// ── debounce / auto-save ─────────────────────────────────────────────────────

func TestAutoSave_CoalescesBurstIntoOneBatch(t *testing.T) {
	gw := newFakeGateway()
	gw.fetchItems = []models.WireItem{wireItem("a", "b1"), wireItem("b", "b1")}
	e, _ := newTestEngine(t, gw, fastConfig())
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	// шквал перемещений только по "a"; "b" остаётся чистым
	for i := 1; i <= 7; i++ {
		e.UpdateItemPosition("a", float64(i), float64(i))
	}

	waitSignal(t, gw.upsertDone, "debounced batch save")

	require.Equal(t, 1, gw.upsertCount(), "burst must coalesce into a single upsert")
	batch := gw.lastUpsert()
	require.Len(t, batch, 1)
	assert.Equal(t, "a", batch[0].ID)

	var pos models.Position
	require.NoError(t, json.Unmarshal([]byte(batch[0].Position), &pos))
	assert.Equal(t, 7.0, pos.X)
	assert.Equal(t, 7.0, pos.Y)

	assert.Zero(t, e.UnsavedCount())
}

func TestAutoSave_MutationRestartsDebounce(t *testing.T) {
	gw := newFakeGateway()
	gw.fetchItems = []models.WireItem{wireItem("a", "b1")}
	cfg := fastConfig()
	cfg.AutoSaveDebounce = 60 * time.Millisecond
	e, _ := newTestEngine(t, gw, cfg)
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	e.UpdateItemPosition("a", 1, 1)
	time.Sleep(35 * time.Millisecond)
	e.UpdateItemPosition("a", 2, 2)
	time.Sleep(35 * time.Millisecond)

	// второй апдейт перезапустил таймер: 35ms после него — сохранения ещё нет
	assert.Zero(t, gw.upsertCount())

	waitSignal(t, gw.upsertDone, "restarted debounce to fire")
	assert.Equal(t, 1, gw.upsertCount())
}

// ── BatchSave / SaveNow ──────────────────────────────────────────────────────

func TestBatchSave_EmptyDirtySet_NoCall(t *testing.T) {
	gw := newFakeGateway()
	e, _ := newTestEngine(t, gw, fastConfig())
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	e.SaveNow(context.Background())

	assert.Zero(t, gw.upsertCount())
}

func TestSaveNow_FlushesImmediately(t *testing.T) {
	gw := newFakeGateway()
	cfg := fastConfig()
	cfg.AutoSaveDebounce = time.Hour // таймер сам не успеет
	e, tracker := newTestEngine(t, gw, cfg)
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	e.AddItem(models.Item{ItemType: models.ItemTypeTodo})
	e.SaveNow(context.Background())

	assert.Equal(t, 1, gw.upsertCount())
	assert.Zero(t, e.UnsavedCount())
	assert.False(t, tracker.HasUnsavedChanges())
	assert.True(t, tracker.Online())
}

func TestBatchSave_RetriesTransportErrorThenSucceeds(t *testing.T) {
	gw := newFakeGateway()
	gw.upsertErrs = []error{fmt.Errorf("%w: status 503", adapter.ErrRemote)}
	e, tracker := newTestEngine(t, gw, fastConfig())
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	e.AddItem(models.Item{ItemType: models.ItemTypeNote})
	e.SaveNow(context.Background())

	assert.Equal(t, 2, gw.upsertCount(), "first attempt fails, retry succeeds")
	assert.Zero(t, e.UnsavedCount())
	assert.True(t, tracker.Online())
}

func TestBatchSave_NonRetryableErrorStopsAtOnce(t *testing.T) {
	gw := newFakeGateway()
	gw.upsertErrs = []error{fmt.Errorf("%w: bad payload", adapter.ErrValidation)}
	e, tracker := newTestEngine(t, gw, fastConfig())
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	e.AddItem(models.Item{ItemType: models.ItemTypeNote})
	e.SaveNow(context.Background())

	assert.Equal(t, 1, gw.upsertCount(), "validation errors must not be retried")
	assert.Equal(t, 1, e.UnsavedCount(), "dirty set kept for a later save")
	assert.False(t, tracker.Online())
}

func TestBatchSave_RetriesExhausted_KeepsDirtySet(t *testing.T) {
	gw := newFakeGateway()
	remote := fmt.Errorf("%w: connection refused", adapter.ErrRemote)
	gw.upsertErrs = []error{remote, remote, remote}
	e, tracker := newTestEngine(t, gw, fastConfig())
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	e.AddItem(models.Item{ItemType: models.ItemTypeNote})
	e.SaveNow(context.Background())

	// 1 попытка + MaxRetryAttempts(2) ретрая
	assert.Equal(t, 3, gw.upsertCount())
	assert.Equal(t, 1, e.UnsavedCount())
	assert.False(t, tracker.Online())

	// следующий SaveNow пробует те же элементы снова
	e.SaveNow(context.Background())
	assert.Equal(t, 4, gw.upsertCount())
	assert.Zero(t, e.UnsavedCount())
	assert.True(t, tracker.Online())
}

func TestBatchSave_SingleFlight(t *testing.T) {
	gw := newFakeGateway()
	gate := make(chan struct{})
	gw.upsertGate = gate
	cfg := fastConfig()
	cfg.AutoSaveDebounce = time.Hour
	e, _ := newTestEngine(t, gw, cfg)
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	e.AddItem(models.Item{ItemType: models.ItemTypeNote})

	done := make(chan struct{})
	go func() {
		e.BatchSave(context.Background())
		close(done)
	}()

	// дождаться, пока первый save повиснет на шлюзе
	require.Eventually(t, func() bool {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.saving
	}, time.Second, time.Millisecond)

	// второй вызов должен выйти сразу, не дойдя до шлюза
	e.BatchSave(context.Background())

	close(gate)
	waitSignal(t, done, "first batch save to finish")
	assert.Equal(t, 1, gw.upsertCount())
}

func TestBatchSave_ReconcilesServerTimestamps(t *testing.T) {
	gw := newFakeGateway()
	serverTime := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	gw.serverTime = &serverTime
	e, _ := newTestEngine(t, gw, fastConfig())
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	added := e.AddItem(models.Item{ItemType: models.ItemTypeNote})
	e.SaveNow(context.Background())

	items := e.Items()
	require.Len(t, items, 1)
	require.Equal(t, added.ID, items[0].ID)
	require.NotNil(t, items[0].UpdatedAt)
	assert.True(t, items[0].UpdatedAt.Equal(serverTime), "server timestamp wins after save")
}

// ── RemoveItem / selection ───────────────────────────────────────────────────

func TestRemoveItem_DeletesRemotelyExactlyOnce(t *testing.T) {
	gw := newFakeGateway()
	gw.fetchItems = []models.WireItem{wireItem("a", "b1"), wireItem("b", "b1")}
	e, _ := newTestEngine(t, gw, fastConfig())
	require.NoError(t, e.LoadItems(context.Background(), "b1"))
	e.UpdateSelection([]string{"a", "b"})

	e.RemoveItem("a")

	deletedID := waitSignal(t, gw.deleteDone, "remote delete")
	assert.Equal(t, "a", deletedID)

	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, []string{"b"}, e.Selection(), "removal also drops the id from selection")

	gw.mu.Lock()
	deletes := len(gw.deletes)
	gw.mu.Unlock()
	assert.Equal(t, 1, deletes)
}

func TestRemoveItem_FailedRemoteDeleteStaysRemovedLocally(t *testing.T) {
	gw := newFakeGateway()
	gw.fetchItems = []models.WireItem{wireItem("a", "b1")}
	gw.deleteErr = fmt.Errorf("%w: status 503", adapter.ErrRemote)
	e, tracker := newTestEngine(t, gw, fastConfig())
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	e.RemoveItem("a")
	waitSignal(t, gw.deleteDone, "remote delete attempt")

	assert.Empty(t, e.Items(), "removal is locally final")
	require.Eventually(t, func() bool { return !tracker.Online() }, time.Second, time.Millisecond)
}

func TestRemoveItem_DropsPendingDirtyEntry(t *testing.T) {
	gw := newFakeGateway()
	cfg := fastConfig()
	cfg.AutoSaveDebounce = time.Hour
	e, _ := newTestEngine(t, gw, cfg)
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	added := e.AddItem(models.Item{ItemType: models.ItemTypeNote})
	require.Equal(t, 1, e.UnsavedCount())

	e.RemoveItem(added.ID)
	waitSignal(t, gw.deleteDone, "remote delete")

	assert.Zero(t, e.UnsavedCount(), "removed item must not be saved later")
	e.SaveNow(context.Background())
	assert.Zero(t, gw.upsertCount())
}

func TestDeleteSelectedItems_RemovesEverySelected(t *testing.T) {
	gw := newFakeGateway()
	gw.fetchItems = []models.WireItem{wireItem("a", "b1"), wireItem("b", "b1"), wireItem("c", "b1")}
	e, _ := newTestEngine(t, gw, fastConfig())
	require.NoError(t, e.LoadItems(context.Background(), "b1"))

	e.UpdateSelection([]string{"a", "c"})
	e.DeleteSelectedItems()

	first := waitSignal(t, gw.deleteDone, "first remote delete")
	second := waitSignal(t, gw.deleteDone, "second remote delete")
	assert.ElementsMatch(t, []string{"a", "c"}, []string{first, second})

	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
	assert.Empty(t, e.Selection())
}

func TestUpdateSelection_NotifiesSubscribers(t *testing.T) {
	gw := newFakeGateway()
	e, _ := newTestEngine(t, gw, fastConfig())

	var got []string
	e.OnSelectionChanged(func(ids []string) { got = ids })

	e.UpdateSelection([]string{"x", "y"})

	assert.Equal(t, []string{"x", "y"}, got)
	assert.Equal(t, []string{"x", "y"}, e.Selection())
}
