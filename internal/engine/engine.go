// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Kurilov

// Package engine implements the canvas state synchronization engine.
//
// One Engine owns the authoritative in-memory item list for one open board.
// Mutations apply optimistically and mark items dirty; a single debounce
// timer coalesces bursts of pointer-driven updates into one batch upsert per
// quiet period, retried with exponential backoff on transport failures.
// Save and delete failures never propagate to the caller: they surface only
// through the [status.Tracker].
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/ikurilov/canvaskeeper/internal/adapter"
	"github.com/ikurilov/canvaskeeper/internal/logger"
	"github.com/ikurilov/canvaskeeper/internal/mapper"
	"github.com/ikurilov/canvaskeeper/internal/status"
	"github.com/ikurilov/canvaskeeper/internal/utils"
	"github.com/ikurilov/canvaskeeper/models"
)

const (
	defaultAutoSaveDebounce = time.Second
	defaultMaxRetryAttempts = 3
	defaultRetryBaseDelay   = time.Second
)

// Config holds the auto-save tunables of one engine instance. Zero values
// fall back to the defaults: 1s debounce, 3 retries, 1s backoff base.
type Config struct {
	// AutoSaveDebounce is the quiet period after the last mutation before a
	// batch save fires.
	AutoSaveDebounce time.Duration

	// MaxRetryAttempts is the number of retries after the first failed
	// batch-save attempt (3 retries means 4 tries total).
	MaxRetryAttempts int

	// RetryBaseDelay is the base of the exponential backoff between retries:
	// the n-th retry waits RetryBaseDelay * 2^(n-1).
	RetryBaseDelay time.Duration
}

func (c Config) autoSaveDebounce() time.Duration {
	if c.AutoSaveDebounce <= 0 {
		return defaultAutoSaveDebounce
	}
	return c.AutoSaveDebounce
}

func (c Config) maxRetryAttempts() int {
	if c.MaxRetryAttempts <= 0 {
		return defaultMaxRetryAttempts
	}
	return c.MaxRetryAttempts
}

func (c Config) retryBaseDelay() time.Duration {
	if c.RetryBaseDelay <= 0 {
		return defaultRetryBaseDelay
	}
	return c.RetryBaseDelay
}

// Engine is the canvas state engine for one open board.
//
// All exported methods are safe for concurrent use: in-memory state is
// serialized behind one mutex, and the mutex is never held across network
// I/O, so mutating calls return without waiting for the save pipeline.
type Engine struct {
	gateway adapter.ItemGateway
	tracker *status.Tracker
	ids     *utils.UUIDGenerator
	cfg     Config
	logger  *logger.Logger

	mu       sync.Mutex
	boardID  string
	items    []*models.Item
	index    map[string]*models.Item
	dirty    map[string]struct{}
	selected []string
	debounce *time.Timer
	saving   bool

	onItemsChanged     []func()
	onSelectionChanged []func([]string)

	// ctx drives timer-fired saves and fire-and-forget deletes; cancelled by
	// Close.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New constructs an Engine backed by the given gateway and status tracker.
// The engine is empty until LoadItems is called.
func New(gateway adapter.ItemGateway, tracker *status.Tracker, cfg Config, log *logger.Logger) *Engine {
	ctx, cancel := context.WithCancel(context.Background())

	return &Engine{
		gateway: gateway,
		tracker: tracker,
		ids:     utils.NewUUIDGenerator(),
		cfg:     cfg,
		logger:  log,
		index:   make(map[string]*models.Item),
		dirty:   make(map[string]struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Close stops the debounce timer, cancels in-flight background work, and
// waits for fire-and-forget deletes to drain. Pending dirty items are not
// flushed; call SaveNow first when a final flush is wanted.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.debounce != nil {
		e.debounce.Stop()
		e.debounce = nil
	}
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()
}

// LoadItems fetches all items of boardID via the gateway and replaces the
// working set wholesale, clearing the dirty and selection sets.
//
// A failed load marks the tracker offline and returns a wrapped [ErrLoad];
// the engine never retries a full load on its own — the caller decides.
func (e *Engine) LoadItems(ctx context.Context, boardID string) error {
	wire, err := e.gateway.FetchByBoard(ctx, boardID)
	if err != nil {
		e.tracker.SetOnline(false)
		e.logger.Err(err).Str("board_id", boardID).Msg("board load failed")
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	loaded := mapper.FromWireBatch(wire)

	e.mu.Lock()
	e.stopDebounceLocked()
	e.boardID = boardID
	e.items = make([]*models.Item, 0, len(loaded))
	e.index = make(map[string]*models.Item, len(loaded))
	for i := range loaded {
		item := loaded[i]
		e.items = append(e.items, &item)
		e.index[item.ID] = &item
	}
	e.dirty = make(map[string]struct{})
	e.selected = nil
	e.mu.Unlock()

	e.tracker.SetOnline(true)
	e.tracker.SetUnsavedChanges(false)
	e.notifyItemsChanged()

	return nil
}

// AddItem appends item to the working set, marks it dirty, and restarts the
// debounce timer. An empty id receives a client-generated UUID immediately so
// selection and removal work before the first save completes. Never blocks on
// network I/O.
func (e *Engine) AddItem(item models.Item) models.Item {
	now := time.Now()

	e.mu.Lock()
	if item.ID == "" {
		item.ID = e.ids.Generate()
	}
	if item.BoardID == "" {
		item.BoardID = e.boardID
	}
	if item.Content == nil {
		item.Content = map[string]any{}
	}
	if item.Metadata == nil {
		item.Metadata = map[string]any{}
	}
	item.UpdatedAt = &now

	stored := item
	e.items = append(e.items, &stored)
	e.index[stored.ID] = &stored
	e.dirty[stored.ID] = struct{}{}
	e.restartDebounceLocked()
	e.mu.Unlock()

	e.tracker.SetUnsavedChanges(true)
	e.notifyItemsChanged()

	return item
}

// UpdateItemPosition moves an item. Unknown ids are a silent no-op.
func (e *Engine) UpdateItemPosition(id string, x, y float64) {
	e.mutateItem(id, func(item *models.Item) {
		item.Position.X = x
		item.Position.Y = y
	})
}

// UpdateItemSize resizes an item. Unknown ids are a silent no-op.
func (e *Engine) UpdateItemSize(id string, width, height float64) {
	e.mutateItem(id, func(item *models.Item) {
		item.Size.Width = width
		item.Size.Height = height
	})
}

// UpdateItemSizeAndPosition applies a resize that also moves the item's
// anchor, as corner-drag resizing does. Unknown ids are a silent no-op.
func (e *Engine) UpdateItemSizeAndPosition(id string, width, height, x, y float64) {
	e.mutateItem(id, func(item *models.Item) {
		item.Size.Width = width
		item.Size.Height = height
		item.Position.X = x
		item.Position.Y = y
	})
}

// UpdateItemZIndex restacks an item. Unknown ids are a silent no-op.
func (e *Engine) UpdateItemZIndex(id string, zIndex int) {
	e.mutateItem(id, func(item *models.Item) {
		item.Position.ZIndex = zIndex
	})
}

// UpdateItemContent replaces an item's content map. Unknown ids are a silent
// no-op.
func (e *Engine) UpdateItemContent(id string, content map[string]any) {
	e.mutateItem(id, func(item *models.Item) {
		if content == nil {
			content = map[string]any{}
		}
		item.Content = content
	})
}

// UpdateItemMetadata replaces an item's metadata map. Unknown ids are a
// silent no-op.
func (e *Engine) UpdateItemMetadata(id string, metadata map[string]any) {
	e.mutateItem(id, func(item *models.Item) {
		if metadata == nil {
			metadata = map[string]any{}
		}
		item.Metadata = metadata
	})
}

// mutateItem runs fn against the matching working-set item, stamps a
// provisional UpdatedAt (overwritten by the server value after a successful
// save), marks the item dirty, and restarts the debounce timer.
func (e *Engine) mutateItem(id string, fn func(item *models.Item)) {
	now := time.Now()

	e.mu.Lock()
	item, ok := e.index[id]
	if !ok {
		e.mu.Unlock()
		return
	}
	fn(item)
	item.UpdatedAt = &now
	e.dirty[id] = struct{}{}
	e.restartDebounceLocked()
	e.mu.Unlock()

	e.tracker.SetUnsavedChanges(true)
	e.notifyItemsChanged()
}

// RemoveItem removes an item from the working set, the dirty set, and the
// selection immediately, then issues a single fire-and-forget delete against
// the gateway. A failed remote delete is logged and flips the tracker
// offline, but never re-adds the item locally.
func (e *Engine) RemoveItem(id string) {
	e.mu.Lock()
	if _, ok := e.index[id]; !ok {
		e.mu.Unlock()
		return
	}

	delete(e.index, id)
	delete(e.dirty, id)
	for i, item := range e.items {
		if item.ID == id {
			e.items = append(e.items[:i], e.items[i+1:]...)
			break
		}
	}
	e.selected = removeID(e.selected, id)
	selection := append([]string(nil), e.selected...)
	unsaved := len(e.dirty) > 0
	e.mu.Unlock()

	e.tracker.SetUnsavedChanges(unsaved)
	e.notifyItemsChanged()
	e.notifySelectionChanged(selection)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		deleted, err := e.gateway.DeleteByID(e.ctx, id)
		if err != nil {
			e.logger.Err(err).Str("item_id", id).Msg("remote delete failed, item stays removed locally")
			e.tracker.SetOnline(false)
			return
		}

		e.tracker.SetOnline(true)
		if !deleted {
			e.logger.Debug().Str("item_id", id).Msg("remote delete matched no row")
		}
	}()
}

// UpdateSelection replaces the selection set with the given ids.
func (e *Engine) UpdateSelection(ids []string) {
	selection := append([]string(nil), ids...)

	e.mu.Lock()
	e.selected = selection
	e.mu.Unlock()

	e.notifySelectionChanged(append([]string(nil), selection...))
}

// DeleteSelectedItems removes every currently selected item. The selection is
// snapshotted first because each removal mutates it.
func (e *Engine) DeleteSelectedItems() {
	e.mu.Lock()
	selected := append([]string(nil), e.selected...)
	e.mu.Unlock()

	for _, id := range selected {
		e.RemoveItem(id)
	}
}

// SaveNow cancels any pending debounce timer and runs the batch save
// synchronously. Like the timer-fired path, failures are absorbed and exposed
// only through the tracker.
func (e *Engine) SaveNow(ctx context.Context) {
	e.mu.Lock()
	e.stopDebounceLocked()
	e.mu.Unlock()

	e.BatchSave(ctx)
}

// BatchSave flushes the dirty set in one batch upsert.
//
// The routine is single-flight: an invocation that observes another save in
// progress returns immediately and leaves the dirty set for the next trigger.
// An empty dirty set is a no-op. Transport-class failures are retried with
// exponential backoff up to the configured attempt limit; any other failure
// stops the attempt at once. On success the server's timestamps are
// reconciled back into the working set and the attempted ids leave the dirty
// set. On failure the dirty set is untouched, so a later mutation or SaveNow
// retries the same items together with anything newly dirtied.
func (e *Engine) BatchSave(ctx context.Context) {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		e.logger.Debug().Msg("batch save already in progress, skipping")
		return
	}
	if len(e.dirty) == 0 {
		e.mu.Unlock()
		return
	}

	e.saving = true
	attempted := make([]string, 0, len(e.dirty))
	wire := make([]models.WireItem, 0, len(e.dirty))
	for id := range e.dirty {
		if item, ok := e.index[id]; ok {
			attempted = append(attempted, id)
			wire = append(wire, mapper.ToWire(*item))
		}
	}
	e.mu.Unlock()

	backoff := retry.WithMaxRetries(uint64(e.cfg.maxRetryAttempts()), retry.NewExponential(e.cfg.retryBaseDelay()))

	var saved []models.WireItem
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		result, upsertErr := e.gateway.BatchUpsert(ctx, wire)
		if upsertErr != nil {
			if errors.Is(upsertErr, adapter.ErrRemote) {
				return retry.RetryableError(upsertErr)
			}
			return upsertErr
		}
		saved = result
		return nil
	})

	e.mu.Lock()
	e.saving = false
	if err != nil {
		e.mu.Unlock()
		e.logger.Err(err).Int("items", len(wire)).Msg("batch save failed, dirty set kept")
		e.tracker.SetOnline(false)
		return
	}

	for _, w := range saved {
		if item, ok := e.index[w.ID]; ok {
			item.CreatedAt = w.CreatedAt
			item.UpdatedAt = w.UpdatedAt
		}
	}
	for _, id := range attempted {
		delete(e.dirty, id)
	}
	unsaved := len(e.dirty) > 0
	e.mu.Unlock()

	e.tracker.SetOnline(true)
	e.tracker.SetUnsavedChanges(unsaved)
	e.notifyItemsChanged()
}

// Items returns a copy of the working set in insertion order.
func (e *Engine) Items() []models.Item {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]models.Item, 0, len(e.items))
	for _, item := range e.items {
		items = append(items, *item)
	}
	return items
}

// Selection returns a copy of the current selection.
func (e *Engine) Selection() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.selected...)
}

// UnsavedCount returns the number of items awaiting a confirmed save.
func (e *Engine) UnsavedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.dirty)
}

// BoardID returns the id of the currently loaded board, or an empty string
// before the first LoadItems.
func (e *Engine) BoardID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.boardID
}

// OnItemsChanged registers fn to run after every working-set change.
// Consumers re-read the working set through Items; the notification carries
// no payload. Callbacks run synchronously and must not call back into the
// engine.
func (e *Engine) OnItemsChanged(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onItemsChanged = append(e.onItemsChanged, fn)
}

// OnSelectionChanged registers fn to run after every selection change with
// the new selection. Callbacks run synchronously and must not call back into
// the engine.
func (e *Engine) OnSelectionChanged(fn func(ids []string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onSelectionChanged = append(e.onSelectionChanged, fn)
}

// restartDebounceLocked cancels a pending auto-save and arms a fresh timer,
// so only the trailing mutation of a burst ever fires a save. Callers must
// hold e.mu.
func (e *Engine) restartDebounceLocked() {
	if e.debounce != nil {
		e.debounce.Stop()
	}
	e.debounce = time.AfterFunc(e.cfg.autoSaveDebounce(), func() {
		e.BatchSave(e.ctx)
	})
}

// stopDebounceLocked cancels a pending auto-save outright. Callers must hold
// e.mu.
func (e *Engine) stopDebounceLocked() {
	if e.debounce != nil {
		e.debounce.Stop()
		e.debounce = nil
	}
}

func (e *Engine) notifyItemsChanged() {
	e.mu.Lock()
	subscribers := append([]func(){}, e.onItemsChanged...)
	e.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}

func (e *Engine) notifySelectionChanged(selection []string) {
	e.mu.Lock()
	subscribers := append([]func([]string){}, e.onSelectionChanged...)
	e.mu.Unlock()

	for _, fn := range subscribers {
		fn(selection)
	}
}

func removeID(ids []string, id string) []string {
	filtered := ids[:0]
	for _, v := range ids {
		if v != id {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
