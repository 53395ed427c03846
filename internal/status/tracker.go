// Package status holds the connection/unsaved-changes tracker observed by UI
// status indicators.
//
// The tracker carries exactly two booleans. The canvas state engine flips
// them as a side effect of save outcomes; it is the only way a user learns
// that data is not persisted, since save-path errors never propagate to the
// interaction layer.
package status

import "sync"

// Tracker is an observable pair of booleans: whether the remote store is
// reachable and whether local mutations are awaiting a confirmed save.
//
// Setting a value equal to the current one is a no-op: no notification fires.
// Safe for concurrent use.
type Tracker struct {
	mu sync.Mutex

	online            bool
	hasUnsavedChanges bool
	onOnlineChanged   []func(bool)
	onUnsavedChanged  []func(bool)
}

// NewTracker returns a Tracker that starts online with no unsaved changes.
func NewTracker() *Tracker {
	return &Tracker{online: true}
}

// Online reports whether the last interaction with the remote store succeeded.
func (t *Tracker) Online() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.online
}

// HasUnsavedChanges reports whether locally modified items await a confirmed
// save.
func (t *Tracker) HasUnsavedChanges() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hasUnsavedChanges
}

// SetOnline updates the connection flag and notifies subscribers when the
// value actually changed.
func (t *Tracker) SetOnline(online bool) {
	t.mu.Lock()
	if t.online == online {
		t.mu.Unlock()
		return
	}
	t.online = online
	subscribers := append([]func(bool){}, t.onOnlineChanged...)
	t.mu.Unlock()

	for _, fn := range subscribers {
		fn(online)
	}
}

// SetUnsavedChanges updates the unsaved-changes flag and notifies subscribers
// when the value actually changed.
func (t *Tracker) SetUnsavedChanges(unsaved bool) {
	t.mu.Lock()
	if t.hasUnsavedChanges == unsaved {
		t.mu.Unlock()
		return
	}
	t.hasUnsavedChanges = unsaved
	subscribers := append([]func(bool){}, t.onUnsavedChanged...)
	t.mu.Unlock()

	for _, fn := range subscribers {
		fn(unsaved)
	}
}

// OnOnlineChanged registers fn to run whenever the connection flag changes
// value. Callbacks run synchronously on the mutating goroutine and must not
// call back into the tracker.
func (t *Tracker) OnOnlineChanged(fn func(bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOnlineChanged = append(t.onOnlineChanged, fn)
}

// OnUnsavedChanged registers fn to run whenever the unsaved-changes flag
// changes value.
func (t *Tracker) OnUnsavedChanged(fn func(bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onUnsavedChanged = append(t.onUnsavedChanged, fn)
}
