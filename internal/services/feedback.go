package services

import (
	"sort"
	"sync"
	"time"
)

// DefaultFeedbackTTL is how long a "recently added" marker stays visible.
const DefaultFeedbackTTL = 2 * time.Second

// FeedbackTracker keeps short-lived "just added" markers per product,
// driving optimistic UI confirmation. It knows nothing about quantities or
// totals; it is purely cosmetic state keyed by product ID, and each pending
// expiry is independently cancelable.
type FeedbackTracker struct {
	ttl    time.Duration
	mu     sync.Mutex
	timers map[string]*time.Timer
	gens   map[string]uint64
	closed bool
}

// NewFeedbackTracker creates a tracker whose markers expire after ttl.
// A non-positive ttl falls back to DefaultFeedbackTTL.
func NewFeedbackTracker(ttl time.Duration) *FeedbackTracker {
	if ttl <= 0 {
		ttl = DefaultFeedbackTTL
	}
	return &FeedbackTracker{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
		gens:   make(map[string]uint64),
	}
}

// MarkAdded records the product as recently added and schedules the marker's
// removal after the TTL. Marking a product that already has a pending expiry
// cancels that expiry and re-anchors it to this call, so rapid repeated adds
// keep the marker visible for a full TTL from the latest add.
func (t *FeedbackTracker) MarkAdded(productID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	if prev, ok := t.timers[productID]; ok {
		prev.Stop()
	}

	// The generation guards against a stopped timer that already fired:
	// its callback sees a newer generation and leaves the marker alone.
	t.gens[productID]++
	gen := t.gens[productID]

	t.timers[productID] = time.AfterFunc(t.ttl, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.gens[productID] != gen {
			return
		}
		delete(t.timers, productID)
	})
}

// IsRecent reports whether the product's marker is still visible.
func (t *FeedbackTracker) IsRecent(productID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.timers[productID]
	return ok
}

// Recent returns the product IDs with visible markers, sorted for
// deterministic output.
func (t *FeedbackTracker) Recent() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]string, 0, len(t.timers))
	for id := range t.timers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close cancels every pending expiry and drops all markers. Used on view
// teardown so stale timers cannot fire into a dead tracker. A closed tracker
// ignores further MarkAdded calls.
func (t *FeedbackTracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, timer := range t.timers {
		timer.Stop()
		t.gens[id]++ // invalidate any callback already past Stop
	}
	t.timers = make(map[string]*time.Timer)
	t.closed = true
}
