// Package debounce provides trailing-edge coalescing of side effects.
//
// The order board uses it to collapse bursts of "order received" effects
// (printing, audible alerts) so that the same order triggering both a direct
// fetch and an event-driven fetch in quick succession produces at most one
// physical effect. Effects are keyed, so near-simultaneous effects for two
// different orders do not supersede each other.
package debounce

import (
	"sync"
	"time"
)

// DefaultWindow is the coalescing window used by the board's side effects.
const DefaultWindow = 1000 * time.Millisecond

// Debouncer schedules keyed functions on a trailing edge: a call inside the
// window supersedes (not queues) the previous pending call for the same key.
// Pending effects can be cancelled wholesale on teardown, so a dismounted view
// cannot fire a stray print afterwards.
type Debouncer struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates an empty debouncer.
func New() *Debouncer {
	return &Debouncer{
		pending: make(map[string]*time.Timer),
	}
}

// Schedule arranges for fn to run once the window elapses with no further
// Schedule call for the same key. A pending call for the key is superseded.
// fn runs on its own goroutine.
func (d *Debouncer) Schedule(key string, window time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.pending[key]; ok {
		timer.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(window, func() {
		d.mu.Lock()
		// Only fire if this timer is still the pending one for the key;
		// a superseding Schedule or a Cancel may have raced the timer.
		current, ok := d.pending[key]
		if !ok || current != timer {
			d.mu.Unlock()
			return
		}
		delete(d.pending, key)
		d.mu.Unlock()

		fn()
	})
	d.pending[key] = timer
}

// Cancel drops the pending call for a key, if any.
// Returns whether a call was pending.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	timer, ok := d.pending[key]
	if !ok {
		return false
	}
	timer.Stop()
	delete(d.pending, key)
	return true
}

// CancelAll drops every pending call. Called from component teardown.
func (d *Debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, timer := range d.pending {
		timer.Stop()
		delete(d.pending, key)
	}
}

// PendingCount returns the number of keys with a pending call.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
