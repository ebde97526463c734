// Package store implements the canonical in-memory view of every in-flight
// order. A board instance owns exactly one Store; it is hydrated once from a
// snapshot and then converged by push events and optimistic local mutations.
//
// The store keeps two disjoint partitions: active (in-progress orders) and
// completed (orders that reached the terminal status). Every mutation is a
// total, idempotent upsert keyed by order id. Field updates are last-write-wins
// by application order; no sequence numbers are carried on events, so two
// events applied out of order leave the store in the state dictated by
// whichever was applied last. This is a deliberate simplicity/consistency
// trade-off.
//
// Events referencing an order the store does not hold are silent no-ops, not
// errors: delivery is at-most-once and unordered, and a dashboard prefers a
// momentarily incomplete view over a wedged stream.
package store

import (
	"sort"
	"sync"
	"time"

	"orderboard/internal/core/domain/model/order"
)

// ItemStats summarizes kitchen workload across the active partition.
type ItemStats struct {
	InProgress int
	InQueue    int
}

// Store holds the active and completed partitions of the order map.
// All methods are safe for concurrent use; the internal mutex is Go's
// equivalent of the original single-threaded event-loop model, serializing
// every mutation with every read.
//
// Orders are copied at the boundary in both directions: ingested aggregates
// are cloned before they enter a partition, and reads return clones. The store
// is the only holder of its records, so callers may serialize or mutate what
// they get back without racing event application.
type Store struct {
	mu        sync.Mutex
	active    map[string]*order.Order
	completed map[string]*order.Order
	hydrated  bool
	now       func() time.Time
}

// New creates an empty store using the wall clock.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty store with an injectable clock, for tests.
func NewWithClock(now func() time.Time) *Store {
	return &Store{
		active:    make(map[string]*order.Order),
		completed: make(map[string]*order.Order),
		now:       now,
	}
}

// IngestSnapshot folds snapshot rows into the store, classifying each by
// status. It is one-shot: the first call flips a latch and every later call is
// a no-op, so a snapshot delivered after event traffic has already started
// mutating the store cannot be applied twice. Returns whether the rows were
// ingested.
func (s *Store) IngestSnapshot(rows []*order.Order) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return false
	}
	s.hydrated = true

	for _, row := range rows {
		if row == nil {
			continue
		}
		s.upsertLocked(row)
	}
	return true
}

// Hydrated reports whether the snapshot has been ingested.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// ResetForRehydration clears the hydration latch and both partitions so a fresh
// snapshot can be ingested. Used when the "today" window rolls over.
func (s *Store) ResetForRehydration() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hydrated = false
	s.active = make(map[string]*order.Order)
	s.completed = make(map[string]*order.Order)
}

// IngestNewOrder inserts an order delivered by an "order received" event.
// Duplicate delivery is a no-op: if the id is present in either partition the
// store is left untouched. Returns whether the order was inserted.
func (s *Store) IngestNewOrder(o *order.Order) bool {
	if o == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[o.ID()]; ok {
		return false
	}
	if _, ok := s.completed[o.ID()]; ok {
		return false
	}

	s.upsertLocked(o)
	return true
}

// Upsert places an order into the partition its status dictates, replacing any
// existing entry for the same id. Used after a full re-fetch, where the fetched
// record is strictly fresher than whatever is held locally.
func (s *Store) Upsert(o *order.Order) {
	if o == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(o)
}

// upsertLocked classifies by status and maintains partition exclusivity:
// an id is never present in both maps. The order is cloned on the way in so
// the caller's pointer never aliases a store record.
func (s *Store) upsertLocked(o *order.Order) {
	o = o.Clone()
	if o.Status().IsTerminal() {
		delete(s.active, o.ID())
		s.completed[o.ID()] = o
		return
	}
	delete(s.completed, o.ID())
	s.active[o.ID()] = o
}

// ApplyItemStarted marks an item's kitchen work as begun at the current time,
// clearing any previous completion. A reference to an unknown order or item,
// or to an order already in the completed partition, is a silent no-op.
// Returns whether anything changed.
func (s *Store) ApplyItemStarted(orderID, itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.active[orderID]
	if !ok {
		return false
	}
	return o.StartItem(itemID, s.now())
}

// ApplyItemCompleted marks an item's kitchen work as finished at the current
// time, back-filling the started time if the started event was missed.
// Unknown references and completed orders are silent no-ops.
// Returns whether anything changed.
func (s *Store) ApplyItemCompleted(orderID, itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.active[orderID]
	if !ok {
		return false
	}
	return o.CompleteItem(itemID, s.now())
}

// ApplyOrderStatusChanged applies an order-level status transition.
//
// For non-terminal statuses the order is mutated in place; reaching
// ReadyForPickup additionally closes out every still-open item using the
// order's own start time as the started fallback. The terminal status moves
// the order from the active to the completed partition. An unknown order id is
// a silent no-op, as is a status event for an order already completed.
// Returns whether anything changed.
func (s *Store) ApplyOrderStatusChanged(orderID string, status order.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.active[orderID]
	if !ok {
		return false
	}

	o.ApplyStatus(status, s.now())
	if status.IsTerminal() {
		delete(s.active, orderID)
		s.completed[orderID] = o
	}
	return true
}

// Remove deletes the order from whichever partition holds it.
func (s *Store) Remove(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.active, orderID)
	delete(s.completed, orderID)
}

// Get returns a clone of the order with the given id from either partition.
func (s *Store) Get(orderID string) (*order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o, ok := s.active[orderID]; ok {
		return o.Clone(), true
	}
	if o, ok := s.completed[orderID]; ok {
		return o.Clone(), true
	}
	return nil, false
}

// ActiveOrders returns clones of the active partition in descending id order,
// the display order of the board.
func (s *Store) ActiveOrders() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedDescending(s.active)
}

// CompletedOrders returns clones of the completed partition in descending id
// order.
func (s *Store) CompletedOrders() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedDescending(s.completed)
}

// ItemStats counts items in progress and in queue across the active partition.
func (s *Store) ItemStats() ItemStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats ItemStats
	for _, o := range s.active {
		for _, item := range o.Items() {
			if item.InProgress() {
				stats.InProgress++
			}
			if item.Queued() {
				stats.InQueue++
			}
		}
	}
	return stats
}

func sortedDescending(partition map[string]*order.Order) []*order.Order {
	orders := make([]*order.Order, 0, len(partition))
	for _, o := range partition {
		orders = append(orders, o.Clone())
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].ID() > orders[j].ID()
	})
	return orders
}
