package order

import (
	"time"

	"orderboard/internal/pkg/errs"
)

// Item is a line item within an order. Items carry the station tags used to
// route kitchen-display events, and two optional timestamps tracking kitchen
// work.
//
// Invariant: a non-nil completed time implies a non-nil started time. Complete
// back-fills the started time when the corresponding started event was missed,
// so the invariant holds after any sequence of applied events.
type Item struct {
	id          string
	name        string
	priceCents  int
	stationTags []string
	startedAt   *time.Time
	completedAt *time.Time
}

// NewItem creates a line item. The id must be unique within the parent order;
// both id and name are required. Station tags may be empty for items that no
// station needs to see.
func NewItem(id, name string, priceCents int, stationTags []string) (*Item, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("itemId")
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("itemName")
	}
	if priceCents < 0 {
		return nil, errs.NewValueIsInvalidError("priceCents")
	}

	return &Item{
		id:          id,
		name:        name,
		priceCents:  priceCents,
		stationTags: append([]string(nil), stationTags...),
	}, nil
}

// RestoreItem rebuilds an item from snapshot data, including its work
// timestamps. It enforces the started-before-completed invariant by
// back-filling startedAt with the completed time when only completedAt is set.
func RestoreItem(id, name string, priceCents int, stationTags []string, startedAt, completedAt *time.Time) (*Item, error) {
	item, err := NewItem(id, name, priceCents, stationTags)
	if err != nil {
		return nil, err
	}

	item.startedAt = copyTime(startedAt)
	item.completedAt = copyTime(completedAt)
	if item.completedAt != nil && item.startedAt == nil {
		item.startedAt = copyTime(item.completedAt)
	}
	return item, nil
}

// Clone returns an independent copy of the item. Mutating either copy never
// affects the other.
func (i *Item) Clone() *Item {
	clone := *i
	clone.stationTags = append([]string(nil), i.stationTags...)
	clone.startedAt = copyTime(i.startedAt)
	clone.completedAt = copyTime(i.completedAt)
	return &clone
}

// ID returns the item identifier, unique within its parent order.
func (i *Item) ID() string {
	return i.id
}

// Name returns the item display name.
func (i *Item) Name() string {
	return i.name
}

// PriceCents returns the item price in minor currency units.
func (i *Item) PriceCents() int {
	return i.priceCents
}

// StationTags returns a copy of the tags used to route this item to stations.
func (i *Item) StationTags() []string {
	return append([]string(nil), i.stationTags...)
}

// StartedAt returns when kitchen work began on the item, or nil.
func (i *Item) StartedAt() *time.Time {
	return copyTime(i.startedAt)
}

// CompletedAt returns when kitchen work finished on the item, or nil.
func (i *Item) CompletedAt() *time.Time {
	return copyTime(i.completedAt)
}

// Start marks kitchen work as begun at the given time.
// Any previous completion is cleared: a started event after a completed event
// means the item is being redone, and last write wins.
func (i *Item) Start(now time.Time) {
	i.startedAt = &now
	i.completedAt = nil
}

// Complete marks kitchen work as finished at the given time.
// When the item was never marked started, the started time is back-filled with
// the same time so the invariant completedAt != nil => startedAt != nil holds.
func (i *Item) Complete(now time.Time) {
	i.completedAt = &now
	if i.startedAt == nil {
		i.startedAt = &now
	}
}

// CloseOut fills in whichever timestamps are still open: a missing started time
// becomes fallbackStart, a missing completed time becomes now. Used when the
// order reaches ReadyForPickup and pickup implies all kitchen work is done.
func (i *Item) CloseOut(fallbackStart, now time.Time) {
	if i.startedAt == nil {
		i.startedAt = &fallbackStart
	}
	if i.completedAt == nil {
		i.completedAt = &now
	}
}

// InProgress reports whether work has started but not finished.
func (i *Item) InProgress() bool {
	return i.startedAt != nil && i.completedAt == nil
}

// Queued reports whether work has not started yet.
func (i *Item) Queued() bool {
	return i.startedAt == nil
}

// IsCompleted reports whether work on the item is finished.
func (i *Item) IsCompleted() bool {
	return i.completedAt != nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
