package order

import (
	"errors"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Customer holds the name and phone the order was placed under.
type Customer struct {
	Name  string
	Phone string
}

// Origin references where the order came from (a POS terminal, an online
// ordering channel, a kiosk).
type Origin struct {
	ID   string
	Name string
}

// Order represents an in-flight restaurant order. It is the aggregate root that
// manages the order lifecycle from creation through acceptance and kitchen work
// to pickup.
//
// Order follows these invariants:
//   - Must have a non-empty identifier, stable for the order's lifetime
//   - Items are unique by id within the order
//   - A Completed order has every item completed
//   - Can only be created through NewOrder or RestoreOrder
//
// The aggregate is mutated in place as snapshot rows and push events are
// applied; callers that share an Order across goroutines must serialize access
// (the store does).
type Order struct {
	id              string
	code            string
	customer        Customer
	origin          Origin
	items           []*Item
	startedAt       time.Time
	completedAt     *time.Time
	totalPriceCents int
	correlationID   kernel.CorrelationID
	status          Status

	isConstructed bool
}

// NewOrder creates a freshly received order in Created status.
//
// Parameters:
//   - id: opaque backend identifier, required
//   - code: human-readable order code shown to staff and customers
//   - startedAt: the order's creation timestamp
//   - items: the ordered sequence of line items, unique by id
func NewOrder(id, code string, startedAt time.Time, items []*Item) (*Order, error) {
	return RestoreOrder(id, code, Created, startedAt, nil, 0, kernel.CorrelationID{}, Customer{}, Origin{}, items)
}

// RestoreOrder rebuilds an order from backend data (a snapshot row or a full
// re-fetch), preserving its status and timestamps. Item timestamps are
// normalized so the started-before-completed invariant holds.
func RestoreOrder(
	id, code string,
	status Status,
	startedAt time.Time,
	completedAt *time.Time,
	totalPriceCents int,
	correlationID kernel.CorrelationID,
	customer Customer,
	origin Origin,
	items []*Item,
) (*Order, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("orderId")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if totalPriceCents < 0 {
		return nil, errs.NewValueIsInvalidError("totalPriceCents")
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item == nil {
			return nil, errs.NewValueIsRequiredError("item")
		}
		if _, dup := seen[item.ID()]; dup {
			return nil, errs.NewValueIsInvalidError("itemId")
		}
		seen[item.ID()] = struct{}{}
	}

	return &Order{
		id:              id,
		code:            code,
		customer:        customer,
		origin:          origin,
		items:           append([]*Item(nil), items...),
		startedAt:       startedAt,
		completedAt:     copyTime(completedAt),
		totalPriceCents: totalPriceCents,
		correlationID:   correlationID,
		status:          status,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly instantiating
// the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// Clone returns a deep copy of the order, items included. Mutating either copy
// never affects the other, so a clone can cross a goroutine boundary while the
// original keeps converging.
func (o *Order) Clone() *Order {
	items := make([]*Item, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, item.Clone())
	}

	clone := *o
	clone.items = items
	clone.completedAt = copyTime(o.completedAt)
	return &clone
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the order's opaque identifier.
func (o *Order) ID() string {
	return o.id
}

// Code returns the human-readable order code.
func (o *Order) Code() string {
	return o.code
}

// Customer returns the customer the order was placed under.
func (o *Order) Customer() Customer {
	return o.customer
}

// Origin returns the channel the order came from.
func (o *Order) Origin() Origin {
	return o.origin
}

// Items returns the order's line items in their ordered sequence.
// The slice is a copy; the items themselves are shared.
func (o *Order) Items() []*Item {
	return append([]*Item(nil), o.items...)
}

// Item looks up a line item by id.
func (o *Order) Item(itemID string) (*Item, bool) {
	for _, item := range o.items {
		if item.ID() == itemID {
			return item, true
		}
	}
	return nil, false
}

// StartedAt returns the order's creation timestamp.
func (o *Order) StartedAt() time.Time {
	return o.startedAt
}

// CompletedAt returns when the order reached its terminal status, or nil.
// This field is computed by the backend and only populated via RestoreOrder.
func (o *Order) CompletedAt() *time.Time {
	return copyTime(o.completedAt)
}

// TotalPriceCents returns the order total in minor currency units.
func (o *Order) TotalPriceCents() int {
	return o.totalPriceCents
}

// CorrelationID returns the id tying this order to its event traffic.
// May be the zero value for orders whose event metadata was never delivered.
func (o *Order) CorrelationID() kernel.CorrelationID {
	return o.correlationID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// ChangeStatus performs a validated, user-driven status transition.
// The workflow is forward-only with no skipped states; Completed is terminal.
// Side effects of the target status (closing out items for ReadyForPickup and
// Completed) are applied at the given time.
func (o *Order) ChangeStatus(target Status, now time.Time) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.applyStatus(newStatus, now)
	return nil
}

// ApplyStatus applies a status carried by a push event without workflow
// validation. Convergence across clients is last-write-wins: the event was
// validated by whichever client originated it, and replaying or reordering must
// never wedge the local view.
func (o *Order) ApplyStatus(status Status, now time.Time) {
	o.applyStatus(status, now)
}

func (o *Order) applyStatus(status Status, now time.Time) {
	if status == ReadyForPickup || status == Completed {
		o.CloseOutItems(now)
	}
	o.status = status
}

// StartItem marks kitchen work on an item as begun.
// Returns false when the order has no such item.
func (o *Order) StartItem(itemID string, now time.Time) bool {
	item, ok := o.Item(itemID)
	if !ok {
		return false
	}
	item.Start(now)
	return true
}

// CompleteItem marks kitchen work on an item as finished, back-filling the
// started time if the started event was missed.
// Returns false when the order has no such item.
func (o *Order) CompleteItem(itemID string, now time.Time) bool {
	item, ok := o.Item(itemID)
	if !ok {
		return false
	}
	item.Complete(now)
	return true
}

// CloseOutItems marks every still-open item as started and completed, using the
// order's own start time as the started fallback. This reflects the business
// rule that pickup implies kitchen work is done even if individual item events
// were missed.
func (o *Order) CloseOutItems(now time.Time) {
	for _, item := range o.items {
		item.CloseOut(o.startedAt, now)
	}
}

// AllItemsCompleted reports whether every item has finished kitchen work.
func (o *Order) AllItemsCompleted() bool {
	for _, item := range o.items {
		if !item.IsCompleted() {
			return false
		}
	}
	return true
}
