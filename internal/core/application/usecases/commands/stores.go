package commands

import (
	"orderboard/internal/core/domain/model/order"
)

// OrderStore is the slice of the in-memory order view the mutation handlers
// need: lookups plus the optimistic apply operations. Satisfied by
// application/store.Store.
type OrderStore interface {
	Get(orderID string) (*order.Order, bool)
	Upsert(o *order.Order)
	Remove(orderID string)
	ApplyOrderStatusChanged(orderID string, status order.Status) bool
	ApplyItemStarted(orderID, itemID string) bool
	ApplyItemCompleted(orderID, itemID string) bool
}
