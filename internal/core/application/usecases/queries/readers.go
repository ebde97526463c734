package queries

import (
	"orderboard/internal/core/application/store"
	"orderboard/internal/core/domain/model/order"
)

// OrderReader is the read side of the in-memory order view. Satisfied by
// application/store.Store. The queries serve the board's display surfaces, so
// they read the converged local state, never the backend.
type OrderReader interface {
	ActiveOrders() []*order.Order
	CompletedOrders() []*order.Order
	ItemStats() store.ItemStats
	Hydrated() bool
}
