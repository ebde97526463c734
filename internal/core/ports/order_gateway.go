package ports

import (
	"context"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
)

// ItemStatus names the two item-level transitions the order backend accepts.
type ItemStatus string

const (
	// ItemStarted marks kitchen work on an item as begun.
	ItemStarted ItemStatus = "STARTED"

	// ItemCompleted marks kitchen work on an item as finished.
	ItemCompleted ItemStatus = "COMPLETED"
)

// OrderGateway is the REST contract with the order backend. Persistence and its
// query semantics live entirely behind this interface; the convergence core
// only ever sees fully formed Order aggregates and acknowledgements.
//
// All methods return a FetchError (errs.ErrFetchFailed) when the request fails
// to reach the server or comes back non-2xx.
type OrderGateway interface {
	// TodayOrders fetches the snapshot of today's orders for the session's
	// restaurant and location. Returns an empty slice when none exist.
	TodayOrders(ctx context.Context, session kernel.Session) ([]*order.Order, error)

	// Order fetches one order in full, including fields only the backend
	// computes (e.g. the completion timestamp). The correlation id is passed
	// through for tracing and may be zero.
	Order(ctx context.Context, session kernel.Session, orderID string, correlationID kernel.CorrelationID) (*order.Order, error)

	// ChangeOrderStatus issues the authoritative order-level status write,
	// tagged with the correlation id for tracing.
	ChangeOrderStatus(ctx context.Context, orderID string, status order.Status, correlationID kernel.CorrelationID) error

	// ChangeOrderItemStatus issues the authoritative item-level status write.
	ChangeOrderItemStatus(ctx context.Context, orderID, itemID string, status ItemStatus, correlationID kernel.CorrelationID) error
}
