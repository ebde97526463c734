package queries

import (
	"context"

	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/errs"
)

// GetCompletedOrdersQueryHandler serves the completed partition of the order
// view.
type GetCompletedOrdersQueryHandler struct {
	reader OrderReader
}

// NewGetCompletedOrdersQueryHandler creates a handler reading the given view.
func NewGetCompletedOrdersQueryHandler(reader OrderReader) (GetCompletedOrdersQueryHandler, error) {
	if reader == nil {
		return GetCompletedOrdersQueryHandler{}, errs.NewValueIsRequiredError("reader")
	}
	return GetCompletedOrdersQueryHandler{reader: reader}, nil
}

// Handle returns the completed orders in display order (descending id).
func (h *GetCompletedOrdersQueryHandler) Handle(_ context.Context, query GetCompletedOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.CompletedOrders(), nil
}
