package queries

import (
	"context"

	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/errs"
)

// GetActiveOrdersQueryHandler serves the active partition of the order view.
type GetActiveOrdersQueryHandler struct {
	reader OrderReader
}

// NewGetActiveOrdersQueryHandler creates a handler reading the given view.
func NewGetActiveOrdersQueryHandler(reader OrderReader) (GetActiveOrdersQueryHandler, error) {
	if reader == nil {
		return GetActiveOrdersQueryHandler{}, errs.NewValueIsRequiredError("reader")
	}
	return GetActiveOrdersQueryHandler{reader: reader}, nil
}

// Handle returns the active orders in display order (descending id).
func (h *GetActiveOrdersQueryHandler) Handle(_ context.Context, query GetActiveOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.ActiveOrders(), nil
}
