package queries

import (
	"errors"

	"orderboard/internal/core/domain/model/kernel"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery requests every in-progress order, newest first.
// Serves the dashboard's main board and the station displays.
type GetActiveOrdersQuery struct {
	guard kernel.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for the active partition.
func NewGetActiveOrdersQuery() (GetActiveOrdersQuery, error) {
	return GetActiveOrdersQuery{guard: kernel.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}
