package queries

import (
	"errors"

	"orderboard/internal/core/domain/model/kernel"
)

var ErrGetCompletedOrdersQueryIsNotConstructed = errors.New(
	"GetCompletedOrdersQuery must be created via NewGetCompletedOrdersQuery constructor",
)

// GetCompletedOrdersQuery requests today's picked-up orders, newest first.
type GetCompletedOrdersQuery struct {
	guard kernel.ConstructorGuard
}

// NewGetCompletedOrdersQuery creates a query for the completed partition.
func NewGetCompletedOrdersQuery() (GetCompletedOrdersQuery, error) {
	return GetCompletedOrdersQuery{guard: kernel.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCompletedOrdersQueryIsNotConstructed)
}
