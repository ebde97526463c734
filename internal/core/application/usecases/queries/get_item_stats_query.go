package queries

import (
	"errors"

	"orderboard/internal/core/domain/model/kernel"
)

var ErrGetItemStatsQueryIsNotConstructed = errors.New(
	"GetItemStatsQuery must be created via NewGetItemStatsQuery constructor",
)

// GetItemStatsQuery requests the kitchen workload summary: how many items are
// being worked on and how many are waiting.
type GetItemStatsQuery struct {
	guard kernel.ConstructorGuard
}

// NewGetItemStatsQuery creates a workload summary query.
func NewGetItemStatsQuery() (GetItemStatsQuery, error) {
	return GetItemStatsQuery{guard: kernel.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetItemStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetItemStatsQueryIsNotConstructed)
}
