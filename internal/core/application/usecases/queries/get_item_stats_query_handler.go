package queries

import (
	"context"

	"orderboard/internal/pkg/errs"
)

// GetItemStatsQueryResponse summarizes kitchen workload across active orders.
type GetItemStatsQueryResponse struct {
	InProgress int `json:"inProgress"`
	InQueue    int `json:"inQueue"`
}

// GetItemStatsQueryHandler serves the kitchen workload summary.
type GetItemStatsQueryHandler struct {
	reader OrderReader
}

// NewGetItemStatsQueryHandler creates a handler reading the given view.
func NewGetItemStatsQueryHandler(reader OrderReader) (GetItemStatsQueryHandler, error) {
	if reader == nil {
		return GetItemStatsQueryHandler{}, errs.NewValueIsRequiredError("reader")
	}
	return GetItemStatsQueryHandler{reader: reader}, nil
}

// Handle counts items in progress and in queue across the active partition.
func (h *GetItemStatsQueryHandler) Handle(_ context.Context, query GetItemStatsQuery) (GetItemStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetItemStatsQueryResponse{}, err
	}

	stats := h.reader.ItemStats()
	return GetItemStatsQueryResponse{
		InProgress: stats.InProgress,
		InQueue:    stats.InQueue,
	}, nil
}
