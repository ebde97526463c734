package ports

import (
	"context"

	"orderboard/internal/core/domain/model/order"
)

// PrinterInfo identifies the physical printer a job is routed to. The fields
// are opaque to the core; the print collaborator owns their meaning.
type PrinterInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RestaurantInfo is the display context attached to a print job.
type RestaurantInfo struct {
	RestaurantID   string `json:"restaurantId"`
	RestaurantName string `json:"restaurantName"`
	LocationID     string `json:"locationId"`
	LocationName   string `json:"locationName"`
}

// PrintJob is the opaque payload handed to the print collaborator.
// Source records what triggered the print ("manual" for a direct user action,
// "socket" for an event-driven one).
type PrintJob struct {
	Order      *order.Order
	Printer    PrinterInfo
	Restaurant RestaurantInfo
	Source     string
}

// PrintDispatcher hands a print job to the physical-printer collaborator.
// Delivery and acknowledgement semantics are the collaborator's concern.
type PrintDispatcher interface {
	Dispatch(ctx context.Context, job PrintJob) error
}

// Alerter raises the audible "order received" notification.
type Alerter interface {
	Alert(ctx context.Context, orderID string)
}
