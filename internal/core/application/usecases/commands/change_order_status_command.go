package commands

import (
	"errors"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/errs"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand represents a staff-driven request to move an order
// forward in its lifecycle: accept it, mark it ready for pickup, or complete
// it. The correlation id ties the authoritative write and the resulting
// broadcast to the order's event traffic; it may be zero when the order's
// metadata was never delivered.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand("O1", order.Accepted, correlationID)
//	if err != nil {
//	    return fmt.Errorf("invalid status change: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to change order status: %w", err)
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID       string
	target        order.Status
	correlationID kernel.CorrelationID

	guard kernel.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to transition an order to the
// target status. The target must be one of the statuses staff can drive an
// order to (Accepted, ReadyForPickup, Completed); Created is backend-assigned
// and never a transition target.
func NewChangeOrderStatusCommand(
	orderID string,
	target order.Status,
	correlationID kernel.CorrelationID,
) (ChangeOrderStatusCommand, error) {
	statusCommand := ChangeOrderStatusCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setTarget(target),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	statusCommand.correlationID = correlationID
	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() string {
	return c.orderID
}

// Target returns the status the order should move to.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// CorrelationID returns the tracing id carried on the write and the broadcast.
func (c ChangeOrderStatusCommand) CorrelationID() kernel.CorrelationID {
	return c.correlationID
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderId")
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target order.Status) error {
	switch target {
	case order.Accepted, order.ReadyForPickup, order.Completed:
		c.target = target
		return nil
	default:
		return errs.NewValueIsInvalidError("targetStatus")
	}
}
