package commands

import (
	"errors"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

var (
	ErrChangeOrderItemStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderItemStatusCommand must be created via NewChangeOrderItemStatusCommand constructor",
	)
)

// ChangeOrderItemStatusCommand represents a cook's tap on a kitchen display:
// start working on an item, or mark it done.
type ChangeOrderItemStatusCommand struct { //nolint:recvcheck //using for validation
	orderID       string
	itemID        string
	target        ports.ItemStatus
	correlationID kernel.CorrelationID

	guard kernel.ConstructorGuard
}

// NewChangeOrderItemStatusCommand creates a command to transition one line item
// to the target item status.
func NewChangeOrderItemStatusCommand(
	orderID, itemID string,
	target ports.ItemStatus,
	correlationID kernel.CorrelationID,
) (ChangeOrderItemStatusCommand, error) {
	itemCommand := ChangeOrderItemStatusCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		itemCommand.setOrderID(orderID),
		itemCommand.setItemID(itemID),
		itemCommand.setTarget(target),
	); err != nil {
		return ChangeOrderItemStatusCommand{}, err
	}

	itemCommand.correlationID = correlationID
	return itemCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderItemStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderItemStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order the item belongs to.
func (c ChangeOrderItemStatusCommand) OrderID() string {
	return c.orderID
}

// ItemID returns the identifier of the line item to transition.
func (c ChangeOrderItemStatusCommand) ItemID() string {
	return c.itemID
}

// Target returns the item status to write.
func (c ChangeOrderItemStatusCommand) Target() ports.ItemStatus {
	return c.target
}

// CorrelationID returns the tracing id carried on the write.
func (c ChangeOrderItemStatusCommand) CorrelationID() kernel.CorrelationID {
	return c.correlationID
}

func (c *ChangeOrderItemStatusCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderId")
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderItemStatusCommand) setItemID(itemID string) error {
	if itemID == "" {
		return errs.NewValueIsRequiredError("itemId")
	}

	c.itemID = itemID
	return nil
}

func (c *ChangeOrderItemStatusCommand) setTarget(target ports.ItemStatus) error {
	switch target {
	case ports.ItemStarted, ports.ItemCompleted:
		c.target = target
		return nil
	default:
		return errs.NewValueIsInvalidError("targetItemStatus")
	}
}
