package commands

import (
	"context"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

// ChangeOrderItemStatusCommandHandler handles item-level kitchen progress.
//
// Same write-first protocol as the order-level handler, with one asymmetry:
// item broadcasts are only ever sent after a confirmed write. Item events route
// to stations by tag, and a station acting on a phantom "started" would cook
// food the backend never recorded.
type ChangeOrderItemStatusCommandHandler struct {
	session kernel.Session
	gateway ports.OrderGateway
	store   OrderStore
	channel ports.EventChannel
}

// NewChangeOrderItemStatusCommandHandler creates a handler for item status
// transitions.
func NewChangeOrderItemStatusCommandHandler(
	session kernel.Session,
	gateway ports.OrderGateway,
	store OrderStore,
	channel ports.EventChannel,
) (ChangeOrderItemStatusCommandHandler, error) {
	if err := session.Validate(); err != nil {
		return ChangeOrderItemStatusCommandHandler{}, err
	}
	if gateway == nil {
		return ChangeOrderItemStatusCommandHandler{}, errs.NewValueIsRequiredError("gateway")
	}
	if store == nil {
		return ChangeOrderItemStatusCommandHandler{}, errs.NewValueIsRequiredError("store")
	}
	if channel == nil {
		return ChangeOrderItemStatusCommandHandler{}, errs.NewValueIsRequiredError("channel")
	}

	return ChangeOrderItemStatusCommandHandler{
		session: session,
		gateway: gateway,
		store:   store,
		channel: channel,
	}, nil
}

// Handle processes the item status change: authoritative write, optimistic
// local apply, then a tag-carrying broadcast so stations can filter without
// fetching.
func (h *ChangeOrderItemStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderItemStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.gateway.ChangeOrderItemStatus(ctx, cmd.OrderID(), cmd.ItemID(), cmd.Target(), cmd.CorrelationID()); err != nil {
		return err
	}

	switch cmd.Target() {
	case ports.ItemStarted:
		h.store.ApplyItemStarted(cmd.OrderID(), cmd.ItemID())
	case ports.ItemCompleted:
		h.store.ApplyItemCompleted(cmd.OrderID(), cmd.ItemID())
	}

	topic := ports.TopicOrderItemStarted
	if cmd.Target() == ports.ItemCompleted {
		topic = ports.TopicOrderItemCompleted
	}

	return h.channel.Emit(ctx, topic, ports.OrderItemPayload{
		OrderID:      cmd.OrderID(),
		ItemID:       cmd.ItemID(),
		RestaurantID: h.session.RestaurantID(),
		LocationID:   h.session.LocationID(),
		StationTags:  h.itemTags(cmd.OrderID(), cmd.ItemID()),
	})
}

// itemTags resolves the item's station tags from the local view so server-side
// fan-out can target interested stations. Nil when the order or item is not
// held locally.
func (h *ChangeOrderItemStatusCommandHandler) itemTags(orderID, itemID string) []string {
	o, ok := h.store.Get(orderID)
	if !ok {
		return nil
	}
	item, ok := o.Item(itemID)
	if !ok {
		return nil
	}
	return item.StationTags()
}
