package commands

import (
	"context"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler handles order-level status transitions.
//
// The mutation protocol is write-first: the authoritative write goes to the
// order backend, and only an acknowledged write mutates the local view. The
// resulting broadcast lets every other client converge without polling.
// Completion is special: the backend computes final fields (the completion
// timestamp among them) at write time, so the handler re-fetches the full
// record before placing it in the completed partition.
//
// Broadcasting after a failed write is configurable and off by default:
// announcing a state the backend rejected would desynchronize every listener
// from the authority.
type ChangeOrderStatusCommandHandler struct {
	session                 kernel.Session
	gateway                 ports.OrderGateway
	store                   OrderStore
	channel                 ports.EventChannel
	broadcastOnWriteFailure bool
	now                     func() time.Time
}

// NewChangeOrderStatusCommandHandler creates a handler for order status
// transitions.
func NewChangeOrderStatusCommandHandler(
	session kernel.Session,
	gateway ports.OrderGateway,
	store OrderStore,
	channel ports.EventChannel,
	broadcastOnWriteFailure bool,
) (ChangeOrderStatusCommandHandler, error) {
	if err := session.Validate(); err != nil {
		return ChangeOrderStatusCommandHandler{}, err
	}
	if gateway == nil {
		return ChangeOrderStatusCommandHandler{}, errs.NewValueIsRequiredError("gateway")
	}
	if store == nil {
		return ChangeOrderStatusCommandHandler{}, errs.NewValueIsRequiredError("store")
	}
	if channel == nil {
		return ChangeOrderStatusCommandHandler{}, errs.NewValueIsRequiredError("channel")
	}

	return ChangeOrderStatusCommandHandler{
		session:                 session,
		gateway:                 gateway,
		store:                   store,
		channel:                 channel,
		broadcastOnWriteFailure: broadcastOnWriteFailure,
		now:                     time.Now,
	}, nil
}

// Handle processes the status change: authoritative write, optimistic local
// apply on acknowledgement, then broadcast. The returned error is the write
// error when the write failed, otherwise any broadcast error.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	writeErr := h.gateway.ChangeOrderStatus(ctx, cmd.OrderID(), cmd.Target(), cmd.CorrelationID())
	if writeErr == nil {
		h.applyLocal(ctx, cmd)
	}

	if writeErr == nil || h.broadcastOnWriteFailure {
		if emitErr := h.broadcast(ctx, cmd); emitErr != nil && writeErr == nil {
			return emitErr
		}
	}
	return writeErr
}

func (h *ChangeOrderStatusCommandHandler) applyLocal(ctx context.Context, cmd ChangeOrderStatusCommand) {
	if cmd.Target() != order.Completed {
		h.store.ApplyOrderStatusChanged(cmd.OrderID(), cmd.Target())
		return
	}

	// Terminal transition: drop the local copy and re-fetch the full record so
	// the backend-computed completion fields land in the completed partition.
	local, held := h.store.Get(cmd.OrderID())
	h.store.Remove(cmd.OrderID())

	full, err := h.gateway.Order(ctx, h.session, cmd.OrderID(), cmd.CorrelationID())
	if err != nil {
		// Keep the locally known record rather than losing the order; the
		// completion timestamp stays unset until the next full fetch.
		if held {
			local.ApplyStatus(order.Completed, h.now())
			h.store.Upsert(local)
		}
		return
	}
	h.store.Upsert(full)
}

func (h *ChangeOrderStatusCommandHandler) broadcast(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	topic, ok := topicForStatus(cmd.Target())
	if !ok {
		return nil
	}

	return h.channel.Emit(ctx, topic, ports.OrderStatusPayload{
		OrderID:       cmd.OrderID(),
		RestaurantID:  h.session.RestaurantID(),
		CorrelationID: cmd.CorrelationID().String(),
	})
}

func topicForStatus(status order.Status) (string, bool) {
	switch status {
	case order.Accepted:
		return ports.TopicOrderAccepted, true
	case order.ReadyForPickup:
		return ports.TopicOrderReadyForPickup, true
	case order.Completed:
		return ports.TopicOrderCompleted, true
	default:
		return "", false
	}
}
