// Package ports defines the contracts between the convergence core and its
// external collaborators: the push-messaging transport, the order backend, and
// the side-effect services. Adapters implement these interfaces; the core never
// imports an adapter.
package ports

import "context"

// Push-channel topics. These names are the wire-level contract shared with the
// backend's fan-out and with every other client.
const (
	// TopicStoreJoined announces a client's presence for a restaurant/location.
	TopicStoreJoined = "store_joined"

	// TopicStationJoined announces a station's tag interest so server-side
	// fan-out can target it.
	TopicStationJoined = "station_joined"

	// TopicOrderReceived notifies the dashboard that a new order exists.
	TopicOrderReceived = "order_received"

	// TopicNewOrder is the station-scoped counterpart of TopicOrderReceived,
	// carrying the station tags of the order's items.
	TopicNewOrder = "new_order"

	// TopicOrderAccepted, TopicOrderReadyForPickup and TopicOrderCompleted
	// broadcast order-level status transitions.
	TopicOrderAccepted       = "order_accepted"
	TopicOrderReadyForPickup = "order_ready_for_pickup"
	TopicOrderCompleted      = "order_completed"

	// TopicOrderItemStarted and TopicOrderItemCompleted broadcast item-level
	// kitchen progress, routed to stations by tag.
	TopicOrderItemStarted   = "order_item_started"
	TopicOrderItemCompleted = "order_item_completed"

	// TopicDashboardOrderItemStarted and TopicDashboardOrderItemCompleted are
	// dashboard-scoped mirrors of the item topics.
	TopicDashboardOrderItemStarted   = "dashboard_order_item_started"
	TopicDashboardOrderItemCompleted = "dashboard_order_item_completed"
)

// EventHandler consumes one event's raw JSON payload. Handlers must be total:
// decode failures and stale references are logged or ignored inside the
// handler, never propagated, so one bad message cannot break the stream.
type EventHandler func(ctx context.Context, payload []byte)

// EventChannel is a thin abstraction over a bidirectional push-messaging
// transport. Delivery is at-most-once and unordered across clients; the
// consumption pattern (idempotent re-subscription, handler replacement) is part
// of the core design.
type EventChannel interface {
	// Subscribe registers handler for a topic. Subscribing to a topic that
	// already has a handler replaces it; there is at most one handler per
	// topic per channel.
	Subscribe(topic string, handler EventHandler)

	// Unsubscribe removes the topic's handler. Unsubscribing a topic without
	// a handler is a no-op.
	Unsubscribe(topic string)

	// Emit publishes a payload on a topic. The payload is JSON-marshaled by
	// the transport.
	Emit(ctx context.Context, topic string, payload any) error

	// Close tears down all subscriptions and the underlying connection.
	Close() error
}
