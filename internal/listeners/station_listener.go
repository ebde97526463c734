package listeners

import (
	"context"
	"log/slog"

	"orderboard/internal/core/application/routing"
	"orderboard/internal/core/application/store"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
)

// StationListener converges one kitchen station's slice of the board.
//
// The station only cares about orders containing at least one item whose tags
// intersect its own; everything else is filtered out, at the snapshot and at
// every event. Item events carry the item's tags precisely so this filter can
// run without a fetch.
type StationListener struct {
	session kernel.Session
	gateway ports.OrderGateway
	orders  *store.Store
	router  *routing.Router
	channel ports.EventChannel
	logger  *slog.Logger
}

// NewStationListener creates a listener for the router's station. The store
// must be the station's own; stations do not share the dashboard's view.
func NewStationListener(
	session kernel.Session,
	gateway ports.OrderGateway,
	orders *store.Store,
	router *routing.Router,
	channel ports.EventChannel,
	logger *slog.Logger,
) *StationListener {
	return &StationListener{
		session: session,
		gateway: gateway,
		orders:  orders,
		router:  router,
		channel: channel,
		logger:  logger.With("component", "station_listener", "stationId", router.Station().ID()),
	}
}

var stationTopics = []string{
	ports.TopicNewOrder,
	ports.TopicOrderAccepted,
	ports.TopicOrderReadyForPickup,
	ports.TopicOrderCompleted,
	ports.TopicOrderItemStarted,
	ports.TopicOrderItemCompleted,
}

// Start hydrates the station's view, joins the station's event group, and
// subscribes to the station topics.
func (l *StationListener) Start(ctx context.Context) error {
	if err := l.Hydrate(ctx); err != nil {
		return err
	}

	if err := l.router.Join(ctx); err != nil {
		return err
	}

	l.channel.Subscribe(ports.TopicNewOrder, l.onNewOrder)
	l.channel.Subscribe(ports.TopicOrderAccepted, l.onOrderStatus(ports.TopicOrderAccepted, order.Accepted))
	l.channel.Subscribe(ports.TopicOrderReadyForPickup, l.onOrderStatus(ports.TopicOrderReadyForPickup, order.ReadyForPickup))
	l.channel.Subscribe(ports.TopicOrderCompleted, l.onOrderStatus(ports.TopicOrderCompleted, order.Completed))
	l.channel.Subscribe(ports.TopicOrderItemStarted, l.onOrderItem(ports.TopicOrderItemStarted, l.orders.ApplyItemStarted))
	l.channel.Subscribe(ports.TopicOrderItemCompleted, l.onOrderItem(ports.TopicOrderItemCompleted, l.orders.ApplyItemCompleted))

	l.logger.InfoContext(ctx, "Station listener started", "tags", l.router.Tags())
	return nil
}

// Hydrate fetches the today-orders snapshot and ingests the orders relevant to
// this station.
func (l *StationListener) Hydrate(ctx context.Context) error {
	if l.orders.Hydrated() {
		return nil
	}

	rows, err := l.gateway.TodayOrders(ctx, l.session)
	if err != nil {
		return err
	}

	relevant := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		if l.orderMatches(row) {
			relevant = append(relevant, row)
		}
	}
	l.orders.IngestSnapshot(relevant)
	return nil
}

// Rehydrate drops the station's state and hydrates from a fresh snapshot.
func (l *StationListener) Rehydrate(ctx context.Context) error {
	l.orders.ResetForRehydration()
	return l.Hydrate(ctx)
}

// Close unsubscribes the station topics and leaves the event group.
func (l *StationListener) Close() {
	for _, topic := range stationTopics {
		l.channel.Unsubscribe(topic)
	}
	l.router.Leave()
	l.logger.Info("Station listener closed")
}

func (l *StationListener) orderMatches(o *order.Order) bool {
	if o == nil {
		return false
	}
	for _, item := range o.Items() {
		if l.router.Matches(item.StationTags()) {
			return true
		}
	}
	return false
}

func (l *StationListener) onNewOrder(ctx context.Context, raw []byte) {
	var payload ports.OrderReceivedPayload
	if err := ports.DecodePayload(ports.TopicNewOrder, raw, &payload); err != nil {
		l.dropMalformed(ctx, ports.TopicNewOrder, err)
		return
	}
	if err := payload.Validate(); err != nil {
		l.dropMalformed(ctx, ports.TopicNewOrder, err)
		return
	}

	if !l.router.Matches(payload.StationTags) {
		return
	}

	correlationID := l.parseCorrelationID(ctx, ports.TopicNewOrder, payload.CorrelationID)
	fetched, err := l.gateway.Order(ctx, l.session, payload.OrderID, correlationID)
	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to fetch new order",
			"orderId", payload.OrderID, "error", err)
		return
	}
	l.orders.IngestNewOrder(fetched)
}

func (l *StationListener) onOrderStatus(topic string, status order.Status) ports.EventHandler {
	return func(ctx context.Context, raw []byte) {
		var payload ports.OrderStatusPayload
		if err := ports.DecodePayload(topic, raw, &payload); err != nil {
			l.dropMalformed(ctx, topic, err)
			return
		}
		if err := payload.Validate(topic); err != nil {
			l.dropMalformed(ctx, topic, err)
			return
		}
		// Stations show kitchen progress, not checkout fields, so the terminal
		// status is applied locally without the dashboard's full re-fetch.
		l.orders.ApplyOrderStatusChanged(payload.OrderID, status)
	}
}

func (l *StationListener) onOrderItem(topic string, apply func(orderID, itemID string) bool) ports.EventHandler {
	return func(ctx context.Context, raw []byte) {
		var payload ports.OrderItemPayload
		if err := ports.DecodePayload(topic, raw, &payload); err != nil {
			l.dropMalformed(ctx, topic, err)
			return
		}
		if err := payload.Validate(topic); err != nil {
			l.dropMalformed(ctx, topic, err)
			return
		}

		// Events without tags can still reference an order this station holds;
		// the store's stale-reference no-op covers the rest.
		if len(payload.StationTags) > 0 && !l.router.Matches(payload.StationTags) {
			return
		}
		apply(payload.OrderID, payload.ItemID)
	}
}

func (l *StationListener) parseCorrelationID(ctx context.Context, topic, s string) kernel.CorrelationID {
	if s == "" {
		return kernel.CorrelationID{}
	}
	correlationID, err := kernel.CorrelationIDFromString(s)
	if err != nil {
		l.logger.WarnContext(ctx, "Ignoring invalid correlation id", "topic", topic, "error", err)
		return kernel.CorrelationID{}
	}
	return correlationID
}

func (l *StationListener) dropMalformed(ctx context.Context, topic string, err error) {
	l.logger.WarnContext(ctx, "Dropping malformed event", "topic", topic, "error", err)
}
