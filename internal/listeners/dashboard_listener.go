package listeners

import (
	"context"
	"log/slog"
	"time"

	"orderboard/internal/core/application/store"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/debounce"
)

// DashboardListener converges the full order board.
//
// On Start it hydrates the store from the today-orders snapshot, announces
// presence on the channel, and subscribes to every dashboard-scoped topic.
// From then on the store is mutated only by incoming events (and by the
// mutation handlers acting on the same store).
//
// New-order side effects (ticket print, audible alert) are debounced per order:
// the backend may deliver the same order through more than one path in quick
// succession, and the kitchen must not get two tickets for it.
type DashboardListener struct {
	session   kernel.Session
	gateway   ports.OrderGateway
	orders    *store.Store
	channel   ports.EventChannel
	debouncer *debounce.Debouncer
	window    time.Duration
	printer   ports.PrintDispatcher
	printerTo ports.PrinterInfo
	alerter   ports.Alerter
	logger    *slog.Logger
	now       func() time.Time
}

// DashboardListenerDeps carries the collaborators of a DashboardListener.
// Printer and Alerter are optional; a board without a configured printer
// simply skips the dispatch.
type DashboardListenerDeps struct {
	Session   kernel.Session
	Gateway   ports.OrderGateway
	Orders    *store.Store
	Channel   ports.EventChannel
	Debouncer *debounce.Debouncer
	Window    time.Duration
	Printer   ports.PrintDispatcher
	PrinterTo ports.PrinterInfo
	Alerter   ports.Alerter
	Logger    *slog.Logger

	// Clock overrides the wall clock, for tests. Nil means time.Now.
	Clock func() time.Time
}

// NewDashboardListener creates a listener for the full order board.
// A zero Window falls back to the standard debounce window.
func NewDashboardListener(deps DashboardListenerDeps) *DashboardListener {
	window := deps.Window
	if window <= 0 {
		window = debounce.DefaultWindow
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}

	return &DashboardListener{
		session:   deps.Session,
		gateway:   deps.Gateway,
		orders:    deps.Orders,
		channel:   deps.Channel,
		debouncer: deps.Debouncer,
		window:    window,
		printer:   deps.Printer,
		printerTo: deps.PrinterTo,
		alerter:   deps.Alerter,
		logger:    deps.Logger.With("component", "dashboard_listener"),
		now:       now,
	}
}

var dashboardTopics = []string{
	ports.TopicOrderReceived,
	ports.TopicOrderAccepted,
	ports.TopicOrderReadyForPickup,
	ports.TopicOrderCompleted,
	ports.TopicDashboardOrderItemStarted,
	ports.TopicDashboardOrderItemCompleted,
}

// Start hydrates the store, announces presence, and subscribes to the
// dashboard topics. Safe to call again after Close; subscriptions replace.
func (l *DashboardListener) Start(ctx context.Context) error {
	if err := l.Hydrate(ctx); err != nil {
		return err
	}

	if err := l.channel.Emit(ctx, ports.TopicStoreJoined, ports.StoreJoinedPayload{
		RestaurantID: l.session.RestaurantID(),
		LocationID:   l.session.LocationID(),
	}); err != nil {
		return err
	}

	l.channel.Subscribe(ports.TopicOrderReceived, l.onOrderReceived)
	l.channel.Subscribe(ports.TopicOrderAccepted, l.onOrderStatus(ports.TopicOrderAccepted, order.Accepted))
	l.channel.Subscribe(ports.TopicOrderReadyForPickup, l.onOrderStatus(ports.TopicOrderReadyForPickup, order.ReadyForPickup))
	l.channel.Subscribe(ports.TopicOrderCompleted, l.onOrderCompleted)
	l.channel.Subscribe(ports.TopicDashboardOrderItemStarted, l.onOrderItem(ports.TopicDashboardOrderItemStarted, l.orders.ApplyItemStarted))
	l.channel.Subscribe(ports.TopicDashboardOrderItemCompleted, l.onOrderItem(ports.TopicDashboardOrderItemCompleted, l.orders.ApplyItemCompleted))

	l.logger.InfoContext(ctx, "Dashboard listener started",
		"restaurantId", l.session.RestaurantID(), "locationId", l.session.LocationID())
	return nil
}

// Hydrate fetches the today-orders snapshot and ingests it. The store's
// hydration latch makes a repeated snapshot a no-op, so a hydrate racing
// event traffic cannot clobber converged state.
func (l *DashboardListener) Hydrate(ctx context.Context) error {
	if l.orders.Hydrated() {
		return nil
	}

	rows, err := l.gateway.TodayOrders(ctx, l.session)
	if err != nil {
		return err
	}
	l.orders.IngestSnapshot(rows)
	return nil
}

// Rehydrate drops the converged state and hydrates from a fresh snapshot.
// Used when the "today" window rolls over at midnight.
func (l *DashboardListener) Rehydrate(ctx context.Context) error {
	l.orders.ResetForRehydration()
	return l.Hydrate(ctx)
}

// Close unsubscribes every dashboard topic and cancels pending side effects.
// The channel itself stays open; other listeners may share it.
func (l *DashboardListener) Close() {
	for _, topic := range dashboardTopics {
		l.channel.Unsubscribe(topic)
	}
	l.debouncer.CancelAll()
	l.logger.Info("Dashboard listener closed")
}

func (l *DashboardListener) onOrderReceived(ctx context.Context, raw []byte) {
	var payload ports.OrderReceivedPayload
	if err := ports.DecodePayload(ports.TopicOrderReceived, raw, &payload); err != nil {
		l.dropMalformed(ctx, ports.TopicOrderReceived, err)
		return
	}
	if err := payload.Validate(); err != nil {
		l.dropMalformed(ctx, ports.TopicOrderReceived, err)
		return
	}

	correlationID := l.parseCorrelationID(ctx, ports.TopicOrderReceived, payload.CorrelationID)
	fetched, err := l.gateway.Order(ctx, l.session, payload.OrderID, correlationID)
	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to fetch received order",
			"orderId", payload.OrderID, "error", err)
		return
	}

	if !l.orders.IngestNewOrder(fetched) {
		// Duplicate delivery; the side effects already ran (or are pending).
		return
	}

	l.scheduleNewOrderEffects(fetched)
}

// scheduleNewOrderEffects debounces the ticket print and the audible alert,
// keyed by order id so bursts for different orders do not supersede each other.
func (l *DashboardListener) scheduleNewOrderEffects(o *order.Order) {
	l.debouncer.Schedule(o.ID(), l.window, func() {
		ctx := context.Background()

		if l.printer != nil {
			job := ports.PrintJob{
				Order:   o,
				Printer: l.printerTo,
				Restaurant: ports.RestaurantInfo{
					RestaurantID:   l.session.RestaurantID(),
					RestaurantName: l.session.RestaurantName(),
					LocationID:     l.session.LocationID(),
					LocationName:   l.session.LocationName(),
				},
				Source: "socket",
			}
			if err := l.printer.Dispatch(ctx, job); err != nil {
				l.logger.ErrorContext(ctx, "Failed to dispatch ticket print",
					"orderId", o.ID(), "error", err)
			}
		}

		if l.alerter != nil {
			l.alerter.Alert(ctx, o.ID())
		}
	})
}

func (l *DashboardListener) onOrderStatus(topic string, status order.Status) ports.EventHandler {
	return func(ctx context.Context, raw []byte) {
		payload, ok := l.decodeStatus(ctx, topic, raw)
		if !ok {
			return
		}
		l.orders.ApplyOrderStatusChanged(payload.OrderID, status)
	}
}

// onOrderCompleted re-fetches the completed order so the backend-computed
// completion fields land in the completed partition, falling back to the
// locally held record when the fetch fails.
func (l *DashboardListener) onOrderCompleted(ctx context.Context, raw []byte) {
	payload, ok := l.decodeStatus(ctx, ports.TopicOrderCompleted, raw)
	if !ok {
		return
	}

	local, held := l.orders.Get(payload.OrderID)
	if !held {
		return
	}
	l.orders.Remove(payload.OrderID)

	correlationID := l.parseCorrelationID(ctx, ports.TopicOrderCompleted, payload.CorrelationID)
	fetched, err := l.gateway.Order(ctx, l.session, payload.OrderID, correlationID)
	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to fetch completed order, keeping local record",
			"orderId", payload.OrderID, "error", err)
		local.ApplyStatus(order.Completed, l.now())
		l.orders.Upsert(local)
		return
	}
	l.orders.Upsert(fetched)
}

func (l *DashboardListener) onOrderItem(topic string, apply func(orderID, itemID string) bool) ports.EventHandler {
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
		apply(payload.OrderID, payload.ItemID)
	}
}

func (l *DashboardListener) decodeStatus(ctx context.Context, topic string, raw []byte) (ports.OrderStatusPayload, bool) {
	var payload ports.OrderStatusPayload
	if err := ports.DecodePayload(topic, raw, &payload); err != nil {
		l.dropMalformed(ctx, topic, err)
		return ports.OrderStatusPayload{}, false
	}
	if err := payload.Validate(topic); err != nil {
		l.dropMalformed(ctx, topic, err)
		return ports.OrderStatusPayload{}, false
	}
	return payload, true
}

// parseCorrelationID tolerates a bad correlation id: tracing metadata must
// never block convergence.
func (l *DashboardListener) parseCorrelationID(ctx context.Context, topic, s string) kernel.CorrelationID {
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

func (l *DashboardListener) dropMalformed(ctx context.Context, topic string, err error) {
	l.logger.WarnContext(ctx, "Dropping malformed event", "topic", topic, "error", err)
}
