package listeners_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderboard/internal/adapters/out/inmem"
	"orderboard/internal/core/application/routing"
	"orderboard/internal/core/application/store"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/domain/model/station"
	"orderboard/internal/core/ports"
	"orderboard/internal/listeners"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// taggedOrder builds an order whose single item carries the given tags.
func taggedOrder(t *testing.T, id string, status order.Status, tags ...string) *order.Order {
	t.Helper()
	item, err := order.NewItem("i1", "Item", 500, tags)
	require.NoError(t, err)
	o, err := order.RestoreOrder(
		id, "code-"+id, status,
		time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), nil, 1000,
		kernel.CorrelationID{}, order.Customer{}, order.Origin{}, []*order.Item{item},
	)
	require.NoError(t, err)
	return o
}

type stationFixture struct {
	listener *listeners.StationListener
	gateway  *MockOrderGateway
	orders   *store.Store
	router   *routing.Router
	channel  *inmem.EventChannel
}

func newStationFixture(t *testing.T, snapshot []*order.Order, tags ...string) *stationFixture {
	t.Helper()

	f := &stationFixture{
		gateway: new(MockOrderGateway),
		orders:  store.New(),
		channel: inmem.NewEventChannel(),
	}
	f.gateway.On("TodayOrders", mock.Anything, mock.Anything).Return(snapshot, nil)

	st, err := station.NewStation("S1", "Grill", tags)
	require.NoError(t, err)
	f.router, err = routing.NewRouter(testSession(t), st, f.channel)
	require.NoError(t, err)

	f.listener = listeners.NewStationListener(
		testSession(t), f.gateway, f.orders, f.router, f.channel,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	t.Cleanup(f.listener.Close)
	return f
}

func TestStationListener_Start(t *testing.T) {
	t.Run("hydrates_only_matching_orders_and_joins_the_group", func(t *testing.T) {
		f := newStationFixture(t, []*order.Order{
			taggedOrder(t, "O1", order.Created, "grill"),
			taggedOrder(t, "O2", order.Created, "dessert"),
		}, "grill", "fry")

		var joined []byte
		f.channel.Subscribe(ports.TopicStationJoined, func(_ context.Context, payload []byte) {
			joined = payload
		})

		require.NoError(t, f.listener.Start(context.Background()))

		active := f.orders.ActiveOrders()
		require.Len(t, active, 1)
		assert.Equal(t, "O1", active[0].ID())
		assert.JSONEq(t,
			`{"restaurantId":"R1","locationId":"L1","stationId":"S1","stationTags":["grill","fry"]}`,
			string(joined))
	})
}

func TestStationListener_OnNewOrder(t *testing.T) {
	t.Run("fetches_and_ingests_a_matching_order", func(t *testing.T) {
		f := newStationFixture(t, nil, "grill")
		require.NoError(t, f.listener.Start(context.Background()))

		fetched := taggedOrder(t, "O1", order.Created, "grill")
		f.gateway.On("Order", mock.Anything, mock.Anything, "O1", kernel.CorrelationID{}).
			Return(fetched, nil).Once()

		require.NoError(t, f.channel.Emit(context.Background(), ports.TopicNewOrder, ports.OrderReceivedPayload{
			OrderID:      "O1",
			RestaurantID: "R1",
			StationTags:  []string{"grill", "dessert"},
		}))

		active := f.orders.ActiveOrders()
		require.Len(t, active, 1)
		assert.Equal(t, fetched.ID(), active[0].ID())
	})

	t.Run("ignores_orders_for_other_stations", func(t *testing.T) {
		f := newStationFixture(t, nil, "grill")
		require.NoError(t, f.listener.Start(context.Background()))

		require.NoError(t, f.channel.Emit(context.Background(), ports.TopicNewOrder, ports.OrderReceivedPayload{
			OrderID:      "O1",
			RestaurantID: "R1",
			StationTags:  []string{"dessert"},
		}))

		assert.Empty(t, f.orders.ActiveOrders())
		f.gateway.AssertNotCalled(t, "Order", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ignores_events_without_tags", func(t *testing.T) {
		// No tags means no intersection; the routing rule has no wildcard.
		f := newStationFixture(t, nil, "grill")
		require.NoError(t, f.listener.Start(context.Background()))

		require.NoError(t, f.channel.Emit(context.Background(), ports.TopicNewOrder, ports.OrderReceivedPayload{
			OrderID:      "O1",
			RestaurantID: "R1",
		}))

		assert.Empty(t, f.orders.ActiveOrders())
	})
}

func TestStationListener_OnItemEvents(t *testing.T) {
	t.Run("applies_matching_item_events", func(t *testing.T) {
		f := newStationFixture(t, []*order.Order{taggedOrder(t, "O1", order.Accepted, "grill")}, "grill")
		require.NoError(t, f.listener.Start(context.Background()))

		require.NoError(t, f.channel.Emit(context.Background(), ports.TopicOrderItemStarted, ports.OrderItemPayload{
			OrderID:      "O1",
			ItemID:       "i1",
			RestaurantID: "R1",
			StationTags:  []string{"grill"},
		}))

		o, _ := f.orders.Get("O1")
		item, _ := o.Item("i1")
		assert.True(t, item.InProgress())

		require.NoError(t, f.channel.Emit(context.Background(), ports.TopicOrderItemCompleted, ports.OrderItemPayload{
			OrderID:      "O1",
			ItemID:       "i1",
			RestaurantID: "R1",
			StationTags:  []string{"grill"},
		}))
		assert.True(t, item.IsCompleted())
	})

	t.Run("filters_item_events_by_tag", func(t *testing.T) {
		f := newStationFixture(t, []*order.Order{taggedOrder(t, "O1", order.Accepted, "grill")}, "grill")
		require.NoError(t, f.listener.Start(context.Background()))

		require.NoError(t, f.channel.Emit(context.Background(), ports.TopicOrderItemStarted, ports.OrderItemPayload{
			OrderID:      "O1",
			ItemID:       "i1",
			RestaurantID: "R1",
			StationTags:  []string{"dessert"},
		}))

		o, _ := f.orders.Get("O1")
		item, _ := o.Item("i1")
		assert.True(t, item.Queued())
	})

	t.Run("untagged_item_event_falls_back_to_local_lookup", func(t *testing.T) {
		f := newStationFixture(t, []*order.Order{taggedOrder(t, "O1", order.Accepted, "grill")}, "grill")
		require.NoError(t, f.listener.Start(context.Background()))

		require.NoError(t, f.channel.Emit(context.Background(), ports.TopicOrderItemStarted, ports.OrderItemPayload{
			OrderID:      "O1",
			ItemID:       "i1",
			RestaurantID: "R1",
		}))

		o, _ := f.orders.Get("O1")
		item, _ := o.Item("i1")
		assert.True(t, item.InProgress())
	})
}

func TestStationListener_OnOrderStatus(t *testing.T) {
	f := newStationFixture(t, []*order.Order{taggedOrder(t, "O1", order.Created, "grill")}, "grill")
	require.NoError(t, f.listener.Start(context.Background()))

	require.NoError(t, f.channel.Emit(context.Background(), ports.TopicOrderAccepted,
		ports.OrderStatusPayload{OrderID: "O1", RestaurantID: "R1"}))
	o, _ := f.orders.Get("O1")
	assert.Equal(t, order.Accepted, o.Status())

	require.NoError(t, f.channel.Emit(context.Background(), ports.TopicOrderReadyForPickup,
		ports.OrderStatusPayload{OrderID: "O1", RestaurantID: "R1"}))
	item, _ := o.Item("i1")
	assert.True(t, item.IsCompleted())

	require.NoError(t, f.channel.Emit(context.Background(), ports.TopicOrderCompleted,
		ports.OrderStatusPayload{OrderID: "O1", RestaurantID: "R1"}))
	assert.Empty(t, f.orders.ActiveOrders())
	assert.Len(t, f.orders.CompletedOrders(), 1)
}

func TestStationListener_Close(t *testing.T) {
	f := newStationFixture(t, []*order.Order{taggedOrder(t, "O1", order.Created, "grill")}, "grill")
	require.NoError(t, f.listener.Start(context.Background()))

	f.listener.Close()

	require.NoError(t, f.channel.Emit(context.Background(), ports.TopicOrderAccepted,
		ports.OrderStatusPayload{OrderID: "O1", RestaurantID: "R1"}))
	o, _ := f.orders.Get("O1")
	assert.Equal(t, order.Created, o.Status())
}
