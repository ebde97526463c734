package inmem_test

import (
	"context"
	"testing"

	"orderboard/internal/adapters/out/inmem"
	"orderboard/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventChannel_EmitDeliversJSONToSubscriber(t *testing.T) {
	channel := inmem.NewEventChannel()
	var got []byte
	channel.Subscribe("order_received", func(_ context.Context, payload []byte) {
		got = payload
	})

	err := channel.Emit(context.Background(), "order_received", ports.OrderReceivedPayload{
		OrderID:      "O1",
		RestaurantID: "R1",
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"orderId":"O1","restaurantId":"R1","locationId":""}`, string(got))
}

func TestEventChannel_SubscribeReplacesHandler(t *testing.T) {
	channel := inmem.NewEventChannel()
	var first, second int
	channel.Subscribe("t", func(context.Context, []byte) { first++ })
	channel.Subscribe("t", func(context.Context, []byte) { second++ })

	require.NoError(t, channel.Emit(context.Background(), "t", struct{}{}))

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestEventChannel_EmitWithoutSubscriberDropsEvent(t *testing.T) {
	channel := inmem.NewEventChannel()
	assert.NoError(t, channel.Emit(context.Background(), "nobody_home", struct{}{}))
}

func TestEventChannel_Unsubscribe(t *testing.T) {
	channel := inmem.NewEventChannel()
	var calls int
	channel.Subscribe("t", func(context.Context, []byte) { calls++ })

	channel.Unsubscribe("t")
	channel.Unsubscribe("t") // no-op

	require.NoError(t, channel.Emit(context.Background(), "t", struct{}{}))
	assert.Equal(t, 0, calls)
}

func TestEventChannel_Close(t *testing.T) {
	channel := inmem.NewEventChannel()
	var calls int
	channel.Subscribe("t", func(context.Context, []byte) { calls++ })

	require.NoError(t, channel.Close())
	require.NoError(t, channel.Emit(context.Background(), "t", struct{}{}))
	assert.Equal(t, 0, calls)
}
