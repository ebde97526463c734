package redis_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisadapter "orderboard/internal/adapters/out/redis"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

func newChannel(t *testing.T, prefix string) *redisadapter.EventChannel {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	channel, err := redisadapter.NewEventChannel(client, prefix,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = channel.Close() })
	return channel
}

type payloadRecorder struct {
	mu       sync.Mutex
	payloads []string
}

func (r *payloadRecorder) handler() ports.EventHandler {
	return func(_ context.Context, payload []byte) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.payloads = append(r.payloads, string(payload))
	}
}

func (r *payloadRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

func (r *payloadRecorder) first() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.payloads[0]
}

func TestEventChannel_EmitReachesSubscriber(t *testing.T) {
	channel := newChannel(t, "")
	recorder := &payloadRecorder{}
	channel.Subscribe("order_received", recorder.handler())

	// Subscription setup races the publish; retry until delivery.
	require.Eventually(t, func() bool {
		require.NoError(t, channel.Emit(context.Background(), "order_received",
			ports.OrderStatusPayload{OrderID: "O1", RestaurantID: "R1"}))
		return recorder.count() > 0
	}, 2*time.Second, 20*time.Millisecond)

	assert.JSONEq(t, `{"orderId":"O1","restaurantId":"R1"}`, recorder.first())
}

func TestEventChannel_SubscribeReplacesHandler(t *testing.T) {
	channel := newChannel(t, "")
	old := &payloadRecorder{}
	replacement := &payloadRecorder{}

	channel.Subscribe("t", old.handler())
	channel.Subscribe("t", replacement.handler())

	require.Eventually(t, func() bool {
		require.NoError(t, channel.Emit(context.Background(), "t", struct{}{}))
		return replacement.count() > 0
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, 0, old.count())
}

func TestEventChannel_Unsubscribe(t *testing.T) {
	channel := newChannel(t, "")
	recorder := &payloadRecorder{}
	channel.Subscribe("t", recorder.handler())

	require.Eventually(t, func() bool {
		require.NoError(t, channel.Emit(context.Background(), "t", struct{}{}))
		return recorder.count() > 0
	}, 2*time.Second, 20*time.Millisecond)

	channel.Unsubscribe("t")
	delivered := recorder.count()

	require.NoError(t, channel.Emit(context.Background(), "t", struct{}{}))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, delivered, recorder.count())
}

func TestEventChannel_PrefixIsolatesEnvironments(t *testing.T) {
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	staging, err := redisadapter.NewEventChannel(
		goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "staging", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = staging.Close() })

	prod, err := redisadapter.NewEventChannel(
		goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "prod", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = prod.Close() })

	stagingRec := &payloadRecorder{}
	prodRec := &payloadRecorder{}
	staging.Subscribe("t", stagingRec.handler())
	prod.Subscribe("t", prodRec.handler())

	require.Eventually(t, func() bool {
		require.NoError(t, staging.Emit(context.Background(), "t", struct{}{}))
		return stagingRec.count() > 0
	}, 2*time.Second, 20*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, prodRec.count())
}

func TestNewEventChannel_RequiresClient(t *testing.T) {
	_, err := redisadapter.NewEventChannel(nil, "",
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
