package store_test

import (
	"sync"
	"testing"
	"time"

	"orderboard/internal/core/application/store"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newStore() (*store.Store, *time.Time) {
	now := baseTime
	s := store.NewWithClock(func() time.Time { return now })
	return s, &now
}

func makeOrder(t *testing.T, id string, status order.Status, itemIDs ...string) *order.Order {
	t.Helper()
	items := make([]*order.Item, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		item, err := order.NewItem(itemID, "Item "+itemID, 500, []string{"grill"})
		require.NoError(t, err)
		items = append(items, item)
	}
	o, err := order.RestoreOrder(
		id, "code-"+id, status,
		baseTime.Add(-time.Hour), nil, 1000, kernel.CorrelationID{},
		order.Customer{}, order.Origin{}, items,
	)
	require.NoError(t, err)
	return o
}

func TestStore_IngestSnapshot(t *testing.T) {
	t.Run("classifies_rows_by_status", func(t *testing.T) {
		s, _ := newStore()

		ingested := s.IngestSnapshot([]*order.Order{
			makeOrder(t, "O1", order.Created, "i1"),
			makeOrder(t, "O2", order.Accepted, "i1"),
			makeOrder(t, "O3", order.ReadyForPickup, "i1"),
			makeOrder(t, "O4", order.Completed, "i1"),
		})

		assert.True(t, ingested)
		assert.True(t, s.Hydrated())
		assert.Len(t, s.ActiveOrders(), 3)
		assert.Len(t, s.CompletedOrders(), 1)
	})

	t.Run("second_snapshot_is_a_no_op", func(t *testing.T) {
		s, _ := newStore()

		require.True(t, s.IngestSnapshot([]*order.Order{makeOrder(t, "O1", order.Created)}))
		assert.False(t, s.IngestSnapshot([]*order.Order{makeOrder(t, "O2", order.Created)}))

		_, ok := s.Get("O2")
		assert.False(t, ok)
	})

	t.Run("latch_flips_even_for_empty_snapshot", func(t *testing.T) {
		s, _ := newStore()

		assert.True(t, s.IngestSnapshot(nil))
		assert.True(t, s.Hydrated())
		assert.False(t, s.IngestSnapshot([]*order.Order{makeOrder(t, "O1", order.Created)}))
	})

	t.Run("reset_allows_rehydration", func(t *testing.T) {
		s, _ := newStore()
		require.True(t, s.IngestSnapshot([]*order.Order{makeOrder(t, "O1", order.Created)}))

		s.ResetForRehydration()

		assert.False(t, s.Hydrated())
		assert.Empty(t, s.ActiveOrders())
		assert.True(t, s.IngestSnapshot([]*order.Order{makeOrder(t, "O2", order.Created)}))
	})
}

func TestStore_IngestNewOrder(t *testing.T) {
	t.Run("idempotent_under_duplicate_delivery", func(t *testing.T) {
		s, _ := newStore()

		assert.True(t, s.IngestNewOrder(makeOrder(t, "O1", order.Created, "i1")))
		assert.False(t, s.IngestNewOrder(makeOrder(t, "O1", order.Created, "i1", "i2")))

		active := s.ActiveOrders()
		require.Len(t, active, 1)
		// The first delivery wins; the duplicate does not replace it.
		assert.Len(t, active[0].Items(), 1)
	})

	t.Run("does_not_resurrect_completed_orders", func(t *testing.T) {
		s, _ := newStore()
		require.True(t, s.IngestNewOrder(makeOrder(t, "O1", order.Completed, "i1")))

		assert.False(t, s.IngestNewOrder(makeOrder(t, "O1", order.Created, "i1")))
		assert.Empty(t, s.ActiveOrders())
		assert.Len(t, s.CompletedOrders(), 1)
	})
}

func TestStore_PartitionExclusivity(t *testing.T) {
	s, _ := newStore()
	require.True(t, s.IngestNewOrder(makeOrder(t, "O1", order.Accepted, "i1")))

	require.True(t, s.ApplyOrderStatusChanged("O1", order.Completed))

	assert.Empty(t, s.ActiveOrders())
	require.Len(t, s.CompletedOrders(), 1)

	// Upserting the refetched record keeps the id in exactly one partition.
	s.Upsert(makeOrder(t, "O1", order.Completed, "i1"))
	assert.Empty(t, s.ActiveOrders())
	assert.Len(t, s.CompletedOrders(), 1)
}

func TestStore_ApplyItemStarted(t *testing.T) {
	t.Run("sets_started_and_clears_completed", func(t *testing.T) {
		s, now := newStore()
		require.True(t, s.IngestNewOrder(makeOrder(t, "O1", order.Accepted, "i1")))

		require.True(t, s.ApplyItemCompleted("O1", "i1"))
		*now = now.Add(time.Minute)
		require.True(t, s.ApplyItemStarted("O1", "i1"))

		o, ok := s.Get("O1")
		require.True(t, ok)
		item, ok := o.Item("i1")
		require.True(t, ok)
		assert.Equal(t, *now, *item.StartedAt())
		assert.Nil(t, item.CompletedAt())
	})

	t.Run("unknown_order_is_a_silent_no_op", func(t *testing.T) {
		s, _ := newStore()
		assert.False(t, s.ApplyItemStarted("missing", "i1"))
	})

	t.Run("unknown_item_is_a_silent_no_op", func(t *testing.T) {
		s, _ := newStore()
		require.True(t, s.IngestNewOrder(makeOrder(t, "O1", order.Accepted, "i1")))
		assert.False(t, s.ApplyItemStarted("O1", "missing"))
	})
}

func TestStore_ApplyItemCompleted(t *testing.T) {
	// Scenario: a completed event arrives for an item never marked started.
	t.Run("backfills_started_to_event_time", func(t *testing.T) {
		s, now := newStore()
		require.True(t, s.IngestNewOrder(makeOrder(t, "O1", order.Accepted, "i1")))

		require.True(t, s.ApplyItemCompleted("O1", "i1"))

		o, _ := s.Get("O1")
		item, _ := o.Item("i1")
		require.NotNil(t, item.CompletedAt())
		require.NotNil(t, item.StartedAt())
		assert.Equal(t, *now, *item.CompletedAt())
		assert.Equal(t, *now, *item.StartedAt())
	})
}

func TestStore_MonotonicCompletion(t *testing.T) {
	// After any sequence of applied events, completedAt != nil implies
	// startedAt != nil for every item.
	s, now := newStore()
	require.True(t, s.IngestNewOrder(makeOrder(t, "O1", order.Accepted, "i1", "i2", "i3")))

	s.ApplyItemCompleted("O1", "i1")
	*now = now.Add(time.Minute)
	s.ApplyItemStarted("O1", "i2")
	*now = now.Add(time.Minute)
	s.ApplyItemCompleted("O1", "i2")
	s.ApplyOrderStatusChanged("O1", order.ReadyForPickup)

	o, _ := s.Get("O1")
	for _, item := range o.Items() {
		if item.CompletedAt() != nil {
			require.NotNil(t, item.StartedAt(), "item %s completed without started", item.ID())
		}
	}
}

func TestStore_ApplyOrderStatusChanged(t *testing.T) {
	t.Run("mutates_in_place_for_non_terminal_status", func(t *testing.T) {
		// Scenario: snapshot holds O1 in Created; order_accepted arrives.
		s, _ := newStore()
		require.True(t, s.IngestSnapshot([]*order.Order{makeOrder(t, "O1", order.Created, "i1")}))

		require.True(t, s.ApplyOrderStatusChanged("O1", order.Accepted))

		active := s.ActiveOrders()
		require.Len(t, active, 1)
		assert.Equal(t, order.Accepted, active[0].Status())
		assert.Empty(t, s.CompletedOrders())
	})

	t.Run("ready_for_pickup_closes_out_open_items", func(t *testing.T) {
		s, now := newStore()
		require.True(t, s.IngestNewOrder(makeOrder(t, "O1", order.Accepted, "i1", "i2")))
		require.True(t, s.ApplyItemCompleted("O1", "i1"))

		*now = now.Add(10 * time.Minute)
		require.True(t, s.ApplyOrderStatusChanged("O1", order.ReadyForPickup))

		o, _ := s.Get("O1")
		for _, item := range o.Items() {
			require.NotNil(t, item.StartedAt())
			require.NotNil(t, item.CompletedAt())
		}
		// The untouched item falls back to the order's own start time.
		untouched, _ := o.Item("i2")
		assert.Equal(t, o.StartedAt(), *untouched.StartedAt())
	})

	t.Run("terminal_status_moves_order_to_completed_partition", func(t *testing.T) {
		s, _ := newStore()
		require.True(t, s.IngestNewOrder(makeOrder(t, "O1", order.ReadyForPickup, "i1")))

		require.True(t, s.ApplyOrderStatusChanged("O1", order.Completed))

		assert.Empty(t, s.ActiveOrders())
		require.Len(t, s.CompletedOrders(), 1)
		assert.Equal(t, order.Completed, s.CompletedOrders()[0].Status())
	})

	t.Run("unknown_order_is_a_silent_no_op", func(t *testing.T) {
		s, _ := newStore()
		assert.False(t, s.ApplyOrderStatusChanged("missing", order.Accepted))
	})
}

func TestStore_TerminalImmutability(t *testing.T) {
	s, now := newStore()
	require.True(t, s.IngestNewOrder(makeOrder(t, "O1", order.ReadyForPickup, "i1")))
	require.True(t, s.ApplyOrderStatusChanged("O1", order.Completed))

	o, _ := s.Get("O1")
	item, _ := o.Item("i1")
	startedBefore := *item.StartedAt()
	completedBefore := *item.CompletedAt()

	*now = now.Add(time.Hour)
	assert.False(t, s.ApplyItemStarted("O1", "i1"))
	assert.False(t, s.ApplyItemCompleted("O1", "i1"))
	assert.False(t, s.ApplyOrderStatusChanged("O1", order.Accepted))

	after, _ := s.Get("O1")
	item, _ = after.Item("i1")
	assert.Equal(t, startedBefore, *item.StartedAt())
	assert.Equal(t, completedBefore, *item.CompletedAt())
}

func TestStore_Remove(t *testing.T) {
	s, _ := newStore()
	require.True(t, s.IngestNewOrder(makeOrder(t, "O1", order.Created)))
	require.True(t, s.IngestNewOrder(makeOrder(t, "O2", order.Completed)))

	s.Remove("O1")
	s.Remove("O2")
	s.Remove("never-existed")

	assert.Empty(t, s.ActiveOrders())
	assert.Empty(t, s.CompletedOrders())
}

func TestStore_DisplayOrdering(t *testing.T) {
	s, _ := newStore()
	for _, id := range []string{"O1", "O3", "O2"} {
		require.True(t, s.IngestNewOrder(makeOrder(t, id, order.Created)))
	}

	active := s.ActiveOrders()
	require.Len(t, active, 3)
	assert.Equal(t, "O3", active[0].ID())
	assert.Equal(t, "O2", active[1].ID())
	assert.Equal(t, "O1", active[2].ID())
}

func TestStore_ItemStats(t *testing.T) {
	s, _ := newStore()
	require.True(t, s.IngestNewOrder(makeOrder(t, "O1", order.Accepted, "i1", "i2", "i3")))

	s.ApplyItemStarted("O1", "i1")
	s.ApplyItemStarted("O1", "i2")
	s.ApplyItemCompleted("O1", "i2")

	stats := s.ItemStats()
	assert.Equal(t, 1, stats.InProgress) // i1
	assert.Equal(t, 1, stats.InQueue)    // i3
}

func TestStore_BoundaryCopies(t *testing.T) {
	t.Run("reads_are_detached_from_the_store", func(t *testing.T) {
		s, _ := newStore()
		require.True(t, s.IngestNewOrder(makeOrder(t, "O1", order.Accepted, "i1")))

		read, _ := s.Get("O1")
		read.ApplyStatus(order.ReadyForPickup, baseTime)

		held, _ := s.Get("O1")
		assert.Equal(t, order.Accepted, held.Status())
		item, _ := held.Item("i1")
		assert.Nil(t, item.CompletedAt())
	})

	t.Run("ingested_aggregates_are_detached_from_the_caller", func(t *testing.T) {
		s, _ := newStore()
		o := makeOrder(t, "O1", order.Accepted, "i1")
		require.True(t, s.IngestNewOrder(o))

		o.ApplyStatus(order.Completed, baseTime)

		assert.Len(t, s.ActiveOrders(), 1)
		assert.Empty(t, s.CompletedOrders())
	})
}

// Readers serialize the aggregates they get back after the store mutex is
// released, so reads must never alias a record still being converged. Run
// with the race detector.
func TestStore_ConcurrentReadsAndWrites(t *testing.T) {
	s, _ := newStore()
	require.True(t, s.IngestNewOrder(makeOrder(t, "O1", order.Accepted, "i1")))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.ApplyItemStarted("O1", "i1")
			s.ApplyItemCompleted("O1", "i1")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			active := s.ActiveOrders()
			if len(active) == 0 {
				continue
			}
			item, ok := active[0].Item("i1")
			if ok {
				_ = item.StartedAt()
				_ = item.CompletedAt()
			}
		}
	}()
	wg.Wait()

	o, ok := s.Get("O1")
	require.True(t, ok)
	assert.Equal(t, "O1", o.ID())
}
