package commands_test

import (
	"context"
	"testing"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderGateway struct{ mock.Mock }

func (m *MockOrderGateway) TodayOrders(ctx context.Context, session kernel.Session) ([]*order.Order, error) {
	args := m.Called(ctx, session)
	if orders, ok := args.Get(0).([]*order.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderGateway) Order(ctx context.Context, session kernel.Session, orderID string, correlationID kernel.CorrelationID) (*order.Order, error) {
	args := m.Called(ctx, session, orderID, correlationID)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderGateway) ChangeOrderStatus(ctx context.Context, orderID string, status order.Status, correlationID kernel.CorrelationID) error {
	args := m.Called(ctx, orderID, status, correlationID)
	return args.Error(0)
}

func (m *MockOrderGateway) ChangeOrderItemStatus(ctx context.Context, orderID, itemID string, status ports.ItemStatus, correlationID kernel.CorrelationID) error {
	args := m.Called(ctx, orderID, itemID, status, correlationID)
	return args.Error(0)
}

type MockEventChannel struct{ mock.Mock }

func (m *MockEventChannel) Subscribe(topic string, handler ports.EventHandler) {
	m.Called(topic, handler)
}

func (m *MockEventChannel) Unsubscribe(topic string) {
	m.Called(topic)
}

func (m *MockEventChannel) Emit(ctx context.Context, topic string, payload any) error {
	args := m.Called(ctx, topic, payload)
	return args.Error(0)
}

func (m *MockEventChannel) Close() error {
	args := m.Called()
	return args.Error(0)
}

func testSession(t *testing.T) kernel.Session {
	t.Helper()
	session, err := kernel.NewSession("R1", "Resto", "L1", "Main")
	require.NoError(t, err)
	return session
}

func testOrder(t *testing.T, id string, status order.Status, itemIDs ...string) *order.Order {
	t.Helper()
	items := make([]*order.Item, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		item, err := order.NewItem(itemID, "Item "+itemID, 500, []string{"grill"})
		require.NoError(t, err)
		items = append(items, item)
	}
	o, err := order.RestoreOrder(
		id, "code-"+id, status,
		time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), nil, 1000,
		kernel.CorrelationID{}, order.Customer{}, order.Origin{}, items,
	)
	require.NoError(t, err)
	return o
}
