package notifications_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"marketplace/internal/core/application/notifications"
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockGateway struct{ mock.Mock }

func (m *MockGateway) Send(ctx context.Context, phone string, message string) error {
	args := m.Called(ctx, phone, message)
	return args.Error(0)
}

type MockCustomerDirectory struct{ mock.Mock }

func (m *MockCustomerDirectory) PhoneNumber(ctx context.Context, customerID int64) (string, error) {
	args := m.Called(ctx, customerID)
	return args.String(0), args.Error(1)
}

var now = time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)

func newOrder(t *testing.T) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), 1, "Paneer Tikka", kernel.MustMoney("100.00"), 3, "")
	require.NoError(t, err)
	pricing, err := order.NewPricing(kernel.MustMoney("300.00"), kernel.MustMoney("15.00"), kernel.MustMoney("50.00"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), 42, 7, []order.Item{item}, pricing, "", now.Add(time.Hour), now)
	require.NoError(t, err)
	return o
}

func newAgent(t *testing.T) *agent.Agent {
	t.Helper()

	phone, err := kernel.NewPhone("9000011111")
	require.NoError(t, err)
	a, err := agent.NewAgent(kernel.NewUUID(), "Ravi Kumar", phone, nil, agent.Vehicle{}, now)
	require.NoError(t, err)
	return a
}

func newDispatcher(gateway *MockGateway, customers *MockCustomerDirectory) (*notifications.Dispatcher, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return notifications.NewDispatcher(gateway, customers, time.Second, zap.New(core)), logs
}

func TestDispatcher_OrderPlaced(t *testing.T) {
	ctx := context.Background()
	o := newOrder(t)
	gateway := new(MockGateway)
	customers := new(MockCustomerDirectory)

	customers.On("PhoneNumber", mock.Anything, int64(42)).Return("9876543210", nil).Once()
	gateway.On("Send", mock.Anything, "9876543210", mock.MatchedBy(func(message string) bool {
		return strings.Contains(message, o.Number()) && strings.Contains(message, "365.00")
	})).Return(nil).Once()

	d, logs := newDispatcher(gateway, customers)
	d.OrderPlaced(ctx, o)

	gateway.AssertExpectations(t)
	customers.AssertExpectations(t)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestDispatcher_OrderStatusChanged(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, o *order.Order)
		message string
	}{
		{"confirmed", func(t *testing.T, o *order.Order) { require.NoError(t, o.Confirm(now)) }, "confirmed"},
		{"cancelled", func(t *testing.T, o *order.Order) { require.NoError(t, o.Cancel(now)) }, "cancelled"},
		{"dispatched", func(t *testing.T, o *order.Order) {
			require.NoError(t, o.Dispatch(kernel.NewUUID(), now))
		}, "on its way"},
		{"delivered", func(t *testing.T, o *order.Order) {
			require.NoError(t, o.Dispatch(kernel.NewUUID(), now))
			require.NoError(t, o.Deliver(now))
		}, "delivered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrder(t)
			tt.mutate(t, o)
			gateway := new(MockGateway)
			customers := new(MockCustomerDirectory)

			customers.On("PhoneNumber", mock.Anything, int64(42)).Return("9876543210", nil).Once()
			gateway.On("Send", mock.Anything, "9876543210", mock.MatchedBy(func(message string) bool {
				return strings.Contains(message, tt.message)
			})).Return(nil).Once()

			d, _ := newDispatcher(gateway, customers)
			d.OrderStatusChanged(context.Background(), o, order.Pending)

			gateway.AssertExpectations(t)
		})
	}
}

func TestDispatcher_OrderStatusChanged_SameStatusSendsNothing(t *testing.T) {
	gateway := new(MockGateway)
	customers := new(MockCustomerDirectory)

	d, _ := newDispatcher(gateway, customers)
	d.OrderStatusChanged(context.Background(), newOrder(t), order.Pending)

	customers.AssertNotCalled(t, "PhoneNumber", mock.Anything, mock.Anything)
	gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_AgentAssigned_SendsToAgent(t *testing.T) {
	o := newOrder(t)
	a := newAgent(t)
	gateway := new(MockGateway)
	customers := new(MockCustomerDirectory)

	gateway.On("Send", mock.Anything, "9000011111", mock.MatchedBy(func(message string) bool {
		return strings.Contains(message, o.Number())
	})).Return(nil).Once()

	d, _ := newDispatcher(gateway, customers)
	d.AgentAssigned(context.Background(), o, a)

	gateway.AssertExpectations(t)
	customers.AssertNotCalled(t, "PhoneNumber", mock.Anything, mock.Anything)
}

func TestDispatcher_FailuresAreLoggedNotReturned(t *testing.T) {
	t.Run("gateway error", func(t *testing.T) {
		o := newOrder(t)
		gateway := new(MockGateway)
		customers := new(MockCustomerDirectory)
		customers.On("PhoneNumber", mock.Anything, int64(42)).Return("9876543210", nil).Once()
		gateway.On("Send", mock.Anything, "9876543210", mock.Anything).Return(errors.New("broker down")).Once()

		d, logs := newDispatcher(gateway, customers)
		d.OrderPlaced(context.Background(), o)

		warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
		require.Len(t, warnings, 1)
		fields := warnings[0].ContextMap()
		assert.Equal(t, o.ID().String(), fields["order_id"])
		assert.Equal(t, "order_placed", fields["kind"])
		assert.Equal(t, "broker down", fields["error"])
		assert.Equal(t, "notifications", fields["component"])
	})

	t.Run("unknown customer", func(t *testing.T) {
		o := newOrder(t)
		gateway := new(MockGateway)
		customers := new(MockCustomerDirectory)
		customers.On("PhoneNumber", mock.Anything, int64(42)).
			Return("", errs.NewObjectNotFoundError("customer", "42")).Once()

		d, logs := newDispatcher(gateway, customers)
		d.OrderPlaced(context.Background(), o)

		gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	})
}

func TestDispatcher_DetachesFromCancelledRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := newOrder(t)
	gateway := new(MockGateway)
	customers := new(MockCustomerDirectory)
	customers.On("PhoneNumber", mock.Anything, int64(42)).Return("9876543210", nil).Once()
	gateway.On("Send", mock.MatchedBy(func(c context.Context) bool {
		_, hasDeadline := c.Deadline()
		return c.Err() == nil && hasDeadline
	}), "9876543210", mock.Anything).Return(nil).Once()

	d, _ := newDispatcher(gateway, customers)
	d.OrderPlaced(ctx, o)

	gateway.AssertExpectations(t)
}
