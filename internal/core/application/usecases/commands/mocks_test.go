package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) Add(ctx context.Context, a *agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Update(ctx context.Context, a *agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
}

func (m *MockAgentRepository) PhoneTaken(ctx context.Context, phone kernel.Phone, except *kernel.UUID) (bool, error) {
	args := m.Called(ctx, phone, except)
	return args.Bool(0), args.Error(1)
}

// MockUoW satisfies commands.UoW, commands.OrderUoW and commands.AgentUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AgentRepository() ports.AgentRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockAgentUoWFactory struct{ mock.Mock }

func (m *MockAgentUoWFactory) Create() commands.AgentUoW {
	args := m.Called()
	return args.Get(0).(commands.AgentUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) OrderPlaced(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) OrderStatusChanged(ctx context.Context, o *order.Order, previous order.Status) {
	m.Called(ctx, o, previous)
}

func (m *MockNotifier) AgentAssigned(ctx context.Context, o *order.Order, a *agent.Agent) {
	m.Called(ctx, o, a)
}

type MockMenuCatalog struct{ mock.Mock }

func (m *MockMenuCatalog) Lookup(ctx context.Context, ids []int64) (map[int64]menu.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]menu.Item), args.Error(1)
}

type MockAddressStore struct{ mock.Mock }

func (m *MockAddressStore) BelongsTo(ctx context.Context, customerID int64, addressID int64) (bool, error) {
	args := m.Called(ctx, customerID, addressID)
	return args.Bool(0), args.Error(1)
}

// fixtures

const testCustomerID int64 = 42

var testNow = time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), 1, "Paneer Tikka", kernel.MustMoney("100.00"), 3, "")
	require.NoError(t, err)
	pricing, err := order.NewPricing(kernel.MustMoney("300.00"), kernel.MustMoney("15.00"), kernel.MustMoney("50.00"))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), testCustomerID, 7, []order.Item{item}, pricing,
		"", testNow.Add(45*time.Minute), testNow)
	require.NoError(t, err)
	return o
}

func newDispatchedOrder(t *testing.T, a *agent.Agent) *order.Order {
	t.Helper()

	o := newPendingOrder(t)
	require.NoError(t, a.Reserve(testNow))
	require.NoError(t, o.Dispatch(a.ID(), testNow))
	return o
}

func newAgent(t *testing.T, status agent.Status) *agent.Agent {
	t.Helper()

	phone, err := kernel.NewPhone("9876543210")
	require.NoError(t, err)
	a, err := agent.NewAgent(kernel.NewUUID(), "Ravi Kumar", phone, nil, agent.Vehicle{}, testNow)
	require.NoError(t, err)
	if status == agent.Available {
		require.NoError(t, a.SetAvailability(agent.Available, testNow))
	}
	return a
}

func newCustomer(t *testing.T) customer.Principal {
	t.Helper()

	p, err := customer.NewPrincipal(testCustomerID, "9876543210", customer.RoleCustomer)
	require.NoError(t, err)
	return p
}

func newAdmin(t *testing.T) customer.Principal {
	t.Helper()

	p, err := customer.NewPrincipal(1, "9000000000", customer.RoleAdmin)
	require.NoError(t, err)
	return p
}
