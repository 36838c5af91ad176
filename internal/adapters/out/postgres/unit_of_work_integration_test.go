package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work and the assignment
// handler against a PostgreSQL container.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
	now       time.Time
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_items, orders, delivery_agents").Error
	suite.Require().NoError(err)
	suite.now = time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMigrate_IsIdempotent() {
	suite.Require().NoError(postgres_adapter.Migrate(suite.db))

	for _, table := range []string{"orders", "order_items", "delivery_agents", "menu_items", "addresses", "users"} {
		suite.True(suite.db.Migrator().HasTable(table), table)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction, "rollback after commit")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryCommit() {
	ctx := context.Background()
	o := suite.newOrder()
	a := suite.newAvailableAgent("9876543210")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.AgentRepository().Add(ctx, a))
	suite.Require().NoError(uow.Commit(ctx))

	stored, err := suite.factory.Create().OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.Number(), stored.Number())

	storedAgent, err := suite.factory.Create().AgentRepository().GetForUpdate(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal(agent.Available, storedAgent.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Rollback_DiscardsEveryWrite() {
	ctx := context.Background()
	o := suite.newOrder()
	a := suite.newAvailableAgent("9876543210")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.AgentRepository().Add(ctx, a))

	_, err := uow.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err, "visible inside the transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.factory.Create().AgentRepository().GetForUpdate(ctx, a.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignAgent_Commits() {
	ctx := context.Background()
	o := suite.seedOrder()
	a := suite.seedAgent("9876543210")

	cmd, err := commands.NewAssignAgentCommand(o.ID(), a.ID())
	suite.Require().NoError(err)
	_, _, err = suite.assignHandler().Handle(ctx, cmd)
	suite.Require().NoError(err)

	stored, err := suite.factory.Create().OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Dispatched, stored.Status())
	suite.Require().NotNil(stored.AgentID())
	suite.Equal(a.ID(), *stored.AgentID())

	storedAgent, err := suite.factory.Create().AgentRepository().GetForUpdate(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal(agent.Assigned, storedAgent.Status())
}

// TestAssignAgent_ConcurrentRequestsForOneAgent races two orders for the same
// agent. Exactly one assignment wins and the loser changes nothing.
func (suite *UnitOfWorkIntegrationTestSuite) TestAssignAgent_ConcurrentRequestsForOneAgent() {
	ctx := context.Background()
	first := suite.seedOrder()
	second := suite.seedOrder()
	a := suite.seedAgent("9876543210")

	handler := suite.assignHandler()
	orders := []*order.Order{first, second}
	results := make([]error, len(orders))

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i, o := range orders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewAssignAgentCommand(o.ID(), a.ID())
			if err != nil {
				results[i] = err
				return
			}
			<-start
			_, _, results[i] = handler.Handle(ctx, cmd)
		}()
	}
	close(start)
	wg.Wait()

	var wins, losses int
	var loser *order.Order
	for i, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, services.ErrAgentUnavailable), errors.Is(err, errs.ErrConflict):
			losses++
			loser = orders[i]
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, wins)
	suite.Equal(1, losses)
	suite.Require().NotNil(loser)

	stored, err := suite.factory.Create().OrderRepository().GetForUpdate(ctx, loser.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, stored.Status())
	suite.Nil(stored.AgentID())

	storedAgent, err := suite.factory.Create().AgentRepository().GetForUpdate(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal(agent.Assigned, storedAgent.Status())
}

// TestAssignAgent_ConcurrentRequestsForOneOrder sends the same pairing twice.
// The loser waits for the order lock, finds the order dispatched and fails.
func (suite *UnitOfWorkIntegrationTestSuite) TestAssignAgent_ConcurrentRequestsForOneOrder() {
	ctx := context.Background()
	o := suite.seedOrder()
	a := suite.seedAgent("9876543210")

	handler := suite.assignHandler()
	cmd, err := commands.NewAssignAgentCommand(o.ID(), a.ID())
	suite.Require().NoError(err)

	results := make([]error, 2)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, _, results[i] = handler.Handle(ctx, cmd)
		}()
	}
	close(start)
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, services.ErrAgentUnavailable), errors.Is(err, errs.ErrConflict):
			losses++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, wins)
	suite.Equal(1, losses)

	stored, err := suite.factory.Create().OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Dispatched, stored.Status())
	suite.Require().NotNil(stored.AgentID())
	suite.Equal(a.ID(), *stored.AgentID())

	storedAgent, err := suite.factory.Create().AgentRepository().GetForUpdate(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal(agent.Assigned, storedAgent.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) assignHandler() commands.AssignAgentCommandHandler {
	return commands.NewAssignAgentCommandHandler(
		uowFactory{factory: suite.factory},
		services.NewAssignmentMatcher(),
		silentNotifier{},
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) seedOrder() *order.Order {
	o := suite.newOrder()
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(context.Background(), o))
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) seedAgent(phone string) *agent.Agent {
	a := suite.newAvailableAgent(phone)
	suite.Require().NoError(suite.factory.Create().AgentRepository().Add(context.Background(), a))
	return a
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), 1, "Paneer Tikka", kernel.MustMoney("100.00"), 3, "")
	suite.Require().NoError(err)
	pricing, err := order.NewPricing(kernel.MustMoney("300.00"), kernel.MustMoney("15.00"), kernel.MustMoney("50.00"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), 42, 7, []order.Item{item}, pricing, "",
		suite.now.Add(45*time.Minute), suite.now)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newAvailableAgent(number string) *agent.Agent {
	phone, err := kernel.NewPhone(number)
	suite.Require().NoError(err)
	a, err := agent.NewAgent(kernel.NewUUID(), "Ravi Kumar", phone, nil, agent.Vehicle{}, suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(a.SetAvailability(agent.Available, suite.now))
	return a
}

type uowFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f uowFactory) Create() commands.UoW {
	return f.factory.Create()
}

type silentNotifier struct{}

func (silentNotifier) OrderPlaced(context.Context, *order.Order)                      {}
func (silentNotifier) OrderStatusChanged(context.Context, *order.Order, order.Status) {}
func (silentNotifier) AgentAssigned(context.Context, *order.Order, *agent.Agent)      {}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
