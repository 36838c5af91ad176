package cmd

import (
	"marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/addressrepo"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/customerrepo"
	"marketplace/internal/adapters/out/redis/catalogcache"
	"marketplace/internal/core/application/notifications"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	catalog    ports.MenuCatalog
	calculator services.PricingCalculator
	notifier   commands.Notifier
	logger     *zap.Logger
}

// NewCompositionRoot wires the adapters. redisClient may be nil, in which case
// the catalog is read straight from the database.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	gateway ports.NotificationGateway,
	logger *zap.Logger,
) (CompositionRoot, error) {
	policy, err := config.PricingPolicy()
	if err != nil {
		return CompositionRoot{}, err
	}
	calculator, err := services.NewPricingCalculator(policy)
	if err != nil {
		return CompositionRoot{}, err
	}

	var catalog ports.MenuCatalog = catalogrepo.NewGormMenuCatalog(gormDB)
	if redisClient != nil {
		catalog = catalogcache.NewCatalog(redisClient, catalog, config.CatalogCacheTTL, logger)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    catalog,
		calculator: calculator,
		notifier: notifications.NewDispatcher(
			gateway,
			customerrepo.NewGormCustomerDirectory(gormDB),
			config.NotificationTimeout,
			logger,
		),
		logger: logger,
	}, nil
}

func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(
		c.CreateHandlers(),
		http.NewAuthenticator(c.config.JWTSecret, c.config.JWTIssuer),
		c.logger,
	)
}

func (c *CompositionRoot) CreateHandlers() http.Handlers {
	matcher := services.NewAssignmentMatcher()

	return http.Handlers{
		CreateOrder: commands.NewCreateOrderCommandHandler(
			c.orderUoWFactory(),
			c.catalog,
			addressrepo.NewGormAddressStore(c.gormDB),
			c.calculator,
			c.notifier,
			c.config.DefaultDeliveryETA,
		),
		ConfirmOrder:         commands.NewConfirmOrderCommandHandler(c.orderUoWFactory(), c.notifier),
		CancelOrder:          commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.notifier),
		UpdateOrder:          commands.NewUpdateOrderCommandHandler(c.uowFactoryFunc(), matcher, c.notifier),
		AssignAgent:          commands.NewAssignAgentCommandHandler(c.uowFactoryFunc(), matcher, c.notifier),
		UpdateDeliveryStatus: commands.NewUpdateDeliveryStatusCommandHandler(c.uowFactoryFunc(), c.notifier),
		AbortDelivery:        commands.NewAbortDeliveryCommandHandler(c.uowFactoryFunc(), c.notifier),
		CreateAgent:          commands.NewCreateAgentCommandHandler(c.agentUoWFactory()),
		UpdateAgent:          commands.NewUpdateAgentCommandHandler(c.agentUoWFactory()),
		UpdateAgentLocation:  commands.NewUpdateAgentLocationCommandHandler(c.agentUoWFactory()),
		UpdateAgentStatus:    commands.NewUpdateAgentStatusCommandHandler(c.agentUoWFactory()),

		ListOrders:           queries.NewListOrdersQueryHandler(c.gormDB),
		GetOrder:             queries.NewGetOrderQueryHandler(c.gormDB),
		GetPendingDeliveries: queries.NewGetPendingDeliveriesQueryHandler(c.gormDB),
		ListAgents:           queries.NewListAgentsQueryHandler(c.gormDB),
		GetAgent:             queries.NewGetAgentQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) agentUoWFactory() commands.AgentUoWFactory {
	return FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryFunc() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
