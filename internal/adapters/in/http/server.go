// Package http exposes the order and delivery operations over a JSON API on echo.
package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateOrder          commands.CreateOrderCommandHandler
	ConfirmOrder         commands.ConfirmOrderCommandHandler
	CancelOrder          commands.CancelOrderCommandHandler
	UpdateOrder          commands.UpdateOrderCommandHandler
	AssignAgent          commands.AssignAgentCommandHandler
	UpdateDeliveryStatus commands.UpdateDeliveryStatusCommandHandler
	AbortDelivery        commands.AbortDeliveryCommandHandler
	CreateAgent          commands.CreateAgentCommandHandler
	UpdateAgent          commands.UpdateAgentCommandHandler
	UpdateAgentLocation  commands.UpdateAgentLocationCommandHandler
	UpdateAgentStatus    commands.UpdateAgentStatusCommandHandler

	ListOrders           queries.ListOrdersQueryHandler
	GetOrder             queries.GetOrderQueryHandler
	GetPendingDeliveries queries.GetPendingDeliveriesQueryHandler
	ListAgents           queries.ListAgentsQueryHandler
	GetAgent             queries.GetAgentQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	auth     Authenticator
	logger   *zap.Logger
}

func NewServer(handlers Handlers, auth Authenticator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		handlers: handlers,
		auth:     auth,
		logger:   logger.With(zap.String("component", "http")),
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api", s.auth.Middleware())

	orders := api.Group("/orders")
	orders.POST("", s.CreateOrder)
	orders.GET("", s.ListOrders)
	orders.GET("/:id", s.GetOrder)
	orders.PATCH("/:id", s.UpdateOrder)
	orders.POST("/:id/cancel", s.CancelOrder)
	orders.POST("/:id/confirm", s.ConfirmOrder, RequireAdmin)

	delivery := api.Group("/delivery", RequireAdmin)
	delivery.POST("/agents", s.CreateAgent)
	delivery.GET("/agents", s.ListAgents)
	delivery.GET("/agents/:id", s.GetAgent)
	delivery.PATCH("/agents/:id", s.UpdateAgent)
	delivery.POST("/agents/:id/location", s.UpdateAgentLocation)
	delivery.POST("/agents/:id/status", s.UpdateAgentStatus)
	delivery.POST("/assign", s.AssignAgent)
	delivery.GET("/orders/pending", s.GetPendingDeliveries)
	delivery.POST("/orders/:id/status", s.UpdateDeliveryStatus)
	delivery.POST("/orders/:id/abort", s.AbortDelivery)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}
