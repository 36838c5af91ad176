package http

import (
	"fmt"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// AssignAgent handles POST /api/delivery/assign.
func (s *Server) AssignAgent(ctx echo.Context) error {
	var req AssignRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAssignAgentCommand(orderID, agentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, a, err := s.handlers.AssignAgent.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AssignResponse{
		Message:     fmt.Sprintf("Order %s assigned to %s", o.Number(), a.Name()),
		OrderID:     o.ID().String(),
		AgentID:     a.ID().String(),
		OrderStatus: o.Status().String(),
	})
}

// UpdateDeliveryStatus handles POST /api/delivery/orders/:id/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var req DeliveryStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(orderID, status, req.EstimatedDeliveryTime)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.UpdateDeliveryStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// AbortDelivery handles POST /api/delivery/orders/:id/abort.
func (s *Server) AbortDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAbortDeliveryCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, _, err := s.handlers.AbortDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// GetPendingDeliveries handles GET /api/delivery/orders/pending.
func (s *Server) GetPendingDeliveries(ctx echo.Context) error {
	pending, err := s.handlers.GetPendingDeliveries.Handle(ctx.Request().Context(), queries.NewGetPendingDeliveriesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]PendingDeliveryResponse, len(pending))
	for i, p := range pending {
		response[i] = PendingDeliveryResponse{
			ID:                    p.ID.String(),
			OrderNumber:           p.OrderNumber,
			Status:                p.Status.String(),
			TotalAmount:           p.TotalAmount.String(),
			CreatedAt:             p.CreatedAt,
			EstimatedDeliveryTime: p.EstimatedDeliveryTime,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateAgent handles POST /api/delivery/agents.
func (s *Server) CreateAgent(ctx echo.Context) error {
	var req CreateAgentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateAgentCommand(req.Name, req.Phone, req.Email, req.VehicleType, req.VehicleNumber)
	if err != nil {
		return s.fail(ctx, err)
	}

	a, err := s.handlers.CreateAgent.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, agentFromDomain(a))
}

// ListAgents handles GET /api/delivery/agents?page=&size=&status_filter=.
func (s *Server) ListAgents(ctx echo.Context) error {
	page, size, err := pageParams(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var status *agent.Status
	if raw := statusFilter(ctx); raw != "" {
		parsed, parseErr := agent.ParseStatus(raw)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		status = &parsed
	}

	query, err := queries.NewListAgentsQuery(page, size, status)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.ListAgents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := AgentPageResponse{
		Agents: make([]AgentResponse, 0, len(result.Agents)),
		Total:  result.Total,
		Page:   result.Page,
		Size:   result.Size,
	}
	for _, view := range result.Agents {
		response.Agents = append(response.Agents, agentFromView(view))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetAgent handles GET /api/delivery/agents/:id.
func (s *Server) GetAgent(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetAgentQuery(agentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetAgent.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, agentFromView(view))
}

// UpdateAgent handles PATCH /api/delivery/agents/:id.
func (s *Server) UpdateAgent(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var req UpdateAgentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateAgentCommand(agentID, commands.AgentChanges{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Latitude:      req.CurrentLatitude,
		Longitude:     req.CurrentLongitude,
		VehicleType:   req.VehicleType,
		VehicleNumber: req.VehicleNumber,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	a, err := s.handlers.UpdateAgent.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, agentFromDomain(a))
}

// UpdateAgentLocation handles POST /api/delivery/agents/:id/location.
func (s *Server) UpdateAgentLocation(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var req LocationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if req.Latitude == nil || req.Longitude == nil {
		return s.fail(ctx, errs.NewValueIsRequiredError("latitude and longitude"))
	}

	cmd, err := commands.NewUpdateAgentLocationCommand(agentID, *req.Latitude, *req.Longitude)
	if err != nil {
		return s.fail(ctx, err)
	}

	a, err := s.handlers.UpdateAgentLocation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, agentFromDomain(a))
}

// UpdateAgentStatus handles POST /api/delivery/agents/:id/status.
func (s *Server) UpdateAgentStatus(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var req AgentStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := agent.ParseStatus(req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateAgentStatusCommand(agentID, status)
	if err != nil {
		return s.fail(ctx, err)
	}

	a, err := s.handlers.UpdateAgentStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, agentFromDomain(a))
}
