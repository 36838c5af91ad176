package http

import (
	"net/http"
	"strconv"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, _ := PrincipalFrom(ctx)

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lines := make([]services.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.OrderLine{
			MenuItemID:   item.MenuItemID,
			Quantity:     item.Quantity,
			Instructions: item.SpecialInstructions,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(principal.CustomerID(), req.DeliveryAddressID, req.DeliveryInstructions, lines)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(o))
}

// ListOrders handles GET /api/orders?page=&size=&status_filter=.
func (s *Server) ListOrders(ctx echo.Context) error {
	principal, _ := PrincipalFrom(ctx)

	page, size, err := pageParams(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var status *order.Status
	if raw := statusFilter(ctx); raw != "" {
		parsed, parseErr := order.ParseStatus(raw)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		status = &parsed
	}

	query, err := queries.NewListOrdersQuery(principal, page, size, status)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := OrderPageResponse{
		Orders: make([]OrderResponse, 0, len(result.Orders)),
		Total:  result.Total,
		Page:   result.Page,
		Size:   result.Size,
	}
	for _, summary := range result.Orders {
		response.Orders = append(response.Orders, orderFromSummary(summary))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	principal, _ := PrincipalFrom(ctx)

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(principal, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	detail, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDetail(detail))
}

// UpdateOrder handles PATCH /api/orders/:id.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	principal, _ := PrincipalFrom(ctx)

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var status *order.Status
	if req.Status != nil {
		parsed, parseErr := order.ParseStatus(*req.Status)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		status = &parsed
	}

	var agentID *kernel.UUID
	if req.DeliveryAgentID != nil {
		parsed, parseErr := kernel.UUIDFromString(*req.DeliveryAgentID)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		agentID = &parsed
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, principal, req.DeliveryInstructions, status, agentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.UpdateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// CancelOrder handles POST /api/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	return s.orderTransition(ctx, func(orderID kernel.UUID, principal customer.Principal) (*order.Order, error) {
		cmd, err := commands.NewCancelOrderCommand(orderID, principal)
		if err != nil {
			return nil, err
		}
		return s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	})
}

// ConfirmOrder handles POST /api/orders/:id/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	return s.orderTransition(ctx, func(orderID kernel.UUID, _ customer.Principal) (*order.Order, error) {
		cmd, err := commands.NewConfirmOrderCommand(orderID)
		if err != nil {
			return nil, err
		}
		return s.handlers.ConfirmOrder.Handle(ctx.Request().Context(), cmd)
	})
}

func (s *Server) orderTransition(
	ctx echo.Context,
	apply func(orderID kernel.UUID, principal customer.Principal) (*order.Order, error),
) error {
	principal, _ := PrincipalFrom(ctx)

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := apply(orderID, principal)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// pageParams reads page and size; absent values default to page 1 and the
// default size.
// statusFilter reads status_filter, falling back to status.
func statusFilter(ctx echo.Context) string {
	if raw := ctx.QueryParam("status_filter"); raw != "" {
		return raw
	}
	return ctx.QueryParam("status")
}

func pageParams(ctx echo.Context) (int, int, error) {
	page, size := 1, 0

	if raw := ctx.QueryParam("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, invalidParam("page", err)
		}
		page = parsed
	}
	if raw := ctx.QueryParam("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, invalidParam("size", err)
		}
		size = parsed
	}
	return page, size, nil
}
