package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

type OrderItemRequest struct {
	MenuItemID          int64  `json:"menu_item_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

type CreateOrderRequest struct {
	DeliveryAddressID    int64              `json:"delivery_address_id"`
	DeliveryInstructions string             `json:"delivery_instructions"`
	Items                []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest carries optional fields; absent fields stay unchanged.
type UpdateOrderRequest struct {
	DeliveryInstructions *string `json:"delivery_instructions"`
	Status               *string `json:"status"`
	DeliveryAgentID      *string `json:"delivery_agent_id"`
}

type AssignRequest struct {
	OrderID string `json:"order_id"`
	AgentID string `json:"agent_id"`
}

type DeliveryStatusRequest struct {
	Status                string     `json:"status"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time"`
}

type CreateAgentRequest struct {
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         *string `json:"email"`
	VehicleType   string  `json:"vehicle_type"`
	VehicleNumber string  `json:"vehicle_number"`
}

type UpdateAgentRequest struct {
	Name             *string  `json:"name"`
	Phone            *string  `json:"phone"`
	Email            *string  `json:"email"`
	CurrentLatitude  *float64 `json:"current_latitude"`
	CurrentLongitude *float64 `json:"current_longitude"`
	VehicleType      *string  `json:"vehicle_type"`
	VehicleNumber    *string  `json:"vehicle_number"`
	IsActive         *bool    `json:"is_active"`
}

type LocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type AgentStatusRequest struct {
	Status string `json:"status"`
}

type OrderItemResponse struct {
	ID                  string `json:"id"`
	MenuItemID          int64  `json:"menu_item_id"`
	ItemName            string `json:"item_name"`
	ItemPrice           string `json:"item_price"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

type OrderResponse struct {
	ID                    string              `json:"id"`
	OrderNumber           string              `json:"order_number"`
	CustomerID            int64               `json:"customer_id"`
	DeliveryAddressID     int64               `json:"delivery_address_id"`
	DeliveryAgentID       *string             `json:"delivery_agent_id"`
	Status                string              `json:"status"`
	Subtotal              string              `json:"subtotal"`
	TaxAmount             string              `json:"tax_amount"`
	DeliveryFee           string              `json:"delivery_fee"`
	TotalAmount           string              `json:"total_amount"`
	DeliveryInstructions  string              `json:"delivery_instructions"`
	EstimatedDeliveryTime *time.Time          `json:"estimated_delivery_time"`
	ActualDeliveryTime    *time.Time          `json:"actual_delivery_time"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
	Items                 []OrderItemResponse `json:"items,omitempty"`
}

type OrderPageResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Size   int             `json:"size"`
}

type AgentResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Phone              string     `json:"phone"`
	Email              *string    `json:"email"`
	Status             string     `json:"status"`
	CurrentLatitude    *float64   `json:"current_latitude"`
	CurrentLongitude   *float64   `json:"current_longitude"`
	LastLocationUpdate *time.Time `json:"last_location_update"`
	IsActive           bool       `json:"is_active"`
	VehicleType        string     `json:"vehicle_type"`
	VehicleNumber      string     `json:"vehicle_number"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type AgentPageResponse struct {
	Agents []AgentResponse `json:"agents"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Size   int             `json:"size"`
}

type AssignResponse struct {
	Message     string `json:"message"`
	OrderID     string `json:"order_id"`
	AgentID     string `json:"agent_id"`
	OrderStatus string `json:"order_status"`
}

type PendingDeliveryResponse struct {
	ID                    string     `json:"id"`
	OrderNumber           string     `json:"order_number"`
	Status                string     `json:"status"`
	TotalAmount           string     `json:"total_amount"`
	CreatedAt             time.Time  `json:"created_at"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time"`
}

func orderFromDomain(o *order.Order) OrderResponse {
	p := o.Pricing()
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{
			ID:                  item.ID().String(),
			MenuItemID:          item.MenuItemID(),
			ItemName:            item.Name(),
			ItemPrice:           item.Price().String(),
			Quantity:            item.Quantity(),
			SpecialInstructions: item.Instructions(),
		})
	}

	return OrderResponse{
		ID:                    o.ID().String(),
		OrderNumber:           o.Number(),
		CustomerID:            o.CustomerID(),
		DeliveryAddressID:     o.AddressID(),
		DeliveryAgentID:       uuidString(o.AgentID()),
		Status:                o.Status().String(),
		Subtotal:              p.Subtotal().String(),
		TaxAmount:             p.Tax().String(),
		DeliveryFee:           p.DeliveryFee().String(),
		TotalAmount:           p.Total().String(),
		DeliveryInstructions:  o.Instructions(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		ActualDeliveryTime:    o.ActualDeliveryTime(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
		Items:                 items,
	}
}

func orderFromSummary(s queries.OrderSummary) OrderResponse {
	return OrderResponse{
		ID:                    s.ID.String(),
		OrderNumber:           s.OrderNumber,
		CustomerID:            s.CustomerID,
		DeliveryAddressID:     s.DeliveryAddressID,
		DeliveryAgentID:       uuidString(s.DeliveryAgentID),
		Status:                s.Status.String(),
		Subtotal:              s.Subtotal.String(),
		TaxAmount:             s.TaxAmount.String(),
		DeliveryFee:           s.DeliveryFee.String(),
		TotalAmount:           s.TotalAmount.String(),
		DeliveryInstructions:  s.DeliveryInstructions,
		EstimatedDeliveryTime: s.EstimatedDeliveryTime,
		ActualDeliveryTime:    s.ActualDeliveryTime,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func orderFromDetail(d queries.GetOrderQueryResponse) OrderResponse {
	resp := orderFromSummary(d.OrderSummary)
	resp.Items = make([]OrderItemResponse, 0, len(d.Items))
	for _, item := range d.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:                  item.ID.String(),
			MenuItemID:          item.MenuItemID,
			ItemName:            item.ItemName,
			ItemPrice:           item.ItemPrice.String(),
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		})
	}
	return resp
}

func agentFromDomain(a *agent.Agent) AgentResponse {
	resp := AgentResponse{
		ID:                 a.ID().String(),
		Name:               a.Name(),
		Phone:              a.Phone().String(),
		Status:             a.Status().String(),
		LastLocationUpdate: a.LastLocationUpdate(),
		IsActive:           a.IsActive(),
		VehicleType:        a.Vehicle().Type(),
		VehicleNumber:      a.Vehicle().Number(),
		CreatedAt:          a.CreatedAt(),
		UpdatedAt:          a.UpdatedAt(),
	}
	if email := a.Email(); email != nil {
		value := email.String()
		resp.Email = &value
	}
	if location := a.Location(); location != nil {
		lat, lng := location.Latitude(), location.Longitude()
		resp.CurrentLatitude = &lat
		resp.CurrentLongitude = &lng
	}
	return resp
}

func agentFromView(v queries.AgentView) AgentResponse {
	return AgentResponse{
		ID:                 v.ID.String(),
		Name:               v.Name,
		Phone:              v.Phone,
		Email:              v.Email,
		Status:             v.Status.String(),
		CurrentLatitude:    v.Latitude,
		CurrentLongitude:   v.Longitude,
		LastLocationUpdate: v.LastLocationUpdate,
		IsActive:           v.IsActive,
		VehicleType:        v.VehicleType,
		VehicleNumber:      v.VehicleNumber,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	value := id.String()
	return &value
}
