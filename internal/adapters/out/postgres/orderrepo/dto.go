// Package orderrepo persists order aggregates and their item snapshots.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the orders table.
type OrderDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber           string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID            int64           `gorm:"not null;index"`
	DeliveryAddressID     int64           `gorm:"not null"`
	DeliveryAgentID       *uuid.UUID      `gorm:"type:uuid;index"`
	Status                int             `gorm:"type:smallint;not null;index"`
	Subtotal              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TaxAmount             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryFee           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalAmount           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryInstructions  string          `gorm:"type:varchar(500);not null;default:''"`
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	Version               int64          `gorm:"not null;default:1"`
	CreatedAt             time.Time      `gorm:"not null;index"`
	UpdatedAt             time.Time      `gorm:"not null"`
	Items                 []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of the order_items table. Position keeps the
// placement order of the lines.
type OrderItemDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position            int             `gorm:"not null"`
	MenuItemID          int64           `gorm:"not null"`
	ItemName            string          `gorm:"type:varchar(255);not null"`
	ItemPrice           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity            int             `gorm:"not null"`
	SpecialInstructions string          `gorm:"type:varchar(500);not null;default:''"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := o.AgentID(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	orderID := o.ID().Bytes()
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:                  item.ID().Bytes(),
			OrderID:             orderID,
			Position:            i,
			MenuItemID:          item.MenuItemID(),
			ItemName:            item.Name(),
			ItemPrice:           item.Price().Decimal(),
			Quantity:            item.Quantity(),
			SpecialInstructions: item.Instructions(),
		})
	}

	p := o.Pricing()
	return OrderDTO{
		ID:                    orderID,
		OrderNumber:           o.Number(),
		CustomerID:            o.CustomerID(),
		DeliveryAddressID:     o.AddressID(),
		DeliveryAgentID:       agentID,
		Status:                int(o.Status()),
		Subtotal:              p.Subtotal().Decimal(),
		TaxAmount:             p.Tax().Decimal(),
		DeliveryFee:           p.DeliveryFee().Decimal(),
		TotalAmount:           p.Total().Decimal(),
		DeliveryInstructions:  o.Instructions(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		ActualDeliveryTime:    o.ActualDeliveryTime(),
		Version:               o.Version(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
		Items:                 items,
	}
}

// mutableColumns lists what Update may change. The item snapshot, pricing,
// number and owner are written once by Add. A map is used so that nil agent
// ids and empty instructions are written too.
func mutableColumns(dto OrderDTO) map[string]any {
	return map[string]any{
		"delivery_agent_id":       dto.DeliveryAgentID,
		"status":                  dto.Status,
		"delivery_instructions":   dto.DeliveryInstructions,
		"estimated_delivery_time": dto.EstimatedDeliveryTime,
		"actual_delivery_time":    dto.ActualDeliveryTime,
		"updated_at":              dto.UpdatedAt,
		"version":                 dto.Version + 1,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.DeliveryAgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.DeliveryAgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &aID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	pricing, err := pricingToDomain(dto)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:                    id,
		Number:                dto.OrderNumber,
		CustomerID:            dto.CustomerID,
		AddressID:             dto.DeliveryAddressID,
		AgentID:               agentID,
		Status:                order.Status(dto.Status),
		Pricing:               pricing,
		Items:                 items,
		Instructions:          dto.DeliveryInstructions,
		EstimatedDeliveryTime: utc(dto.EstimatedDeliveryTime),
		ActualDeliveryTime:    utc(dto.ActualDeliveryTime),
		CreatedAt:             dto.CreatedAt.UTC(),
		UpdatedAt:             dto.UpdatedAt.UTC(),
		Version:               dto.Version,
	})
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Item{}, err
	}
	price, err := kernel.NewMoney(dto.ItemPrice)
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(id, dto.MenuItemID, dto.ItemName, price, dto.Quantity, dto.SpecialInstructions)
}

func pricingToDomain(dto OrderDTO) (order.Pricing, error) {
	amounts := make([]kernel.Money, 0, 4)
	for _, amount := range []decimal.Decimal{dto.Subtotal, dto.TaxAmount, dto.DeliveryFee, dto.TotalAmount} {
		m, err := kernel.NewMoney(amount)
		if err != nil {
			return order.Pricing{}, err
		}
		amounts = append(amounts, m)
	}
	return order.RestorePricing(amounts[0], amounts[1], amounts[2], amounts[3])
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
