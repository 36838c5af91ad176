package queries

import (
	"context"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderSummaryColumns = `
	id,
	order_number,
	customer_id,
	delivery_address_id,
	delivery_agent_id,
	status,
	subtotal,
	tax_amount,
	delivery_fee,
	total_amount,
	delivery_instructions,
	estimated_delivery_time,
	actual_delivery_time,
	created_at,
	updated_at`

// ListOrdersQueryHandler reads order pages newest first. Orders created in the
// same instant are ordered by id, so paging is deterministic.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	var conditions []string
	var args []any
	if requester := query.Requester(); !requester.IsAdmin() {
		conditions = append(conditions, "customer_id = ?")
		args = append(args, requester.CustomerID())
	}
	if status := query.Status(); status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, int(*status))
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	db := h.db.WithContext(ctx)
	pagination := query.Pagination()
	response := ListOrdersQueryResponse{
		Orders: make([]OrderSummary, 0),
		Page:   pagination.Page(),
		Size:   pagination.Size(),
	}

	if err := db.Raw(`SELECT COUNT(*) FROM orders `+where, args...).Scan(&response.Total).Error; err != nil {
		return ListOrdersQueryResponse{}, err
	}

	rows, err := db.Raw(`
		SELECT `+orderSummaryColumns+`
		FROM orders
		`+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, append(args, pagination.Size(), pagination.Offset())...).Rows()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		summary, scanErr := scanOrderSummary(rows)
		if scanErr != nil {
			return ListOrdersQueryResponse{}, scanErr
		}
		response.Orders = append(response.Orders, summary)
	}

	if err = rows.Err(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return response, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderSummary(rows rowScanner) (OrderSummary, error) {
	var (
		summary                           OrderSummary
		id                                uuid.UUID
		agentID                           uuid.NullUUID
		status                            int
		subtotal, tax, fee, total         decimal.Decimal
		estimatedDelivery, actualDelivery *time.Time
		createdAt, updatedAt              time.Time
	)

	err := rows.Scan(
		&id,
		&summary.OrderNumber,
		&summary.CustomerID,
		&summary.DeliveryAddressID,
		&agentID,
		&status,
		&subtotal,
		&tax,
		&fee,
		&total,
		&summary.DeliveryInstructions,
		&estimatedDelivery,
		&actualDelivery,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return OrderSummary{}, err
	}

	if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderSummary{}, err
	}
	if agentID.Valid {
		linked, linkErr := kernel.UUIDFromBytes(agentID.UUID[:])
		if linkErr != nil {
			return OrderSummary{}, linkErr
		}
		summary.DeliveryAgentID = &linked
	}

	summary.Status = order.Status(status)
	if summary.Subtotal, err = kernel.NewMoney(subtotal); err != nil {
		return OrderSummary{}, err
	}
	if summary.TaxAmount, err = kernel.NewMoney(tax); err != nil {
		return OrderSummary{}, err
	}
	if summary.DeliveryFee, err = kernel.NewMoney(fee); err != nil {
		return OrderSummary{}, err
	}
	if summary.TotalAmount, err = kernel.NewMoney(total); err != nil {
		return OrderSummary{}, err
	}

	summary.EstimatedDeliveryTime = utc(estimatedDelivery)
	summary.ActualDeliveryTime = utc(actualDelivery)
	summary.CreatedAt = createdAt.UTC()
	summary.UpdatedAt = updatedAt.UTC()
	return summary, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
