package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetPendingDeliveriesQueryHandler returns the triage list newest first, ties
// broken by id.
type GetPendingDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingDeliveriesQueryHandler(db *gorm.DB) GetPendingDeliveriesQueryHandler {
	return GetPendingDeliveriesQueryHandler{db: db}
}

func (h GetPendingDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetPendingDeliveriesQuery,
) ([]GetPendingDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]GetPendingDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			total_amount,
			created_at,
			estimated_delivery_time
		FROM orders
		WHERE status IN (?, ?) AND delivery_agent_id IS NULL
		ORDER BY created_at DESC, id DESC
	`, int(order.Pending), int(order.Confirmed)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingDeliveriesQueryResponse
		var id uuid.UUID
		var status int
		var total decimal.Decimal
		var eta *time.Time

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&status,
			&total,
			&resp.CreatedAt,
			&eta,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.TotalAmount, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		resp.Status = order.Status(status)
		resp.CreatedAt = resp.CreatedAt.UTC()
		resp.EstimatedDeliveryTime = utc(eta)
		pending = append(pending, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}
