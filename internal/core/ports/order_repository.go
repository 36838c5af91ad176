package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted; cancellation is a status.
type OrderRepository interface {
	// Add persists a new order together with its item snapshot. A duplicate id
	// or order number yields errs.ErrConflict.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the mutable columns of an order. It compares the stored
	// version with aggregate.Version() and fails with errs.ErrConflict when
	// another transaction got there first.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetForUpdate retrieves an order with its items and locks the order row
	// until the surrounding transaction ends. Missing orders yield
	// errs.ErrObjectNotFound.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
