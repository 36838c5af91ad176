package ports

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/menu"
)

// ErrCatalogUnavailable is wrapped by MenuCatalog implementations when the
// catalog cannot be reached. The engine does not retry.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// MenuCatalog serves price and display name per menu item.
type MenuCatalog interface {
	// Lookup returns the entries found for ids. Unknown ids are simply absent
	// from the result.
	Lookup(ctx context.Context, ids []int64) (map[int64]menu.Item, error)
}

// AddressStore answers whether a delivery address belongs to a customer.
type AddressStore interface {
	BelongsTo(ctx context.Context, customerID int64, addressID int64) (bool, error)
}

// CustomerDirectory resolves the phone number notifications are sent to.
type CustomerDirectory interface {
	// PhoneNumber returns errs.ErrObjectNotFound for unknown customers.
	PhoneNumber(ctx context.Context, customerID int64) (string, error)
}

// NotificationGateway delivers a text message to a phone number. It gives no
// retry guarantee.
type NotificationGateway interface {
	Send(ctx context.Context, phone string, message string) error
}
