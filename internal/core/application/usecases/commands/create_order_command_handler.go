package commands

import (
	"context"
	"strconv"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// DefaultDeliveryETA is added to the placement time for the first delivery estimate.
const DefaultDeliveryETA = 45 * time.Minute

// CreateOrderCommandHandler prices the requested lines against the catalog and
// persists a Pending order with its item snapshot.
//
// The address check and the catalog lookup happen before the transaction is
// opened; neither holds a row lock.
type CreateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	catalog     ports.MenuCatalog
	addresses   ports.AddressStore
	calculator  services.PricingCalculator
	notifier    Notifier
	deliveryETA time.Duration
}

// NewCreateOrderCommandHandler creates the handler. A non-positive deliveryETA
// falls back to DefaultDeliveryETA.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.MenuCatalog,
	addresses ports.AddressStore,
	calculator services.PricingCalculator,
	notifier Notifier,
	deliveryETA time.Duration,
) CreateOrderCommandHandler {
	if deliveryETA <= 0 {
		deliveryETA = DefaultDeliveryETA
	}
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		catalog:     catalog,
		addresses:   addresses,
		calculator:  calculator,
		notifier:    notifier,
		deliveryETA: deliveryETA,
	}
}

// Handle returns the persisted order. Errors of the catalog are passed through
// and wrap ports.ErrCatalogUnavailable when the catalog could not be reached.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	owned, err := h.addresses.BelongsTo(ctx, cmd.CustomerID(), cmd.AddressID())
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, errs.NewObjectNotFoundError("delivery_address", strconv.FormatInt(cmd.AddressID(), 10))
	}

	entries, err := h.catalog.Lookup(ctx, cmd.MenuItemIDs())
	if err != nil {
		return nil, err
	}

	quote, err := h.calculator.Quote(cmd.Lines(), entries)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	placed, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.CustomerID(),
		cmd.AddressID(),
		quote.Items,
		quote.Pricing,
		cmd.Instructions(),
		now.Add(h.deliveryETA),
		now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.OrderPlaced(ctx, placed)
	return placed, nil
}
