package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels a Pending or Confirmed order. Dispatched
// and closed orders fail with errs.ErrInvalidTransition and stay unchanged.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, notifier Notifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = ensureVisible(o, cmd.Requester()); err != nil {
		return nil, err
	}

	previous := o.Status()
	if err = o.Cancel(time.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.OrderStatusChanged(ctx, o, previous)
	return o, nil
}
