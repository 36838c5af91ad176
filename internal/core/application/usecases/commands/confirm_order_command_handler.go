package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
)

// ConfirmOrderCommandHandler moves a Pending order to Confirmed.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
}

func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory, notifier Notifier) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (*order.Order, error) {
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

	previous := o.Status()
	if err = o.Confirm(time.Now()); err != nil {
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
