package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand advances an order on behalf of the delivery desk
// and optionally refreshes its estimated delivery time.
type UpdateDeliveryStatusCommand struct {
	orderID               kernel.UUID
	status                order.Status
	estimatedDeliveryTime *time.Time

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryStatusCommand(
	orderID kernel.UUID,
	status order.Status,
	estimatedDeliveryTime *time.Time,
) (UpdateDeliveryStatusCommand, error) {
	problems := []error{orderID.Validate(), status.Validate()}
	if estimatedDeliveryTime != nil && estimatedDeliveryTime.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("estimated_delivery_time"))
	}
	if err := errors.Join(problems...); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return UpdateDeliveryStatusCommand{
		orderID:               orderID,
		status:                status,
		estimatedDeliveryTime: estimatedDeliveryTime,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

func (c UpdateDeliveryStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateDeliveryStatusCommand) Status() order.Status {
	return c.status
}

// EstimatedDeliveryTime is nil when the estimate should stay as it is.
func (c UpdateDeliveryStatusCommand) EstimatedDeliveryTime() *time.Time {
	return c.estimatedDeliveryTime
}
