package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order for a customer.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(principal.CustomerID(), 12, "leave at the gate", []services.OrderLine{
//	    {MenuItemID: 1, Quantity: 2},
//	    {MenuItemID: 2, Quantity: 1, Instructions: "no onions"},
//	})
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID   int64
	addressID    int64
	instructions string
	lines        []services.OrderLine

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	customerID int64,
	addressID int64,
	instructions string,
	lines []services.OrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setAddressID(addressID),
		cmd.setInstructions(instructions),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() int64 {
	return c.customerID
}

func (c CreateOrderCommand) AddressID() int64 {
	return c.addressID
}

func (c CreateOrderCommand) Instructions() string {
	return c.instructions
}

// Lines returns a copy of the requested lines in request order.
func (c CreateOrderCommand) Lines() []services.OrderLine {
	lines := make([]services.OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// MenuItemIDs returns the distinct menu item ids of the lines.
func (c CreateOrderCommand) MenuItemIDs() []int64 {
	seen := make(map[int64]struct{}, len(c.lines))
	ids := make([]int64, 0, len(c.lines))
	for _, line := range c.lines {
		if _, ok := seen[line.MenuItemID]; ok {
			continue
		}
		seen[line.MenuItemID] = struct{}{}
		ids = append(ids, line.MenuItemID)
	}
	return ids
}

func (c *CreateOrderCommand) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("customer_id", fmt.Errorf("%d is not a positive id", customerID))
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setAddressID(addressID int64) error {
	if addressID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery_address_id", fmt.Errorf("%d is not a positive id", addressID))
	}
	c.addressID = addressID
	return nil
}

func (c *CreateOrderCommand) setInstructions(instructions string) error {
	if len(instructions) > order.MaxInstructionsLength {
		return errs.NewValueIsOutOfRangeError(
			"delivery_instructions length", len(instructions), 0, order.MaxInstructionsLength)
	}
	c.instructions = instructions
	return nil
}

func (c *CreateOrderCommand) setLines(lines []services.OrderLine) error {
	if len(lines) == 0 {
		return services.ErrNoOrderLines
	}

	var problems []error
	for i, line := range lines {
		if line.MenuItemID <= 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].menu_item_id", i), fmt.Errorf("%d is not a positive id", line.MenuItemID)))
		}
		if line.Quantity < 1 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i), fmt.Errorf("%d is less than 1", line.Quantity)))
		}
		if len(line.Instructions) > order.MaxInstructionsLength {
			problems = append(problems, errs.NewValueIsOutOfRangeError(
				fmt.Sprintf("items[%d].special_instructions length", i),
				len(line.Instructions), 0, order.MaxInstructionsLength))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.lines = make([]services.OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
