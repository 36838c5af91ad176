package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrOrderHasNoItems = errs.NewValueIsRequiredError("order_items")
	ErrOrderIsClosed   = errors.New("order is closed")
)

const entityName = "order"

// Order is the aggregate root of a customer purchase. It owns its item
// snapshot and price breakdown, and it guards every lifecycle move with the
// Status transition table.
//
// Invariants:
//   - the pricing total equals subtotal + tax + delivery fee and the subtotal
//     equals the sum of the item line totals
//   - the agent link is set exactly while the status is Dispatched or Delivered
//   - actual delivery time is set exactly when the status is Delivered
type Order struct {
	id                    kernel.UUID
	number                string
	customerID            int64
	addressID             int64
	agentID               *kernel.UUID
	status                Status
	pricing               Pricing
	items                 []Item
	instructions          string
	estimatedDeliveryTime *time.Time
	actualDeliveryTime    *time.Time
	createdAt             time.Time
	updatedAt             time.Time
	version               int64

	isConstructed bool
}

// NewOrder places a Pending order for customerID.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, addressID, items, pricing,
//	    "ring the bell", time.Now().Add(45*time.Minute), time.Now())
func NewOrder(
	id kernel.UUID,
	customerID int64,
	addressID int64,
	items []Item,
	pricing Pricing,
	instructions string,
	estimatedDeliveryTime time.Time,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setAddressID(addressID),
		o.setItems(items),
		o.setPricing(pricing),
		o.setInstructions(instructions),
	); err != nil {
		return nil, err
	}

	o.number = NewNumber(id, now)
	eta := estimatedDeliveryTime.UTC()
	o.estimatedDeliveryTime = &eta

	return o, nil
}

// State carries a persisted order back into the domain.
type State struct {
	ID                    kernel.UUID
	Number                string
	CustomerID            int64
	AddressID             int64
	AgentID               *kernel.UUID
	Status                Status
	Pricing               Pricing
	Items                 []Item
	Instructions          string
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	Version               int64
}

// RestoreOrder rebuilds an order from storage and checks its invariants.
func RestoreOrder(state State) (*Order, error) {
	o := &Order{
		status:                state.Status,
		number:                state.Number,
		agentID:               state.AgentID,
		estimatedDeliveryTime: state.EstimatedDeliveryTime,
		actualDeliveryTime:    state.ActualDeliveryTime,
		createdAt:             state.CreatedAt,
		updatedAt:             state.UpdatedAt,
		version:               state.Version,
		isConstructed:         true,
	}

	if err := errors.Join(
		o.setID(state.ID),
		o.setCustomerID(state.CustomerID),
		o.setAddressID(state.AddressID),
		o.setItems(state.Items),
		o.setPricing(state.Pricing),
		o.setInstructions(state.Instructions),
		state.Status.Validate(),
		o.validateAgentLink(),
	); err != nil {
		return nil, err
	}
	if o.number == "" {
		return nil, errs.NewValueIsRequiredError("order_number")
	}

	return o, nil
}

// Validate ensures the order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) CustomerID() int64 {
	return o.customerID
}

func (o *Order) AddressID() int64 {
	return o.addressID
}

// AgentID returns the delivery agent linked to the order, or nil.
func (o *Order) AgentID() *kernel.UUID {
	return o.agentID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Pricing() Pricing {
	return o.pricing
}

// Items returns a copy of the item snapshot in placement order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Instructions() string {
	return o.instructions
}

func (o *Order) EstimatedDeliveryTime() *time.Time {
	return o.estimatedDeliveryTime
}

func (o *Order) ActualDeliveryTime() *time.Time {
	return o.actualDeliveryTime
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version is the optimistic concurrency token of the stored row.
func (o *Order) Version() int64 {
	return o.version
}

// IsOwnedBy reports whether the order belongs to the given customer.
func (o *Order) IsOwnedBy(customerID int64) bool {
	return o.customerID == customerID
}

// Confirm moves a Pending order to Confirmed. The Dispatched to Confirmed
// edge belongs to AbortDelivery.
func (o *Order) Confirm(now time.Time) error {
	if o.status != Pending {
		return o.transitionError(Confirmed, nil)
	}
	if err := o.transition(Confirmed); err != nil {
		return err
	}
	o.touch(now)
	return nil
}

// Dispatch links the order to an agent and moves it to Dispatched.
// Only the assignment matcher calls it, after it checked the agent.
func (o *Order) Dispatch(agentID kernel.UUID, now time.Time) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if !o.status.IsAssignable() {
		return o.transitionError(Dispatched, nil)
	}
	if err := o.transition(Dispatched); err != nil {
		return err
	}

	o.agentID = &agentID
	o.touch(now)
	return nil
}

// Deliver completes a Dispatched order and stamps the actual delivery time.
func (o *Order) Deliver(now time.Time) error {
	if err := o.transition(Delivered); err != nil {
		return err
	}

	delivered := now.UTC()
	o.actualDeliveryTime = &delivered
	o.touch(now)
	return nil
}

// Cancel withdraws an order that has not been dispatched yet.
func (o *Order) Cancel(now time.Time) error {
	if err := o.transition(Cancelled); err != nil {
		return err
	}
	o.touch(now)
	return nil
}

// AbortDelivery unlinks the agent of a Dispatched order and puts the order
// back to Confirmed so it can be assigned again. It returns the released agent id.
func (o *Order) AbortDelivery(now time.Time) (kernel.UUID, error) {
	if o.status != Dispatched || o.agentID == nil {
		return kernel.UUID{}, o.transitionError(Confirmed, errors.New("only dispatched orders can be aborted"))
	}
	if err := o.transition(Confirmed); err != nil {
		return kernel.UUID{}, err
	}

	released := *o.agentID
	o.agentID = nil
	o.touch(now)
	return released, nil
}

// ChangeInstructions replaces the delivery instructions of an open order.
func (o *Order) ChangeInstructions(instructions string, now time.Time) error {
	if o.status.IsTerminal() {
		return o.transitionError(o.status, ErrOrderIsClosed)
	}
	if err := o.setInstructions(instructions); err != nil {
		return err
	}
	o.touch(now)
	return nil
}

// RescheduleDelivery replaces the estimated delivery time of an open order.
func (o *Order) RescheduleDelivery(estimated time.Time, now time.Time) error {
	if o.status.IsTerminal() {
		return o.transitionError(o.status, ErrOrderIsClosed)
	}
	if estimated.IsZero() {
		return errs.NewValueIsRequiredError("estimated_delivery_time")
	}

	eta := estimated.UTC()
	o.estimatedDeliveryTime = &eta
	o.touch(now)
	return nil
}

func (o *Order) transition(next Status) error {
	if !o.status.CanTransitionTo(next) {
		return o.transitionError(next, nil)
	}
	o.status = next
	return nil
}

func (o *Order) transitionError(next Status, cause error) error {
	if cause != nil {
		return errs.NewInvalidTransitionErrorWithCause(entityName, o.id.String(), o.status, next, cause)
	}
	return errs.NewInvalidTransitionError(entityName, o.id.String(), o.status, next)
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now.UTC()
}

func (o *Order) validateAgentLink() error {
	if o.status.HasAgent() && o.agentID == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery_agent_id", fmt.Errorf("%s order must reference an agent", o.status))
	}
	if !o.status.HasAgent() && o.agentID != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery_agent_id", fmt.Errorf("%s order must not reference an agent", o.status))
	}
	if o.status == Delivered && o.actualDeliveryTime == nil {
		return errs.NewValueIsRequiredError("actual_delivery_time")
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("customer_id", fmt.Errorf("%d is not a positive id", customerID))
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setAddressID(addressID int64) error {
	if addressID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery_address_id", fmt.Errorf("%d is not a positive id", addressID))
	}
	o.addressID = addressID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

// setPricing runs after setItems so the subtotal can be checked against the lines.
func (o *Order) setPricing(pricing Pricing) error {
	if err := pricing.Subtotal().Validate(); err != nil {
		return err
	}

	sum := kernel.ZeroMoney()
	for _, item := range o.items {
		sum = sum.Add(item.LineTotal())
	}
	if !sum.Equal(pricing.Subtotal()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"subtotal", fmt.Errorf("%s does not match item total %s", pricing.Subtotal(), sum))
	}

	o.pricing = pricing
	return nil
}

func (o *Order) setInstructions(instructions string) error {
	instructions = strings.TrimSpace(instructions)
	if len(instructions) > MaxInstructionsLength {
		return errs.NewValueIsOutOfRangeError(
			"delivery_instructions length", len(instructions), 0, MaxInstructionsLength)
	}
	o.instructions = instructions
	return nil
}
