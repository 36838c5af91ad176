// Package notifications turns committed lifecycle changes into SMS messages.
package notifications

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"go.uber.org/zap"
)

// DefaultTimeout bounds one gateway call when none is configured.
const DefaultTimeout = 5 * time.Second

const (
	kindOrderPlaced   = "order_placed"
	kindStatusChanged = "order_status_changed"
	kindAgentAssigned = "agent_assigned"
)

// Dispatcher implements commands.Notifier on top of a NotificationGateway.
//
// Every failure, be it an unknown customer, a gateway error or a timeout, is
// logged at WARN and swallowed. The dispatcher runs after the commit, so the
// context of the request may already be cancelled; calls are detached from its
// cancellation and bounded by the configured timeout instead.
type Dispatcher struct {
	gateway   ports.NotificationGateway
	customers ports.CustomerDirectory
	timeout   time.Duration
	logger    *zap.Logger
}

func NewDispatcher(
	gateway ports.NotificationGateway,
	customers ports.CustomerDirectory,
	timeout time.Duration,
	logger *zap.Logger,
) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		gateway:   gateway,
		customers: customers,
		timeout:   timeout,
		logger:    logger.With(zap.String("component", "notifications")),
	}
}

// OrderPlaced tells the customer the order was received.
func (d *Dispatcher) OrderPlaced(ctx context.Context, o *order.Order) {
	message := fmt.Sprintf("Your order %s has been placed. Total: Rs %s.",
		o.Number(), o.Pricing().Total())
	d.notifyCustomer(ctx, kindOrderPlaced, o, message)
}

// OrderStatusChanged tells the customer about a new status. Nothing is sent
// when the status did not change.
func (d *Dispatcher) OrderStatusChanged(ctx context.Context, o *order.Order, previous order.Status) {
	if previous == o.Status() {
		return
	}
	d.notifyCustomer(ctx, kindStatusChanged, o, statusMessage(o))
}

// AgentAssigned tells the agent about the new delivery.
func (d *Dispatcher) AgentAssigned(ctx context.Context, o *order.Order, a *agent.Agent) {
	message := fmt.Sprintf("New delivery assigned: order %s. Please pick it up.", o.Number())
	d.send(ctx, kindAgentAssigned, o, a.Phone().String(), message)
}

func (d *Dispatcher) notifyCustomer(ctx context.Context, kind string, o *order.Order, message string) {
	ctx, cancel := d.detach(ctx)
	defer cancel()

	phone, err := d.customers.PhoneNumber(ctx, o.CustomerID())
	if err != nil {
		d.warn(kind, o, "customer phone lookup failed", err)
		return
	}
	d.deliver(ctx, kind, o, phone, message)
}

func (d *Dispatcher) send(ctx context.Context, kind string, o *order.Order, phone string, message string) {
	ctx, cancel := d.detach(ctx)
	defer cancel()

	d.deliver(ctx, kind, o, phone, message)
}

func (d *Dispatcher) deliver(ctx context.Context, kind string, o *order.Order, phone string, message string) {
	if err := d.gateway.Send(ctx, phone, message); err != nil {
		d.warn(kind, o, "notification failed", err)
		return
	}
	d.logger.Debug("notification sent",
		zap.String("order_id", o.ID().String()),
		zap.String("kind", kind))
}

func (d *Dispatcher) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
}

func (d *Dispatcher) warn(kind string, o *order.Order, msg string, err error) {
	d.logger.Warn(msg,
		zap.String("order_id", o.ID().String()),
		zap.String("kind", kind),
		zap.Error(err))
}

func statusMessage(o *order.Order) string {
	switch o.Status() {
	case order.Confirmed:
		return fmt.Sprintf("Your order %s has been confirmed and is waiting for a delivery partner.", o.Number())
	case order.Dispatched:
		return fmt.Sprintf("Your order %s is on its way.", o.Number())
	case order.Delivered:
		return fmt.Sprintf("Your order %s has been delivered. Enjoy your meal!", o.Number())
	case order.Cancelled:
		return fmt.Sprintf("Your order %s has been cancelled.", o.Number())
	case order.Pending, order.Unknown:
	}
	return fmt.Sprintf("Your order %s is now %s.", o.Number(), o.Status())
}
