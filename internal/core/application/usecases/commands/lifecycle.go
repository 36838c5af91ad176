package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ErrAgentIsRequired is the cause reported when DISPATCHED is requested without an agent.
var ErrAgentIsRequired = errors.New("dispatching requires an agent_id")

// statusChange is the outcome of moving a locked order to a requested status.
type statusChange struct {
	previous order.Status
	// agent is the agent that has to be written together with the order, if any.
	agent *agent.Agent
}

func (c statusChange) changed(o *order.Order) bool {
	return c.previous != o.Status()
}

func (c statusChange) dispatched(o *order.Order) bool {
	return c.changed(o) && o.Status() == order.Dispatched
}

// applyStatus moves o, already locked by the caller, to target. Requesting the
// current status is a no-op. Dispatching goes through the matcher and needs
// agentID; delivering releases the linked agent. Agent rows are locked after
// the order row.
func applyStatus(
	ctx context.Context,
	agents ports.AgentRepository,
	matcher services.AssignmentMatcher,
	o *order.Order,
	target order.Status,
	agentID *kernel.UUID,
	now time.Time,
) (statusChange, error) {
	change := statusChange{previous: o.Status()}
	if err := target.Validate(); err != nil {
		return change, err
	}
	if target == o.Status() {
		return change, nil
	}

	switch target {
	case order.Confirmed:
		return change, o.Confirm(now)
	case order.Cancelled:
		return change, o.Cancel(now)
	case order.Dispatched:
		if agentID == nil {
			return change, errs.NewInvalidTransitionErrorWithCause(
				"order", o.ID().String(), o.Status(), order.Dispatched, ErrAgentIsRequired)
		}
		a, err := reserveAgent(ctx, agents, matcher, o, *agentID, now)
		if err != nil {
			return change, err
		}
		change.agent = a
		return change, nil
	case order.Delivered:
		a, err := completeDelivery(ctx, agents, o, now)
		if err != nil {
			return change, err
		}
		change.agent = a
		return change, nil
	case order.Pending, order.Unknown:
	}

	return change, errs.NewInvalidTransitionError("order", o.ID().String(), o.Status(), target)
}

// reserveAgent locks the agent and lets the matcher pair it with o. A missing
// or deactivated agent is reported as unavailable.
func reserveAgent(
	ctx context.Context,
	agents ports.AgentRepository,
	matcher services.AssignmentMatcher,
	o *order.Order,
	agentID kernel.UUID,
	now time.Time,
) (*agent.Agent, error) {
	if !o.Status().IsAssignable() {
		return nil, notAssignable(o, agentID)
	}

	a, err := agents.GetForUpdate(ctx, agentID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %w", services.ErrAgentUnavailable, err)
	}
	if err != nil {
		return nil, err
	}

	if err = matcher.Match(o, a, now); err != nil {
		return nil, err
	}
	return a, nil
}

// notAssignable explains why o cannot take agentID. An order that is already
// DISPATCHED lost a race with another assignment and is reported as a conflict
// too; when it went to the same agent, that agent is unavailable as well.
func notAssignable(o *order.Order, agentID kernel.UUID) error {
	err := fmt.Errorf("%w: order %s is %s", services.ErrOrderNotAssignable, o.ID(), o.Status())
	linked := o.AgentID()
	if o.Status() != order.Dispatched || linked == nil {
		return err
	}

	lost := errs.NewConflictError("order", o.ID().String(), o.Version())
	if linked.IsEqual(agentID) {
		return fmt.Errorf("%w: %w: %w", services.ErrAgentUnavailable, err, lost)
	}
	return fmt.Errorf("%w: %w", err, lost)
}

// completeDelivery delivers o and returns its agent to Available.
func completeDelivery(ctx context.Context, agents ports.AgentRepository, o *order.Order, now time.Time) (*agent.Agent, error) {
	linked := o.AgentID()
	if err := o.Deliver(now); err != nil {
		return nil, err
	}

	a, err := agents.GetForUpdate(ctx, *linked)
	if err != nil {
		return nil, err
	}
	if err = a.Release(now); err != nil {
		return nil, err
	}
	return a, nil
}
