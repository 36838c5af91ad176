package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// AssignAgentCommandHandler dispatches an order to an agent.
//
// The order row is locked first and the agent row second, so two requests
// racing for one agent serialize on the agent lock: the loser reads ASSIGNED
// and fails with services.ErrAgentUnavailable. Writes that slip past the lock
// fail on the version check with errs.ErrConflict.
type AssignAgentCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.AssignmentMatcher
	notifier   Notifier
}

func NewAssignAgentCommandHandler(
	uowFactory UoWFactory,
	matcher services.AssignmentMatcher,
	notifier Notifier,
) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		notifier:   notifier,
	}
}

// Handle returns the dispatched order and the reserved agent. A missing order
// is reported as not assignable.
func (h AssignAgentCommandHandler) Handle(
	ctx context.Context,
	cmd AssignAgentCommand,
) (*order.Order, *agent.Agent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	agentRepo := uow.AgentRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, fmt.Errorf("%w: %w", services.ErrOrderNotAssignable, err)
	}
	if err != nil {
		return nil, nil, err
	}

	previous := o.Status()
	a, err := reserveAgent(ctx, agentRepo, h.matcher, o, cmd.AgentID(), time.Now())
	if err != nil {
		return nil, nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, nil, err
	}
	if err = agentRepo.Update(ctx, a); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	h.notifier.AgentAssigned(ctx, o, a)
	h.notifier.OrderStatusChanged(ctx, o, previous)
	return o, a, nil
}
