package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/agent"
)

// UpdateAgentStatusCommandHandler sets the availability of an agent directly.
// An agent on a delivery keeps ASSIGNED until the delivery completes or is aborted.
type UpdateAgentStatusCommandHandler struct {
	uowFactory AgentUoWFactory
}

func NewUpdateAgentStatusCommandHandler(uowFactory AgentUoWFactory) UpdateAgentStatusCommandHandler {
	return UpdateAgentStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateAgentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateAgentStatusCommand,
) (*agent.Agent, error) {
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

	agentRepo := uow.AgentRepository()
	a, err := agentRepo.GetForUpdate(ctx, cmd.AgentID())
	if err != nil {
		return nil, err
	}

	if err = a.SetAvailability(cmd.Status(), time.Now()); err != nil {
		return nil, err
	}

	if err = agentRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}
