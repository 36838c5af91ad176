package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/agent"
)

// UpdateAgentLocationCommandHandler refreshes position and last_location_update.
type UpdateAgentLocationCommandHandler struct {
	uowFactory AgentUoWFactory
}

func NewUpdateAgentLocationCommandHandler(uowFactory AgentUoWFactory) UpdateAgentLocationCommandHandler {
	return UpdateAgentLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateAgentLocationCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateAgentLocationCommand,
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

	if err = a.MoveTo(cmd.Location(), time.Now()); err != nil {
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
