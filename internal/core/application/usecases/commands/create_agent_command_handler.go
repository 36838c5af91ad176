package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// CreateAgentCommandHandler registers an agent as Offline and active.
type CreateAgentCommandHandler struct {
	uowFactory AgentUoWFactory
}

func NewCreateAgentCommandHandler(uowFactory AgentUoWFactory) CreateAgentCommandHandler {
	return CreateAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateAgentCommandHandler) Handle(ctx context.Context, cmd CreateAgentCommand) (*agent.Agent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	registered, err := agent.NewAgent(kernel.NewUUID(), cmd.Name(), cmd.Phone(), cmd.Email(), cmd.Vehicle(), time.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentRepo := uow.AgentRepository()
	taken, err := agentRepo.PhoneTaken(ctx, cmd.Phone(), nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewValueIsInvalidErrorWithCause("phone", agent.ErrPhoneIsTaken)
	}

	if err = agentRepo.Add(ctx, registered); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return registered, nil
}
