package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/pkg/errs"
)

// UpdateAgentCommandHandler applies an agent edit. Deactivating an agent that
// is on a delivery fails with errs.ErrInvalidTransition.
type UpdateAgentCommandHandler struct {
	uowFactory AgentUoWFactory
}

func NewUpdateAgentCommandHandler(uowFactory AgentUoWFactory) UpdateAgentCommandHandler {
	return UpdateAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateAgentCommandHandler) Handle(ctx context.Context, cmd UpdateAgentCommand) (*agent.Agent, error) {
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

	if cmd.phone != nil && cmd.phone.String() != a.Phone().String() {
		id := a.ID()
		taken, takenErr := agentRepo.PhoneTaken(ctx, *cmd.phone, &id)
		if takenErr != nil {
			return nil, takenErr
		}
		if taken {
			return nil, errs.NewValueIsInvalidErrorWithCause("phone", agent.ErrPhoneIsTaken)
		}
	}

	if err = applyAgentChanges(a, cmd, time.Now()); err != nil {
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

func applyAgentChanges(a *agent.Agent, cmd UpdateAgentCommand, now time.Time) error {
	var problems []error

	if cmd.name != nil {
		problems = append(problems, a.Rename(*cmd.name, now))
	}
	if cmd.phone != nil {
		problems = append(problems, a.ChangePhone(*cmd.phone, now))
	}
	if cmd.email != nil || cmd.clearEmail {
		problems = append(problems, a.ChangeEmail(cmd.email, now))
	}
	if cmd.location != nil {
		problems = append(problems, a.MoveTo(*cmd.location, now))
	}
	if cmd.vehicleType != nil || cmd.vehicleNumber != nil {
		kind, number := a.Vehicle().Type(), a.Vehicle().Number()
		if cmd.vehicleType != nil {
			kind = *cmd.vehicleType
		}
		if cmd.vehicleNumber != nil {
			number = *cmd.vehicleNumber
		}
		vehicle, err := agent.NewVehicle(kind, number)
		if err == nil {
			a.ChangeVehicle(vehicle, now)
		}
		problems = append(problems, err)
	}
	if cmd.isActive != nil && !*cmd.isActive {
		problems = append(problems, a.Deactivate(now))
	}

	return errors.Join(problems...)
}
