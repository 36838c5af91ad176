package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateAgentStatusCommandIsNotConstructed = errors.New(
	"UpdateAgentStatusCommand must be created via NewUpdateAgentStatusCommand constructor",
)

// UpdateAgentStatusCommand toggles an agent between AVAILABLE and OFFLINE.
// ASSIGNED is owned by the assignment matcher and rejected here.
type UpdateAgentStatusCommand struct {
	agentID kernel.UUID
	status  agent.Status

	guard guard.ConstructorGuard
}

func NewUpdateAgentStatusCommand(agentID kernel.UUID, status agent.Status) (UpdateAgentStatusCommand, error) {
	statusErr := status.Validate()
	if statusErr == nil && status == agent.Assigned {
		statusErr = agent.ErrAssignedIsReserved
	}
	if err := errors.Join(agentID.Validate(), statusErr); err != nil {
		return UpdateAgentStatusCommand{}, err
	}

	return UpdateAgentStatusCommand{
		agentID: agentID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateAgentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAgentStatusCommandIsNotConstructed)
}

func (c UpdateAgentStatusCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c UpdateAgentStatusCommand) Status() agent.Status {
	return c.status
}
