package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetAgentQueryIsNotConstructed = errors.New(
	"GetAgentQuery must be created via NewGetAgentQuery constructor",
)

// GetAgentQuery reads one active delivery agent.
type GetAgentQuery struct {
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetAgentQuery(agentID kernel.UUID) (GetAgentQuery, error) {
	if err := agentID.Validate(); err != nil {
		return GetAgentQuery{}, err
	}
	return GetAgentQuery{agentID: agentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAgentQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentQueryIsNotConstructed)
}

func (q GetAgentQuery) AgentID() kernel.UUID {
	return q.agentID
}
