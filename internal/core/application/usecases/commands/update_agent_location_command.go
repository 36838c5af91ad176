package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateAgentLocationCommandIsNotConstructed = errors.New(
	"UpdateAgentLocationCommand must be created via NewUpdateAgentLocationCommand constructor",
)

// UpdateAgentLocationCommand records a position reported by an agent.
type UpdateAgentLocationCommand struct {
	agentID  kernel.UUID
	location kernel.GeoLocation

	guard guard.ConstructorGuard
}

func NewUpdateAgentLocationCommand(agentID kernel.UUID, latitude, longitude float64) (UpdateAgentLocationCommand, error) {
	location, locErr := kernel.NewGeoLocation(latitude, longitude)
	if err := errors.Join(agentID.Validate(), locErr); err != nil {
		return UpdateAgentLocationCommand{}, err
	}

	return UpdateAgentLocationCommand{
		agentID:  agentID,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateAgentLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAgentLocationCommandIsNotConstructed)
}

func (c UpdateAgentLocationCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c UpdateAgentLocationCommand) Location() kernel.GeoLocation {
	return c.location
}
