package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateAgentCommandIsNotConstructed = errors.New(
	"UpdateAgentCommand must be created via NewUpdateAgentCommand constructor",
)

// AgentChanges is the raw form of an agent edit. Nil fields stay unchanged;
// an empty Email clears the email. Latitude and Longitude come together.
// IsActive false soft-deletes the agent. Deactivated agents are out of reach of
// every edit, so IsActive true leaves an active agent as it is.
type AgentChanges struct {
	Name          *string
	Phone         *string
	Email         *string
	Latitude      *float64
	Longitude     *float64
	VehicleType   *string
	VehicleNumber *string
	IsActive      *bool
}

// UpdateAgentCommand edits the profile of an agent.
type UpdateAgentCommand struct {
	agentID       kernel.UUID
	name          *string
	phone         *kernel.Phone
	email         *kernel.Email
	clearEmail    bool
	location      *kernel.GeoLocation
	vehicleType   *string
	vehicleNumber *string
	isActive      *bool

	guard guard.ConstructorGuard
}

func NewUpdateAgentCommand(agentID kernel.UUID, changes AgentChanges) (UpdateAgentCommand, error) {
	cmd := UpdateAgentCommand{
		agentID:       agentID,
		name:          changes.Name,
		vehicleType:   changes.VehicleType,
		vehicleNumber: changes.VehicleNumber,
		isActive:      changes.IsActive,
		guard:         guard.NewConstructorGuard(),
	}

	problems := []error{agentID.Validate()}

	if changes.Phone != nil {
		phone, err := kernel.NewPhone(*changes.Phone)
		problems = append(problems, err)
		cmd.phone = &phone
	}

	if changes.Email != nil {
		email, err := parseOptionalEmail(changes.Email)
		problems = append(problems, err)
		cmd.email = email
		cmd.clearEmail = email == nil
	}

	switch {
	case changes.Latitude != nil && changes.Longitude != nil:
		location, err := kernel.NewGeoLocation(*changes.Latitude, *changes.Longitude)
		problems = append(problems, err)
		cmd.location = &location
	case changes.Latitude != nil:
		problems = append(problems, errs.NewValueIsRequiredError("current_longitude"))
	case changes.Longitude != nil:
		problems = append(problems, errs.NewValueIsRequiredError("current_latitude"))
	}

	if err := errors.Join(problems...); err != nil {
		return UpdateAgentCommand{}, err
	}

	return cmd, nil
}

func (c UpdateAgentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAgentCommandIsNotConstructed)
}

func (c UpdateAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}
