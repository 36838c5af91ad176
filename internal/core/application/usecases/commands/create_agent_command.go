package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCreateAgentCommandIsNotConstructed = errors.New(
	"CreateAgentCommand must be created via NewCreateAgentCommand constructor",
)

// CreateAgentCommand registers a delivery agent. Raw input is parsed into
// value objects here, so a constructed command is always valid.
type CreateAgentCommand struct {
	name    string
	phone   kernel.Phone
	email   *kernel.Email
	vehicle agent.Vehicle

	guard guard.ConstructorGuard
}

// NewCreateAgentCommand parses the agent form. Email is optional; nil or ""
// means none.
func NewCreateAgentCommand(
	name string,
	phone string,
	email *string,
	vehicleType string,
	vehicleNumber string,
) (CreateAgentCommand, error) {
	parsedPhone, phoneErr := kernel.NewPhone(phone)
	parsedEmail, emailErr := parseOptionalEmail(email)
	vehicle, vehicleErr := agent.NewVehicle(vehicleType, vehicleNumber)

	var nameErr error
	if name == "" {
		nameErr = agent.ErrNameIsRequired
	}

	if err := errors.Join(nameErr, phoneErr, emailErr, vehicleErr); err != nil {
		return CreateAgentCommand{}, err
	}

	return CreateAgentCommand{
		name:    name,
		phone:   parsedPhone,
		email:   parsedEmail,
		vehicle: vehicle,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateAgentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAgentCommandIsNotConstructed)
}

func (c CreateAgentCommand) Name() string {
	return c.name
}

func (c CreateAgentCommand) Phone() kernel.Phone {
	return c.phone
}

func (c CreateAgentCommand) Email() *kernel.Email {
	return c.email
}

func (c CreateAgentCommand) Vehicle() agent.Vehicle {
	return c.vehicle
}

func parseOptionalEmail(email *string) (*kernel.Email, error) {
	if email == nil || *email == "" {
		return nil, nil
	}
	parsed, err := kernel.NewEmail(*email)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
