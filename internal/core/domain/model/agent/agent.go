package agent

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// MaxNameLength bounds the display name of an agent.
	MaxNameLength = 100

	entityName = "delivery agent"
)

// Domain errors for agent operations.
var (
	// ErrNameIsRequired is returned when an agent is created or renamed without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrAgentIsNotConstructed is returned when using an improperly initialized Agent.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent constructor")
	// ErrAgentIsBusy is the cause attached when an assigned agent is edited directly.
	ErrAgentIsBusy = errors.New("agent is on a delivery")
	// ErrAssignedIsReserved is returned when ASSIGNED is requested outside of assignment.
	ErrAssignedIsReserved = errs.NewValueIsInvalidErrorWithCause(
		"status", errors.New("assigned is set by order assignment only"))
	// ErrPhoneIsTaken is the cause reported when another agent already uses a phone number.
	ErrPhoneIsTaken = errors.New("phone number is already registered")
)

// Agent is a delivery courier tracked by availability and position.
//
// Business rules:
//   - new agents start Offline, active and without a position
//   - only Available and Offline can be set directly
//   - Assigned is entered through Reserve and left through Release
//   - an inactive agent is never eligible for assignment
//
// Example usage:
//
//	phone, _ := kernel.NewPhone("9876543210")
//	a, err := agent.NewAgent(kernel.NewUUID(), "Ravi Kumar", phone, nil, agent.Vehicle{}, time.Now())
type Agent struct {
	id                 kernel.UUID
	name               string
	phone              kernel.Phone
	email              *kernel.Email
	status             Status
	location           *kernel.GeoLocation
	lastLocationUpdate *time.Time
	active             bool
	vehicle            Vehicle
	createdAt          time.Time
	updatedAt          time.Time
	version            int64
	guard              guard.ConstructorGuard
}

// NewAgent registers a new, offline agent.
func NewAgent(
	id kernel.UUID,
	name string,
	phone kernel.Phone,
	email *kernel.Email,
	vehicle Vehicle,
	now time.Time,
) (*Agent, error) {
	a := &Agent{
		status:    Offline,
		active:    true,
		vehicle:   vehicle,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		version:   1,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setPhone(phone),
		a.setEmail(email),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// State carries a persisted agent back into the domain.
type State struct {
	ID                 kernel.UUID
	Name               string
	Phone              kernel.Phone
	Email              *kernel.Email
	Status             Status
	Location           *kernel.GeoLocation
	LastLocationUpdate *time.Time
	Active             bool
	Vehicle            Vehicle
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int64
}

// RestoreAgent rebuilds an agent from storage.
func RestoreAgent(state State) (*Agent, error) {
	a := &Agent{
		status:             state.Status,
		location:           state.Location,
		lastLocationUpdate: state.LastLocationUpdate,
		active:             state.Active,
		vehicle:            state.Vehicle,
		createdAt:          state.CreatedAt,
		updatedAt:          state.UpdatedAt,
		version:            state.Version,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(state.ID),
		a.setName(state.Name),
		a.setPhone(state.Phone),
		a.setEmail(state.Email),
		state.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

func (a *Agent) IsEqual(other *Agent) bool {
	return other != nil && a.id.IsEqual(other.id)
}

func (a *Agent) ID() kernel.UUID {
	return a.id
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Phone() kernel.Phone {
	return a.phone
}

// Email returns the contact email, or nil when none was given.
func (a *Agent) Email() *kernel.Email {
	return a.email
}

func (a *Agent) Status() Status {
	return a.status
}

// Location returns the last reported position, or nil before the first report.
func (a *Agent) Location() *kernel.GeoLocation {
	return a.location
}

func (a *Agent) LastLocationUpdate() *time.Time {
	return a.lastLocationUpdate
}

func (a *Agent) IsActive() bool {
	return a.active
}

func (a *Agent) Vehicle() Vehicle {
	return a.vehicle
}

func (a *Agent) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Agent) UpdatedAt() time.Time {
	return a.updatedAt
}

// Version is the optimistic concurrency token of the stored row.
func (a *Agent) Version() int64 {
	return a.version
}

// IsEligible reports whether the agent can take a new delivery.
func (a *Agent) IsEligible() bool {
	return a.active && a.status == Available
}

func (a *Agent) Rename(name string, now time.Time) error {
	if err := a.setName(name); err != nil {
		return err
	}
	a.touch(now)
	return nil
}

func (a *Agent) ChangePhone(phone kernel.Phone, now time.Time) error {
	if err := a.setPhone(phone); err != nil {
		return err
	}
	a.touch(now)
	return nil
}

// ChangeEmail replaces the email; nil clears it.
func (a *Agent) ChangeEmail(email *kernel.Email, now time.Time) error {
	if err := a.setEmail(email); err != nil {
		return err
	}
	a.touch(now)
	return nil
}

func (a *Agent) ChangeVehicle(vehicle Vehicle, now time.Time) {
	a.vehicle = vehicle
	a.touch(now)
}

// MoveTo records a new position reported by the agent.
func (a *Agent) MoveTo(location kernel.GeoLocation, now time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}

	at := now.UTC()
	a.location = &location
	a.lastLocationUpdate = &at
	a.touch(now)
	return nil
}

// SetAvailability toggles the agent between Available and Offline.
func (a *Agent) SetAvailability(status Status, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == Assigned {
		return ErrAssignedIsReserved
	}
	if a.status == Assigned {
		return errs.NewInvalidTransitionErrorWithCause(entityName, a.id.String(), a.status, status, ErrAgentIsBusy)
	}

	a.status = status
	a.touch(now)
	return nil
}

// Deactivate soft-deletes the agent. An agent on a delivery cannot be deactivated.
func (a *Agent) Deactivate(now time.Time) error {
	if a.status == Assigned {
		return errs.NewInvalidTransitionErrorWithCause(entityName, a.id.String(), a.status, Offline, ErrAgentIsBusy)
	}
	a.active = false
	a.touch(now)
	return nil
}

// Reserve marks an eligible agent as Assigned. The assignment matcher calls it
// together with order.Dispatch inside one transaction.
func (a *Agent) Reserve(now time.Time) error {
	if !a.IsEligible() {
		return errs.NewInvalidTransitionErrorWithCause(
			entityName, a.id.String(), a.status, Assigned,
			fmt.Errorf("agent is %s and active=%t", a.status, a.active))
	}

	a.status = Assigned
	a.touch(now)
	return nil
}

// Release frees an Assigned agent once its delivery ended.
func (a *Agent) Release(now time.Time) error {
	if a.status != Assigned {
		return errs.NewInvalidTransitionError(entityName, a.id.String(), a.status, Available)
	}

	a.status = Available
	a.touch(now)
	return nil
}

func (a *Agent) touch(now time.Time) {
	a.updatedAt = now.UTC()
}

func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Agent) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	if len([]rune(name)) > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", len([]rune(name)), 1, MaxNameLength)
	}
	a.name = name
	return nil
}

func (a *Agent) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	a.phone = phone
	return nil
}

func (a *Agent) setEmail(email *kernel.Email) error {
	if email != nil {
		if err := email.Validate(); err != nil {
			return err
		}
	}
	a.email = email
	return nil
}
