// Package customer models the caller identity handed over by the authentication collaborator.
package customer

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrPrincipalIsNotConstructed = errors.New("Principal must be created via NewPrincipal constructor")

// Role separates customers from operators running the delivery desk.
type Role int

const (
	RoleCustomer Role = iota + 1
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleAdmin:
		return "admin"
	}
	return "unknown"
}

// ParseRole maps a token claim to a Role. An empty claim means customer.
func ParseRole(value string) (Role, error) {
	switch value {
	case "", "customer":
		return RoleCustomer, nil
	case "admin":
		return RoleAdmin, nil
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", value))
}

// Principal is the verified identity of the caller of one request.
type Principal struct {
	customerID int64
	phone      string
	role       Role
	guard      guard.ConstructorGuard
}

func NewPrincipal(customerID int64, phone string, role Role) (Principal, error) {
	if customerID <= 0 {
		return Principal{}, errs.NewValueIsInvalidErrorWithCause(
			"customer_id", fmt.Errorf("%d is not a positive id", customerID))
	}
	if role != RoleCustomer && role != RoleAdmin {
		return Principal{}, errs.NewValueIsInvalidError("role")
	}

	return Principal{
		customerID: customerID,
		phone:      phone,
		role:       role,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (p Principal) Validate() error {
	return p.guard.Validate(ErrPrincipalIsNotConstructed)
}

func (p Principal) CustomerID() int64 {
	return p.customerID
}

// Phone is the verified phone number from the session, if the token carried one.
func (p Principal) Phone() string {
	return p.phone
}

func (p Principal) Role() Role {
	return p.role
}

func (p Principal) IsAdmin() bool {
	return p.role == RoleAdmin
}
