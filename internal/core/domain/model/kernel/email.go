package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	ErrEmailIsNotConstructed = errs.NewValueIsRequiredError("email must be created via NewEmail constructor")
)

// Email is an optional contact address of a delivery agent.
type Email struct {
	address string
	guard   guard.ConstructorGuard
}

func NewEmail(address string) (Email, error) {
	address = strings.TrimSpace(address)
	if !emailPattern.MatchString(address) {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a valid email", address))
	}

	return Email{address: address, guard: guard.NewConstructorGuard()}, nil
}

func (e Email) Validate() error {
	return e.guard.Validate(ErrEmailIsNotConstructed)
}

func (e Email) String() string {
	return e.address
}
