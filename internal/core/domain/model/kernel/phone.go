package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)

	ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("phone must be created via NewPhone constructor")
)

// Phone is a ten digit mobile number, stored without country code or separators.
type Phone struct {
	number string
	guard  guard.ConstructorGuard
}

func NewPhone(number string) (Phone, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}
	if !phonePattern.MatchString(number) {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause(
			"phone",
			fmt.Errorf("%q must be exactly 10 digits", number),
		)
	}

	return Phone{number: number, guard: guard.NewConstructorGuard()}, nil
}

func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}

func (p Phone) String() string {
	return p.number
}
