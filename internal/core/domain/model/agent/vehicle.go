package agent

import (
	"errors"
	"strings"

	"marketplace/internal/pkg/errs"
)

const (
	MaxVehicleTypeLength   = 50
	MaxVehicleNumberLength = 20
)

// Vehicle is the optional vehicle metadata of an agent ("bike", "KA01AB1234").
type Vehicle struct {
	kind   string
	number string
}

func NewVehicle(kind string, number string) (Vehicle, error) {
	v := Vehicle{kind: strings.TrimSpace(kind), number: strings.TrimSpace(number)}

	var problems []error
	if len(v.kind) > MaxVehicleTypeLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError(
			"vehicle_type length", len(v.kind), 0, MaxVehicleTypeLength))
	}
	if len(v.number) > MaxVehicleNumberLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError(
			"vehicle_number length", len(v.number), 0, MaxVehicleNumberLength))
	}
	if err := errors.Join(problems...); err != nil {
		return Vehicle{}, err
	}

	return v, nil
}

func (v Vehicle) Type() string {
	return v.kind
}

func (v Vehicle) Number() string {
	return v.number
}
