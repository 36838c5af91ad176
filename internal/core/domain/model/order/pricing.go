package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Pricing is the immutable price breakdown captured when an order is placed.
// Total always equals Subtotal + Tax + DeliveryFee.
type Pricing struct {
	subtotal    kernel.Money
	tax         kernel.Money
	deliveryFee kernel.Money
	total       kernel.Money
}

// NewPricing derives the total from its three components.
func NewPricing(subtotal, tax, deliveryFee kernel.Money) (Pricing, error) {
	if err := errors.Join(subtotal.Validate(), tax.Validate(), deliveryFee.Validate()); err != nil {
		return Pricing{}, err
	}

	return Pricing{
		subtotal:    subtotal,
		tax:         tax,
		deliveryFee: deliveryFee,
		total:       subtotal.Add(tax).Add(deliveryFee),
	}, nil
}

// RestorePricing rebuilds a stored breakdown and rejects rows whose total drifted.
func RestorePricing(subtotal, tax, deliveryFee, total kernel.Money) (Pricing, error) {
	p, err := NewPricing(subtotal, tax, deliveryFee)
	if err != nil {
		return Pricing{}, err
	}
	if !p.total.Equal(total) {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause(
			"total_amount",
			fmt.Errorf("%s does not equal %s + %s + %s", total, subtotal, tax, deliveryFee),
		)
	}
	return p, nil
}

// Subtotal is the sum of item price times quantity over the snapshot.
func (p Pricing) Subtotal() kernel.Money { return p.subtotal }

// Tax is the subtotal times the tax rate, already rounded to two digits.
func (p Pricing) Tax() kernel.Money { return p.tax }

// DeliveryFee is the flat fee, or zero once the subtotal reached the free threshold.
func (p Pricing) DeliveryFee() kernel.Money { return p.deliveryFee }

// Total is what the customer pays.
func (p Pricing) Total() kernel.Money { return p.total }
