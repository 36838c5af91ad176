package services

import (
	"errors"
	"fmt"
	"strconv"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrNoOrderLines is returned when an order is priced without any line.
var ErrNoOrderLines = errs.NewValueIsRequiredError("order_items")

// PricingPolicy holds the tax and delivery fee rules.
type PricingPolicy struct {
	TaxRate               decimal.Decimal
	FlatDeliveryFee       kernel.Money
	FreeDeliveryThreshold kernel.Money
}

// DefaultPricingPolicy charges 5% tax and a flat fee of 50 below a subtotal of 500.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		TaxRate:               decimal.RequireFromString("0.05"),
		FlatDeliveryFee:       kernel.MustMoney("50"),
		FreeDeliveryThreshold: kernel.MustMoney("500"),
	}
}

func (p PricingPolicy) Validate() error {
	var problems []error
	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		problems = append(problems, errs.NewValueIsOutOfRangeError("tax_rate", p.TaxRate.String(), 0, 1))
	}
	if err := p.FlatDeliveryFee.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := p.FreeDeliveryThreshold.Validate(); err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}

// OrderLine is one requested menu line before pricing.
type OrderLine struct {
	MenuItemID   int64
	Quantity     int
	Instructions string
}

// Quote is the result of pricing: the item snapshot in request order and its totals.
type Quote struct {
	Items   []order.Item
	Pricing order.Pricing
}

// PricingCalculator is a pure function over the requested lines and the
// catalog entries looked up for them.
type PricingCalculator struct {
	policy PricingPolicy
}

func NewPricingCalculator(policy PricingPolicy) (PricingCalculator, error) {
	if err := policy.Validate(); err != nil {
		return PricingCalculator{}, err
	}
	return PricingCalculator{policy: policy}, nil
}

// Quote prices lines against catalog, keyed by menu item id.
//
//	subtotal = Σ price × quantity
//	tax      = subtotal × tax rate, rounded to cents
//	fee      = flat fee when subtotal < threshold, else 0
//	total    = subtotal + tax + fee
func (c PricingCalculator) Quote(lines []OrderLine, catalog map[int64]menu.Item) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, ErrNoOrderLines
	}

	items := make([]order.Item, 0, len(lines))
	subtotal := kernel.ZeroMoney()
	var problems []error

	for _, line := range lines {
		entry, ok := catalog[line.MenuItemID]
		if !ok {
			problems = append(problems, errs.NewObjectNotFoundError("menu_item", strconv.FormatInt(line.MenuItemID, 10)))
			continue
		}
		if !entry.IsAvailable() {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"menu_item_id", fmt.Errorf("%d is not available", line.MenuItemID)))
			continue
		}

		item, err := order.NewItem(
			kernel.NewUUID(), entry.ID(), entry.Name(), entry.Price(), line.Quantity, line.Instructions)
		if err != nil {
			problems = append(problems, err)
			continue
		}

		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}
	if err := errors.Join(problems...); err != nil {
		return Quote{}, err
	}

	fee := kernel.ZeroMoney()
	if subtotal.LessThan(c.policy.FreeDeliveryThreshold) {
		fee = c.policy.FlatDeliveryFee
	}

	pricing, err := order.NewPricing(subtotal, subtotal.Percent(c.policy.TaxRate), fee)
	if err != nil {
		return Quote{}, err
	}

	return Quote{Items: items, Pricing: pricing}, nil
}
