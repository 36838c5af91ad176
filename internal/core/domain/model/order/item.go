package order

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// MaxInstructionsLength bounds every free-text instruction field.
const MaxInstructionsLength = 500

// Item is the snapshot of one ordered menu line. Name and price are copied
// from the catalog when the order is placed and never change afterwards.
type Item struct {
	id           kernel.UUID
	menuItemID   int64
	name         string
	price        kernel.Money
	quantity     int
	instructions string
}

// NewItem validates and creates an order line snapshot.
func NewItem(
	id kernel.UUID,
	menuItemID int64,
	name string,
	price kernel.Money,
	quantity int,
	instructions string,
) (Item, error) {
	item := Item{
		id:           id,
		menuItemID:   menuItemID,
		name:         strings.TrimSpace(name),
		price:        price,
		quantity:     quantity,
		instructions: strings.TrimSpace(instructions),
	}

	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if menuItemID <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"menu_item_id", fmt.Errorf("%d is not a positive id", menuItemID)))
	}
	if item.name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("item_name"))
	}
	if err := price.Validate(); err != nil {
		problems = append(problems, err)
	}
	if quantity < 1 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is less than 1", quantity)))
	}
	if len(item.instructions) > MaxInstructionsLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError(
			"special_instructions length", len(item.instructions), 0, MaxInstructionsLength))
	}
	if err := errors.Join(problems...); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) ID() kernel.UUID { return i.id }
func (i Item) MenuItemID() int64 { return i.menuItemID }
func (i Item) Name() string { return i.name }
func (i Item) Price() kernel.Money { return i.price }
func (i Item) Quantity() int { return i.quantity }
func (i Item) Instructions() string { return i.instructions }
func (i Item) LineTotal() kernel.Money { return i.price.Times(i.quantity) }
