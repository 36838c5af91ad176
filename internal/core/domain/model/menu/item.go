// Package menu holds the read model of catalog entries that orders are priced from.
package menu

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Item is a catalog entry as served by the menu collaborator.
type Item struct {
	id        int64
	name      string
	price     kernel.Money
	available bool
}

func NewItem(id int64, name string, price kernel.Money, available bool) (Item, error) {
	item := Item{id: id, name: strings.TrimSpace(name), price: price, available: available}

	var problems []error
	if id <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"menu_item_id", fmt.Errorf("%d is not a positive id", id)))
	}
	if item.name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if err := price.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := errors.Join(problems...); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) ID() int64 {
	return i.id
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Price() kernel.Money {
	return i.price
}

// IsAvailable reports whether the kitchen currently serves the item.
func (i Item) IsAvailable() bool {
	return i.available
}
