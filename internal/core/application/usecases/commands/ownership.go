package commands

import (
	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// ensureVisible hides orders of other customers behind NotFound. Admins see every order.
func ensureVisible(o *order.Order, requester customer.Principal) error {
	if requester.IsAdmin() || o.IsOwnedBy(requester.CustomerID()) {
		return nil
	}
	return errs.NewObjectNotFoundError("order", o.ID().String())
}
