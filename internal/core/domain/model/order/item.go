package order

import (
	"errors"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/errs"
	"dronefleet/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when attempting to use an improperly
// initialized Item.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError(
	"order item must be created via NewItem constructor")

// Item is one order line: a product reference and a quantity.
// Items feed the stock-decrement event published when the order completes.
type Item struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int
	guard     guard.ConstructorGuard
}

// NewItem creates an order line. Quantity must be positive.
func NewItem(productID kernel.UUID, quantity int) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		productID.Validate(),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	item.productID = productID
	return item, nil
}

// Validate checks if the Item was properly constructed.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the product reference.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	i.quantity = quantity
	return nil
}
