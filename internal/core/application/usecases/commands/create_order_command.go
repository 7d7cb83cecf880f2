package commands

import (
	"errors"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/core/domain/model/order"
	"dronefleet/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrAddressIsRequired = errors.New("destination address is required")
	ErrAmountIsInvalid   = errors.New("amount must be greater than 0")
	ErrItemsAreRequired  = errors.New("at least one item is required")
)

// CreateOrderCommand represents a request to place a new order.
// The order starts unpaid and pending; payment confirmation arrives later
// over the event bus.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	customerID         kernel.UUID
	restaurantID       kernel.UUID
	destination        kernel.GeoPoint
	destinationAddress string
	amountCents        int64
	items              []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Automatically generates a unique ID for the order.
func NewCreateOrderCommand(
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	destination kernel.GeoPoint,
	destinationAddress string,
	amountCents int64,
	items []order.Item,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(kernel.NewUUID()),
		command.setCustomerID(customerID),
		command.setRestaurantID(restaurantID),
		command.setDestination(destination, destinationAddress),
		command.setAmount(amountCents),
		command.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the generated order ID from the command.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer ID from the command.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the restaurant ID from the command.
func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Destination returns the delivery destination from the command.
func (c CreateOrderCommand) Destination() kernel.GeoPoint {
	return c.destination
}

// DestinationAddress returns the human-readable delivery address.
func (c CreateOrderCommand) DestinationAddress() string {
	return c.destinationAddress
}

// AmountCents returns the order total in cents.
func (c CreateOrderCommand) AmountCents() int64 {
	return c.amountCents
}

// Items returns the order lines from the command.
func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setDestination(destination kernel.GeoPoint, address string) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	if address == "" {
		return ErrAddressIsRequired
	}

	c.destination = destination
	c.destinationAddress = address
	return nil
}

func (c *CreateOrderCommand) setAmount(amountCents int64) error {
	if amountCents <= 0 {
		return ErrAmountIsInvalid
	}

	c.amountCents = amountCents
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}
