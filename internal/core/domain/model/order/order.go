package order

import (
	"errors"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/errs"
	"dronefleet/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when using an improperly
	// initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrItemsAreRequired is returned when creating an order without lines.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrDroneMismatch is returned when restoring an order whose drone
	// reference disagrees with its status.
	ErrDroneMismatch = errs.NewValueIsInvalidError(
		"drone reference requires a shipped or later status")
)

// transitionKey is one directed edge of the order state machine.
type transitionKey struct {
	from Status
	to   Status
}

// transitionRules is the single role-gated edge table of the order state
// machine. A transition request is evaluated against it exactly once; edges
// absent from the table fail with a StateConflictError regardless of role,
// and listed edges fail with a NotAuthorizedError for roles outside the set.
//
// Admin cancellation is special-cased in allowedRoles: an admin may cancel
// from any state except Completed, Cancelled, and Refunded.
var transitionRules = map[transitionKey][]Role{
	{Pending, Confirmed}:                {RoleRestaurant, RoleSystem},
	{Pending, Cancelled}:                {RoleCustomer, RoleRestaurant, RoleAdmin},
	{Confirmed, Processing}:             {RoleRestaurant},
	{Confirmed, Shipped}:                {RoleSystem},
	{Processing, Shipped}:               {RoleSystem},
	{Confirmed, CancellationRequested}:  {RoleRestaurant},
	{Processing, CancellationRequested}: {RoleRestaurant},
	{CancellationRequested, Cancelled}:  {RoleAdmin},
	{CancellationRequested, Confirmed}:  {RoleAdmin},
	{Shipped, Delivered}:                {RoleSystem, RoleAdmin},
	{Shipped, Completed}:                {RoleCustomer, RoleAdmin},
	{Delivered, Completed}:              {RoleCustomer, RoleAdmin},
	{Cancelled, Refunded}:               {RoleAdmin},
}

// allowedRoles returns the roles permitted to take the edge, or false when
// the edge does not exist.
func allowedRoles(from, to Status) ([]Role, bool) {
	if roles, ok := transitionRules[transitionKey{from: from, to: to}]; ok {
		return roles, true
	}

	// Admin may cancel anything that is not completed or already settled.
	if to == Cancelled && from != Completed && from != Cancelled && from != Refunded {
		return []Role{RoleAdmin}, true
	}

	return nil, false
}

// Order is the aggregate root of the order coordinator.
// It owns the role-gated lifecycle state machine, the payment state, and the
// assigned-drone reference. Nothing outside this aggregate writes the order
// or payment status.
type Order struct {
	// id uniquely identifies the order
	id kernel.UUID
	// customerID references the ordering customer
	customerID kernel.UUID
	// restaurantID references the preparing restaurant
	restaurantID kernel.UUID
	// destination is the delivery target position
	destination kernel.GeoPoint
	// destinationAddress is the human-readable delivery address
	destinationAddress string
	// amountCents is the order total in minor currency units
	amountCents int64
	// items are the order lines feeding the stock-decrement event
	items []Item
	// status is the lifecycle state
	status Status
	// paymentStatus is the payment state
	paymentStatus PaymentStatus
	// droneID is the assigned drone, set from Shipped onward
	droneID *kernel.UUID
	// guard ensures the order was properly constructed
	guard guard.ConstructorGuard
}

// NewOrder creates an order in the Pending/Unpaid state.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	destination kernel.GeoPoint,
	destinationAddress string,
	amountCents int64,
	items []Item,
) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setRestaurantID(restaurantID),
		order.setDestination(destination, destinationAddress),
		order.setAmount(amountCents),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	order.status = Pending
	order.paymentStatus = PaymentUnpaid

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	destination kernel.GeoPoint,
	destinationAddress string,
	amountCents int64,
	items []Item,
	status Status,
	paymentStatus PaymentStatus,
	droneID *kernel.UUID,
) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setRestaurantID(restaurantID),
		order.setDestination(destination, destinationAddress),
		order.setAmount(amountCents),
		order.setItems(items),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if droneID != nil {
		if err := droneID.Validate(); err != nil {
			return nil, err
		}
		assigned := *droneID
		order.droneID = &assigned
	}

	order.status = status
	order.paymentStatus = paymentStatus

	return order, nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	if other == nil {
		return false
	}
	return o.id.IsEqual(other.id)
}

// Validate checks if the Order was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the unique identifier of the order.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer reference.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the preparing restaurant reference.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Destination returns the delivery target position.
func (o *Order) Destination() kernel.GeoPoint {
	return o.destination
}

// DestinationAddress returns the human-readable delivery address.
func (o *Order) DestinationAddress() string {
	return o.destinationAddress
}

// AmountCents returns the order total in minor currency units.
func (o *Order) AmountCents() int64 {
	return o.amountCents
}

// Items returns the order lines.
// The returned slice is a copy to prevent external modification.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// Status returns the lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the payment state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// DroneID returns the assigned drone reference, or nil before shipping.
// The returned pointer is a copy.
func (o *Order) DroneID() *kernel.UUID {
	if o.droneID == nil {
		return nil
	}
	assigned := *o.droneID
	return &assigned
}

// ChangeStatus requests a transition of the order state machine.
// The edge table is consulted exactly once: a missing edge fails with a
// StateConflictError, and an edge the requester's role may not take fails
// with a NotAuthorizedError.
//
// Cancellation of an unfinished payment is folded into the transition: when
// the order is cancelled before payment completed, the payment is cancelled
// with it. A confirmed payment survives cancellation until an admin refund.
func (o *Order) ChangeStatus(to Status, requester Role) error {
	if err := errors.Join(to.Validate(), requester.Validate()); err != nil {
		return err
	}

	roles, edgeExists := allowedRoles(o.status, to)
	if !edgeExists {
		return errs.NewStateConflictError("order", o.status.String(), "transition to "+to.String())
	}

	permitted := false
	for _, role := range roles {
		if role == requester {
			permitted = true
			break
		}
	}
	if !permitted {
		return errs.NewNotAuthorizedError(
			requester.String(), "move order from "+o.status.String()+" to "+to.String())
	}

	switch to {
	case Cancelled:
		if next, err := o.paymentStatus.Cancel(); err == nil {
			o.paymentStatus = next
		}
	case Refunded:
		next, err := o.paymentStatus.Refund()
		if err != nil {
			return err
		}
		o.paymentStatus = next
	}

	o.status = to
	return nil
}

// ConfirmPayment applies a payment-confirmed signal: the payment becomes
// Paid and a pending order advances to Confirmed.
func (o *Order) ConfirmPayment() error {
	nextPayment, err := o.paymentStatus.Confirm()
	if err != nil {
		return err
	}

	o.paymentStatus = nextPayment

	if o.status == Pending {
		return o.ChangeStatus(Confirmed, RoleSystem)
	}
	return nil
}

// MarkShipped records a successful reservation: the order moves to Shipped
// and remembers the assigned drone.
func (o *Order) MarkShipped(droneID kernel.UUID) error {
	if err := droneID.Validate(); err != nil {
		return err
	}

	if err := o.ChangeStatus(Shipped, RoleSystem); err != nil {
		return err
	}

	assigned := droneID
	o.droneID = &assigned
	return nil
}

// MarkDelivered applies a delivery-completed or arrival signal.
/// Idempotent on redelivery: an order that is already Delivered or in a
// terminal state is left untouched with a no-op success.
func (o *Order) MarkDelivered() error {
	if o.status == Delivered || o.status.IsTerminal() {
		return nil
	}

	return o.ChangeStatus(Delivered, RoleSystem)
}

// setID sets the order identifier with validation.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	o.id = id
	return nil
}

// setCustomerID sets the customer reference with validation.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	o.customerID = customerID
	return nil
}

// setRestaurantID sets the restaurant reference with validation.
func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	o.restaurantID = restaurantID
	return nil
}

// setDestination sets the delivery target with validation.
func (o *Order) setDestination(destination kernel.GeoPoint, address string) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	if address == "" {
		return errs.NewValueIsRequiredError("destinationAddress")
	}

	o.destination = destination
	o.destinationAddress = address
	return nil
}

// setAmount sets the order total with validation.
func (o *Order) setAmount(amountCents int64) error {
	if amountCents <= 0 {
		return errs.NewValueIsInvalidError("amountCents")
	}

	o.amountCents = amountCents
	return nil
}

// setItems sets the order lines with validation.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
