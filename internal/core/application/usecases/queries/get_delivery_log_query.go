package queries

import (
	"errors"
	"time"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/errs"
	"dronefleet/internal/pkg/guard"
)

var (
	ErrGetDeliveryLogQueryIsNotConstructed = errors.New(
		"GetDeliveryLogQuery must be created via NewGetDeliveryLogQuery constructor",
	)
)

// GetDeliveryLogQuery retrieves an order's delivery record with its full GPS
// trail. When an order has flown more than once (a cancelled attempt followed
// by a re-assignment), the most recent record is returned.
//
// Example:
//
//	query, err := NewGetDeliveryLogQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetDeliveryLogQueryHandler(db)
//
//	record, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get delivery record: %w", err)
//	}
//
//	fmt.Printf("Delivery %s: %s, %d trail points\n",
//	    record.ID, record.Status, len(record.Samples))
type GetDeliveryLogQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetDeliveryLogQuery creates a query for an order's delivery record.
func NewGetDeliveryLogQuery(orderID kernel.UUID) (GetDeliveryLogQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetDeliveryLogQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	return GetDeliveryLogQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose delivery record is requested.
func (q GetDeliveryLogQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryLogQueryIsNotConstructed if validation fails.
func (q GetDeliveryLogQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryLogQueryIsNotConstructed)
}

// GetDeliveryLogQueryResponse represents a delivery record with its trail.
type GetDeliveryLogQueryResponse struct {
	ID                     kernel.UUID
	OrderID                kernel.UUID
	DroneID                kernel.UUID
	Status                 string
	Destination            kernel.GeoPoint
	DestinationAddress     string
	EstimatedDistanceKm    float64
	EstimatedEtaMinutes    int
	ActualDistanceKm       *float64
	BatteryConsumedPercent *float64
	StartedAt              *time.Time
	ArrivedAt              *time.Time
	EndedAt                *time.Time
	Samples                []GetDeliveryLogQuerySample
}

// GetDeliveryLogQuerySample represents one GPS trail point.
type GetDeliveryLogQuerySample struct {
	Position       kernel.GeoPoint
	RecordedAt     time.Time
	BatteryPercent *float64
	SpeedKmh       *float64
	AltitudeMeters *float64
}
