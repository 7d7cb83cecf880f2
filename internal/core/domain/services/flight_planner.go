package services

import (
	"dronefleet/internal/core/domain/model/drone"
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/errs"
)

// FlightPlan is the feasibility verdict for one assignment: the planned
// distance, the estimated flight time at the drone's cruise speed, and the
// battery the trip will consume.
type FlightPlan struct {
	DistanceKm             float64
	EtaMinutes             int
	BatteryRequiredPercent float64
}

// FlightPlanner is a domain service that decides whether a drone can fly an
// order to a destination.
//
// A plan is rejected when the distance exceeds the configured maximum range
// (RangeExceededError) or when the drone would land with less than the
// reserve floor of battery left (InsufficientBatteryError). Both verdicts are
// reported to the caller synchronously as a rejected assignment, never
// silently retried.
type FlightPlanner struct {
	maxDistanceKm    float64
	consumptionPerKm float64
}

// NewFlightPlanner creates a FlightPlanner with the configured maximum range
// and linear battery consumption rate. Both must be positive.
func NewFlightPlanner(maxDistanceKm float64, consumptionPerKm float64) (FlightPlanner, error) {
	if maxDistanceKm <= 0 {
		return FlightPlanner{}, errs.NewValueIsInvalidError("maxDistanceKm")
	}
	if consumptionPerKm <= 0 {
		return FlightPlanner{}, errs.NewValueIsInvalidError("consumptionPerKm")
	}

	return FlightPlanner{
		maxDistanceKm:    maxDistanceKm,
		consumptionPerKm: consumptionPerKm,
	}, nil
}

// ConsumptionPerKm returns the configured linear battery consumption rate.
func (p FlightPlanner) ConsumptionPerKm() float64 {
	return p.consumptionPerKm
}

// Plan evaluates the feasibility of flying the order from the drone's
// current position to the destination.
//
// Returns the computed distance, ETA, and required battery on success.
// Fails with a RangeExceededError when the trip exceeds the maximum range,
// and with an InsufficientBatteryError when the drone cannot make the trip
// and keep the reserve floor.
func (p FlightPlanner) Plan(d *drone.Drone, destination kernel.GeoPoint) (FlightPlan, error) {
	if err := d.Validate(); err != nil {
		return FlightPlan{}, err
	}

	distance, err := d.CurrentPosition().DistanceKm(destination)
	if err != nil {
		return FlightPlan{}, err
	}

	if distance > p.maxDistanceKm {
		return FlightPlan{}, errs.NewRangeExceededError(distance, p.maxDistanceKm)
	}

	required := kernel.BatteryConsumed(distance, p.consumptionPerKm)
	if !kernel.HasSufficientBattery(d.BatteryPercent(), distance, p.consumptionPerKm) {
		return FlightPlan{}, errs.NewInsufficientBatteryError(
			d.BatteryPercent(), required, kernel.BatteryReserveFloor)
	}

	eta, err := kernel.EtaMinutes(distance, d.MaxSpeedKmh())
	if err != nil {
		return FlightPlan{}, err
	}

	return FlightPlan{
		DistanceKm:             distance,
		EtaMinutes:             eta,
		BatteryRequiredPercent: required,
	}, nil
}
