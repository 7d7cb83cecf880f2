package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dronefleet/internal/core/domain/model/drone"
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/core/domain/services"
	"dronefleet/internal/pkg/errs"
)

// One degree of longitude on the equator is EarthRadiusKm * pi / 180 km, so
// destinations along the equator give exact haversine distances.
func equatorPointAtKm(t *testing.T, km float64) kernel.GeoPoint {
	t.Helper()
	degreesPerKm := 180 / (kernel.EarthRadiusKm * 3.141592653589793)
	point, err := kernel.NewGeoPoint(0, km*degreesPerKm)
	require.NoError(t, err)
	return point
}

func newDroneAtEquator(t *testing.T, batteryPercent float64) *drone.Drone {
	t.Helper()
	origin, err := kernel.NewGeoPoint(0, 0)
	require.NoError(t, err)

	d, err := drone.NewDrone(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "DJI-054", origin, 2.5, 60)
	require.NoError(t, err)

	require.NoError(t, d.UpdatePosition(origin, &batteryPercent))
	return d
}

func TestNewFlightPlanner(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		_, err := services.NewFlightPlanner(10, 5)
		assert.NoError(t, err)
	})

	t.Run("max distance must be positive", func(t *testing.T) {
		_, err := services.NewFlightPlanner(0, 5)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("consumption must be positive", func(t *testing.T) {
		_, err := services.NewFlightPlanner(10, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestFlightPlanner_Plan(t *testing.T) {
	planner, err := services.NewFlightPlanner(10, 5)
	require.NoError(t, err)

	t.Run("feasible trip returns distance, eta, and battery", func(t *testing.T) {
		d := newDroneAtEquator(t, 50)
		destination := equatorPointAtKm(t, 4.9)

		plan, err := planner.Plan(d, destination)

		require.NoError(t, err)
		assert.InDelta(t, 4.9, plan.DistanceKm, 1e-6)
		assert.Equal(t, 5, plan.EtaMinutes) // 4.9 km at 60 km/h rounds up
		assert.InDelta(t, 24.5, plan.BatteryRequiredPercent, 1e-5)
	})

	t.Run("battery 50 at 5 per km allows just under 6 km", func(t *testing.T) {
		d := newDroneAtEquator(t, 50)

		_, err := planner.Plan(d, equatorPointAtKm(t, 5.99))
		assert.NoError(t, err)
	})

	t.Run("battery 50 at 5 per km rejects 6.01 km", func(t *testing.T) {
		d := newDroneAtEquator(t, 50)

		_, err := planner.Plan(d, equatorPointAtKm(t, 6.01))

		assert.ErrorIs(t, err, errs.ErrInsufficientBattery)
	})

	t.Run("trip beyond max range is rejected before the battery check", func(t *testing.T) {
		d := newDroneAtEquator(t, 100)

		_, err := planner.Plan(d, equatorPointAtKm(t, 12))

		assert.ErrorIs(t, err, errs.ErrRangeExceeded)
	})

	t.Run("unconstructed destination is rejected", func(t *testing.T) {
		d := newDroneAtEquator(t, 100)

		_, err := planner.Plan(d, kernel.GeoPoint{})

		assert.Error(t, err)
	})
}
