package deliverylog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dronefleet/internal/core/domain/model/deliverylog"
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/errs"
)

func TestNewDeliveryLog(t *testing.T) {
	destination := mustNewGeoPoint(t, 10.8231, 106.6297)

	t.Run("opens in preparing state", func(t *testing.T) {
		log, err := deliverylog.NewDeliveryLog(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			destination, "12 Nguyen Hue", 9.3, 10)

		require.NoError(t, err)
		assert.NoError(t, log.Validate())
		assert.Equal(t, deliverylog.Preparing, log.Status())
		assert.True(t, log.IsOpen())
		assert.Empty(t, log.Samples())
		assert.Nil(t, log.StartedAt())
		assert.Nil(t, log.ActualDistanceKm())
		assert.InDelta(t, 9.3, log.EstimatedDistanceKm(), 0)
		assert.Equal(t, 10, log.EstimatedEtaMinutes())
	})

	t.Run("requires a destination address", func(t *testing.T) {
		_, err := deliverylog.NewDeliveryLog(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			destination, "", 9.3, 10)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects negative estimates", func(t *testing.T) {
		_, err := deliverylog.NewDeliveryLog(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			destination, "12 Nguyen Hue", -1, 10)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDeliveryLog_AppendSample(t *testing.T) {
	t.Run("first sample starts the flight", func(t *testing.T) {
		log := mustOpenLog(t)
		at := time.Now()
		sample := mustNewSample(t, 10.7769, 106.7009, at)

		err := log.AppendSample(sample)

		require.NoError(t, err)
		assert.Equal(t, deliverylog.InFlight, log.Status())
		require.NotNil(t, log.StartedAt())
		assert.True(t, log.StartedAt().Equal(at))
		assert.Len(t, log.Samples(), 1)
	})

	t.Run("later samples keep insertion order", func(t *testing.T) {
		log := mustOpenLog(t)
		base := time.Now()

		first := mustNewSample(t, 10.7769, 106.7009, base)
		second := mustNewSample(t, 10.7900, 106.6800, base.Add(30*time.Second))
		third := mustNewSample(t, 10.8231, 106.6297, base.Add(time.Minute))

		require.NoError(t, log.AppendSample(first))
		require.NoError(t, log.AppendSample(second))
		require.NoError(t, log.AppendSample(third))

		samples := log.Samples()
		require.Len(t, samples, 3)
		assert.True(t, samples[0].RecordedAt().Equal(base))
		assert.True(t, samples[2].RecordedAt().Equal(base.Add(time.Minute)))
		require.NotNil(t, log.StartedAt())
		assert.True(t, log.StartedAt().Equal(base))
	})

	t.Run("terminal record rejects telemetry", func(t *testing.T) {
		log := mustOpenLog(t)
		require.NoError(t, log.Cancel(time.Now()))

		err := log.AppendSample(mustNewSample(t, 10.7769, 106.7009, time.Now()))

		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Empty(t, log.Samples())
	})

	t.Run("unconstructed sample is rejected", func(t *testing.T) {
		log := mustOpenLog(t)

		err := log.AppendSample(deliverylog.GpsSample{})

		assert.Error(t, err)
		assert.Equal(t, deliverylog.Preparing, log.Status())
	})
}

func TestDeliveryLog_MarkArrived(t *testing.T) {
	t.Run("in-flight record arrives", func(t *testing.T) {
		log := mustOpenLog(t)
		require.NoError(t, log.AppendSample(mustNewSample(t, 10.7769, 106.7009, time.Now())))
		at := time.Now()

		err := log.MarkArrived(at)

		require.NoError(t, err)
		assert.Equal(t, deliverylog.Arrived, log.Status())
		require.NotNil(t, log.ArrivedAt())
		assert.True(t, log.ArrivedAt().Equal(at))
	})

	t.Run("preparing record cannot arrive", func(t *testing.T) {
		log := mustOpenLog(t)

		err := log.MarkArrived(time.Now())

		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestDeliveryLog_Complete(t *testing.T) {
	t.Run("sums consecutive haversine legs", func(t *testing.T) {
		log := mustOpenLog(t)
		base := time.Now()

		points := []kernel.GeoPoint{
			mustNewGeoPoint(t, 10.7769, 106.7009),
			mustNewGeoPoint(t, 10.7900, 106.6800),
			mustNewGeoPoint(t, 10.8100, 106.6500),
			mustNewGeoPoint(t, 10.8231, 106.6297),
		}
		var want float64
		for i, p := range points {
			sample, err := deliverylog.NewGpsSample(p, base.Add(time.Duration(i)*time.Minute), nil, nil, nil)
			require.NoError(t, err)
			require.NoError(t, log.AppendSample(sample))
			if i > 0 {
				leg, err := points[i-1].DistanceKm(p)
				require.NoError(t, err)
				want += leg
			}
		}
		require.NoError(t, log.MarkArrived(base.Add(5*time.Minute)))

		endedAt := base.Add(6 * time.Minute)
		err := log.Complete(5, endedAt)

		require.NoError(t, err)
		assert.Equal(t, deliverylog.Completed, log.Status())
		require.NotNil(t, log.ActualDistanceKm())
		assert.InDelta(t, want, *log.ActualDistanceKm(), 1e-9)
		require.NotNil(t, log.BatteryConsumedPercent())
		assert.InDelta(t, want*5, *log.BatteryConsumedPercent(), 1e-9)
		require.NotNil(t, log.EndedAt())
		assert.True(t, log.EndedAt().Equal(endedAt))
		assert.False(t, log.IsOpen())
	})

	t.Run("in-flight record completes when arrival was skipped", func(t *testing.T) {
		log := mustOpenLog(t)
		require.NoError(t, log.AppendSample(mustNewSample(t, 10.7769, 106.7009, time.Now())))

		err := log.Complete(5, time.Now())

		require.NoError(t, err)
		assert.Equal(t, deliverylog.Completed, log.Status())
	})

	t.Run("single sample yields zero distance", func(t *testing.T) {
		log := mustOpenLog(t)
		require.NoError(t, log.AppendSample(mustNewSample(t, 10.7769, 106.7009, time.Now())))

		require.NoError(t, log.Complete(5, time.Now()))

		require.NotNil(t, log.ActualDistanceKm())
		assert.InDelta(t, 0.0, *log.ActualDistanceKm(), 0)
	})

	t.Run("preparing record cannot complete", func(t *testing.T) {
		log := mustOpenLog(t)

		err := log.Complete(5, time.Now())

		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("completion is not repeatable", func(t *testing.T) {
		log := mustOpenLog(t)
		require.NoError(t, log.AppendSample(mustNewSample(t, 10.7769, 106.7009, time.Now())))
		require.NoError(t, log.Complete(5, time.Now()))

		err := log.Complete(5, time.Now())

		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestDeliveryLog_CancelAndFail(t *testing.T) {
	t.Run("open record is cancelled", func(t *testing.T) {
		log := mustOpenLog(t)

		err := log.Cancel(time.Now())

		require.NoError(t, err)
		assert.Equal(t, deliverylog.Cancelled, log.Status())
		assert.NotNil(t, log.EndedAt())
	})

	t.Run("in-flight record fails", func(t *testing.T) {
		log := mustOpenLog(t)
		require.NoError(t, log.AppendSample(mustNewSample(t, 10.7769, 106.7009, time.Now())))

		err := log.Fail(time.Now())

		require.NoError(t, err)
		assert.Equal(t, deliverylog.Failed, log.Status())
	})

	t.Run("terminal record cannot be cancelled again", func(t *testing.T) {
		log := mustOpenLog(t)
		require.NoError(t, log.Fail(time.Now()))

		err := log.Cancel(time.Now())

		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestNewGpsSample(t *testing.T) {
	position := mustNewGeoPoint(t, 10.7769, 106.7009)

	t.Run("carries optional readings", func(t *testing.T) {
		battery := 82.0
		speed := 45.0
		altitude := 120.0

		sample, err := deliverylog.NewGpsSample(position, time.Now(), &battery, &speed, &altitude)

		require.NoError(t, err)
		require.NotNil(t, sample.BatteryPercent())
		assert.InDelta(t, 82.0, *sample.BatteryPercent(), 0)
		require.NotNil(t, sample.SpeedKmh())
		assert.InDelta(t, 45.0, *sample.SpeedKmh(), 0)
		require.NotNil(t, sample.AltitudeMeters())
		assert.InDelta(t, 120.0, *sample.AltitudeMeters(), 0)
	})

	t.Run("omitted readings stay nil", func(t *testing.T) {
		sample, err := deliverylog.NewGpsSample(position, time.Now(), nil, nil, nil)

		require.NoError(t, err)
		assert.Nil(t, sample.BatteryPercent())
		assert.Nil(t, sample.SpeedKmh())
		assert.Nil(t, sample.AltitudeMeters())
	})

	t.Run("zero timestamp is rejected", func(t *testing.T) {
		_, err := deliverylog.NewGpsSample(position, time.Time{}, nil, nil, nil)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("battery out of range is rejected", func(t *testing.T) {
		battery := 101.0

		_, err := deliverylog.NewGpsSample(position, time.Now(), &battery, nil, nil)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("negative speed is rejected", func(t *testing.T) {
		speed := -1.0

		_, err := deliverylog.NewGpsSample(position, time.Now(), nil, &speed, nil)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func mustOpenLog(t *testing.T) *deliverylog.DeliveryLog {
	t.Helper()
	destination := mustNewGeoPoint(t, 10.8231, 106.6297)
	log, err := deliverylog.NewDeliveryLog(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		destination, "12 Nguyen Hue", 9.3, 10)
	require.NoError(t, err)
	return log
}

func mustNewSample(t *testing.T, lat, lng float64, at time.Time) deliverylog.GpsSample {
	t.Helper()
	sample, err := deliverylog.NewGpsSample(mustNewGeoPoint(t, lat, lng), at, nil, nil, nil)
	require.NoError(t, err)
	return sample
}

func mustNewGeoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}
