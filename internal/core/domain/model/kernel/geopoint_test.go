package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dronefleet/internal/core/domain/model/kernel"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		wantErr  bool
	}{
		{
			name: "valid point",
			lat:  10.7769,
			lng:  106.7009,
		},
		{
			name: "valid point at min bounds",
			lat:  kernel.LatitudeMin,
			lng:  kernel.LongitudeMin,
		},
		{
			name: "valid point at max bounds",
			lat:  kernel.LatitudeMax,
			lng:  kernel.LongitudeMax,
		},
		{
			name: "valid point at origin",
			lat:  0,
			lng:  0,
		},
		{
			name:    "latitude too small",
			lat:     -90.0001,
			lng:     0,
			wantErr: true,
		},
		{
			name:    "latitude too large",
			lat:     90.0001,
			lng:     0,
			wantErr: true,
		},
		{
			name:    "longitude too small",
			lat:     0,
			lng:     -180.0001,
			wantErr: true,
		},
		{
			name:    "longitude too large",
			lat:     0,
			lng:     180.0001,
			wantErr: true,
		},
		{
			name:    "both out of bounds",
			lat:     -91,
			lng:     181,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := kernel.NewGeoPoint(tt.lat, tt.lng)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Zero(t, point)
			} else {
				require.NoError(t, err)
				assert.InDelta(t, tt.lat, point.Latitude(), 0)
				assert.InDelta(t, tt.lng, point.Longitude(), 0)
				assert.NoError(t, point.Validate())
			}
		})
	}
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("valid point", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(10.7769, 106.7009)
		require.NoError(t, err)
		assert.NoError(t, point.Validate())
	})

	t.Run("zero value point", func(t *testing.T) {
		var point kernel.GeoPoint
		err := point.Validate()
		assert.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	tests := []struct {
		name    string
		a, b    kernel.GeoPoint
		want    bool
		wantErr bool
	}{
		{
			name: "equal points",
			a:    mustNewGeoPoint(t, 10.7769, 106.7009),
			b:    mustNewGeoPoint(t, 10.7769, 106.7009),
			want: true,
		},
		{
			name: "different latitude",
			a:    mustNewGeoPoint(t, 10.7769, 106.7009),
			b:    mustNewGeoPoint(t, 10.8231, 106.7009),
			want: false,
		},
		{
			name: "different longitude",
			a:    mustNewGeoPoint(t, 10.7769, 106.7009),
			b:    mustNewGeoPoint(t, 10.7769, 106.6297),
			want: false,
		},
		{
			name:    "first point invalid",
			a:       kernel.GeoPoint{},
			b:       mustNewGeoPoint(t, 10.7769, 106.7009),
			wantErr: true,
		},
		{
			name:    "second point invalid",
			a:       mustNewGeoPoint(t, 10.7769, 106.7009),
			b:       kernel.GeoPoint{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.IsEqual(tt.b)

			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("known city distance", func(t *testing.T) {
		// District 1 to Go Vap, Ho Chi Minh City.
		a := mustNewGeoPoint(t, 10.7769, 106.7009)
		b := mustNewGeoPoint(t, 10.8231, 106.6297)

		d, err := a.DistanceKm(b)
		require.NoError(t, err)
		assert.InDelta(t, 9.32, d, 0.1)
	})

	t.Run("zero for identical points", func(t *testing.T) {
		p := mustNewGeoPoint(t, 10.7769, 106.7009)
		d, err := p.DistanceKm(p)
		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := mustNewGeoPoint(t, 10.7769, 106.7009)
		b := mustNewGeoPoint(t, 21.0285, 105.8542)

		ab, err := a.DistanceKm(b)
		require.NoError(t, err)
		ba, err := b.DistanceKm(a)
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("triangle inequality", func(t *testing.T) {
		a := mustNewGeoPoint(t, 10.7769, 106.7009)
		b := mustNewGeoPoint(t, 10.8231, 106.6297)
		c := mustNewGeoPoint(t, 10.8700, 106.8030)

		ab, err := a.DistanceKm(b)
		require.NoError(t, err)
		bc, err := b.DistanceKm(c)
		require.NoError(t, err)
		ac, err := a.DistanceKm(c)
		require.NoError(t, err)

		assert.LessOrEqual(t, ac, ab+bc+1e-9)
	})

	t.Run("unconstructed point", func(t *testing.T) {
		a := mustNewGeoPoint(t, 10.7769, 106.7009)
		var b kernel.GeoPoint

		_, err := a.DistanceKm(b)
		assert.Error(t, err)
	})
}

func TestEtaMinutes(t *testing.T) {
	tests := []struct {
		name       string
		distanceKm float64
		speedKmh   float64
		want       int
		wantErr    bool
	}{
		{
			name:       "exact hour",
			distanceKm: 40,
			speedKmh:   40,
			want:       60,
		},
		{
			name:       "rounds up",
			distanceKm: 9.9,
			speedKmh:   60,
			want:       10, // 9.9 km at 60 km/h = 9.9 minutes
		},
		{
			name:       "zero distance",
			distanceKm: 0,
			speedKmh:   40,
			want:       0,
		},
		{
			name:       "zero speed",
			distanceKm: 10,
			speedKmh:   0,
			wantErr:    true,
		},
		{
			name:       "negative speed",
			distanceKm: 10,
			speedKmh:   -5,
			wantErr:    true,
		},
		{
			name:       "negative distance",
			distanceKm: -1,
			speedKmh:   40,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := kernel.EtaMinutes(tt.distanceKm, tt.speedKmh)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBatteryConsumed(t *testing.T) {
	assert.InDelta(t, 30.0, kernel.BatteryConsumed(6, 5), 1e-9)
	assert.InDelta(t, 0.0, kernel.BatteryConsumed(0, 5), 1e-9)
}

func TestHasSufficientBattery(t *testing.T) {
	tests := []struct {
		name             string
		currentPercent   float64
		distanceKm       float64
		consumptionPerKm float64
		want             bool
	}{
		{
			name:             "lands exactly on the reserve floor",
			currentPercent:   50,
			distanceKm:       6,
			consumptionPerKm: 5,
			want:             true, // 50 - 5*6 = 20
		},
		{
			name:             "one meter past the feasible range",
			currentPercent:   50,
			distanceKm:       6.001,
			consumptionPerKm: 5,
			want:             false,
		},
		{
			name:             "comfortable margin",
			currentPercent:   100,
			distanceKm:       10,
			consumptionPerKm: 5,
			want:             true,
		},
		{
			name:             "already below floor",
			currentPercent:   15,
			distanceKm:       0,
			consumptionPerKm: 5,
			want:             false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kernel.HasSufficientBattery(tt.currentPercent, tt.distanceKm, tt.consumptionPerKm)
			assert.Equal(t, tt.want, got)
		})
	}
}

func mustNewGeoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}
