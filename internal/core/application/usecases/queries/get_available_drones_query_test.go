package queries_test

import (
	"testing"

	"dronefleet/internal/core/application/usecases/queries"
	"dronefleet/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAvailableDronesQuery_Valid(t *testing.T) {
	restaurantID := kernel.NewUUID()

	query, err := queries.NewGetAvailableDronesQuery(restaurantID, 30)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, restaurantID, query.RestaurantID())
	assert.InDelta(t, 30.0, query.MinBatteryPercent(), 0.0001)
}

func TestNewGetAvailableDronesQuery_InvalidInput(t *testing.T) {
	tests := []struct {
		name              string
		restaurantID      kernel.UUID
		minBatteryPercent float64
	}{
		{"empty restaurant id", kernel.UUID{}, 30},
		{"negative battery floor", kernel.NewUUID(), -1},
		{"battery floor above hundred", kernel.NewUUID(), 100.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewGetAvailableDronesQuery(tt.restaurantID, tt.minBatteryPercent)
			require.Error(t, err)
		})
	}
}

func TestGetAvailableDronesQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAvailableDronesQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAvailableDronesQueryIsNotConstructed)
}
