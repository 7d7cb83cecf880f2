package guard_test

import (
	"errors"
	"testing"

	"dronefleet/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("constructed_guard_validates", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_has_meaningful_message", func(t *testing.T) {
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuardUsage demonstrates the intended embedding pattern.
func TestConstructorGuardUsage(t *testing.T) {
	type telemetrySample struct {
		droneID string
		guard   guard.ConstructorGuard
	}

	var errSampleNotConstructed = errors.New("sample must be created via newTelemetrySample")

	newTelemetrySample := func(droneID string) (telemetrySample, error) {
		if droneID == "" {
			return telemetrySample{}, errors.New("drone id is required")
		}
		return telemetrySample{droneID: droneID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction", func(t *testing.T) {
		sample, err := newTelemetrySample("drone-7")

		require.NoError(t, err)
		require.NoError(t, sample.guard.Validate(errSampleNotConstructed))
		assert.Equal(t, "drone-7", sample.droneID)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var sample telemetrySample

		err := sample.guard.Validate(errSampleNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errSampleNotConstructed, err)
	})
}
