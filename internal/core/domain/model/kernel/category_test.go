package kernel_test

import (
	"testing"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVehicleCategory(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		for _, s := range []string{"CAR", "car", "Car", "  cAr  "} {
			category, err := kernel.ParseVehicleCategory(s)
			require.NoError(t, err)
			assert.Equal(t, kernel.VehicleCar, category)
		}
	})

	t.Run("accepts every member of the enumeration", func(t *testing.T) {
		for _, name := range []string{"BIKE", "CAR", "AUTO", "BUS", "LORRY"} {
			category, err := kernel.ParseVehicleCategory(name)
			require.NoError(t, err)
			assert.Equal(t, name, category.String())
			require.NoError(t, category.Validate())
		}
	})

	t.Run("rejects values outside the enumeration", func(t *testing.T) {
		for _, s := range []string{"", "TRUCK", "bicycle", "CAR "} {
			_, err := kernel.ParseVehicleCategory(s)
			if s == "CAR " {
				require.NoError(t, err) // trailing whitespace is trimmed
				continue
			}
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "input %q", s)
		}
	})
}

func TestParseServiceCategory(t *testing.T) {
	t.Run("accepts every member of the enumeration", func(t *testing.T) {
		for _, name := range []string{"PUNCTURE", "BATTERY", "ENGINE", "TRANSMISSION", "LIGHTS", "BRAKE"} {
			category, err := kernel.ParseServiceCategory(name)
			require.NoError(t, err)
			assert.Equal(t, name, category.String())
		}
	})

	t.Run("normalizes case", func(t *testing.T) {
		category, err := kernel.ParseServiceCategory("puncture")
		require.NoError(t, err)
		assert.Equal(t, kernel.ServicePuncture, category)
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := kernel.ParseServiceCategory("TOWING")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCategory_ZeroValueIsInvalid(t *testing.T) {
	require.Error(t, kernel.VehicleUnknown.Validate())
	require.Error(t, kernel.ServiceUnknown.Validate())
	assert.Equal(t, "UNKNOWN", kernel.VehicleUnknown.String())
	assert.Equal(t, "UNKNOWN", kernel.ServiceUnknown.String())
}
