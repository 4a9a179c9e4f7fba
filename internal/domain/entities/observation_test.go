package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservation_Validate(t *testing.T) {
	t.Run("valid observation", func(t *testing.T) {
		obs := &Observation{
			City:     "Kyiv",
			Temp:     20.5,
			Humidity: 65,
			Pressure: 1013,
		}

		err := obs.Validate()
		assert.NoError(t, err)
	})

	t.Run("empty city", func(t *testing.T) {
		obs := &Observation{
			City:     "",
			Temp:     20.5,
			Humidity: 65,
			Pressure: 1013,
		}

		err := obs.Validate()
		assert.Error(t, err)
		assert.Equal(t, "city: cannot be empty", err.Error())
	})

	t.Run("humidity too low", func(t *testing.T) {
		obs := &Observation{City: "Kyiv", Humidity: -1, Pressure: 1013}

		err := obs.Validate()
		assert.Error(t, err)
		assert.Equal(t, "humidity: must be between 0 and 100", err.Error())
	})

	t.Run("humidity too high", func(t *testing.T) {
		obs := &Observation{City: "Kyiv", Humidity: 101, Pressure: 1013}

		err := obs.Validate()
		assert.Error(t, err)
		assert.Equal(t, "humidity: must be between 0 and 100", err.Error())
	})

	t.Run("humidity boundaries are inclusive", func(t *testing.T) {
		low := &Observation{City: "Kyiv", Humidity: 0, Pressure: 1013}
		high := &Observation{City: "Kyiv", Humidity: 100, Pressure: 1013}

		assert.NoError(t, low.Validate())
		assert.NoError(t, high.Validate())
	})

	t.Run("zero pressure", func(t *testing.T) {
		obs := &Observation{City: "Kyiv", Humidity: 50, Pressure: 0}

		err := obs.Validate()
		assert.Error(t, err)
		assert.Equal(t, "pressure: must be positive", err.Error())
	})

	t.Run("negative pressure", func(t *testing.T) {
		obs := &Observation{City: "Kyiv", Humidity: 50, Pressure: -5}

		err := obs.Validate()
		assert.Error(t, err)
	})
}

func TestNewObservation(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		obs, err := NewObservation("Kyiv", 20.5, 65, 1013)

		require.NoError(t, err)
		assert.Equal(t, "Kyiv", obs.GetCity())
		assert.Equal(t, 20.5, obs.Temp)
	})

	t.Run("invalid input is rejected at the boundary", func(t *testing.T) {
		obs, err := NewObservation("", 20.5, 65, 1013)

		assert.Error(t, err)
		assert.Nil(t, obs)
	})
}

func TestObservation_ToMap(t *testing.T) {
	obs := &Observation{
		City:     "Lviv",
		Temp:     18.2,
		Humidity: 70,
		Pressure: 1008,
	}

	result := obs.ToMap()

	assert.Equal(t, "Lviv", result["city"])
	assert.Equal(t, 18.2, result["temp"])
	assert.Equal(t, 70.0, result["humidity"])
	assert.Equal(t, 1008.0, result["pressure"])
}

func TestErrorKinds(t *testing.T) {
	wrapped := func(kind error) error {
		return errors.Join(kind)
	}

	assert.True(t, errors.Is(wrapped(ErrConfiguration), ErrConfiguration))
	assert.True(t, errors.Is(wrapped(ErrInvalidInput), ErrInvalidInput))
	assert.True(t, errors.Is(wrapped(ErrWeatherData), ErrWeatherData))
	assert.True(t, errors.Is(wrapped(ErrAnalysis), ErrAnalysis))
	assert.False(t, errors.Is(ErrAnalysis, ErrWeatherData))
}

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{Field: "city", Reason: "cannot be empty"}
	assert.Equal(t, "city: cannot be empty", err.Error())
}
