package entities

import "errors"

// Error kinds surfaced by the fetching and analysis pipeline. Callers
// match them with errors.Is; the wrapped message carries the detail.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrInvalidInput  = errors.New("invalid input")
	ErrWeatherData   = errors.New("weather data error")
	ErrAnalysis      = errors.New("analysis error")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

var (
	ErrInvalidCity     = ValidationError{Field: "city", Reason: "cannot be empty"}
	ErrInvalidHumidity = ValidationError{Field: "humidity", Reason: "must be between 0 and 100"}
	ErrInvalidPressure = ValidationError{Field: "pressure", Reason: "must be positive"}
)
