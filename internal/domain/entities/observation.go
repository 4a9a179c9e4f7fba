package entities

// Observation is one city's current weather reading: temperature in
// degrees Celsius, relative humidity in percent, pressure in hPa.
// Immutable once produced; equality is value equality.
type Observation struct {
	City     string  `json:"city"`
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
	Pressure float64 `json:"pressure"`
}

func NewObservation(city string, temp, humidity, pressure float64) (*Observation, error) {
	obs := &Observation{
		City:     city,
		Temp:     temp,
		Humidity: humidity,
		Pressure: pressure,
	}

	if err := obs.Validate(); err != nil {
		return nil, err
	}

	return obs, nil
}

func (o *Observation) GetCity() string { return o.City }

func (o *Observation) Validate() error {
	if o.City == "" {
		return ErrInvalidCity
	}
	if o.Humidity < 0 || o.Humidity > 100 {
		return ErrInvalidHumidity
	}
	if o.Pressure <= 0 {
		return ErrInvalidPressure
	}
	return nil
}

func (o *Observation) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"city":     o.City,
		"temp":     o.Temp,
		"humidity": o.Humidity,
		"pressure": o.Pressure,
	}
}
