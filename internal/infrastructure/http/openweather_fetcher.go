package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sofiakaramia/Data-Storm/internal/domain/entities"
	"github.com/sofiakaramia/Data-Storm/internal/domain/ports"
	"github.com/sofiakaramia/Data-Storm/internal/pkg/logger"
)

const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// healthCheckCity is a well-known city used to probe the API.
const healthCheckCity = "London"

type OpenWeatherFetcher struct {
	client  *http.Client
	baseURL string
	apiKey  string
	units   string
	logger  logger.Logger
}

func NewOpenWeatherFetcher(baseURL, apiKey, units string) (ports.Fetcher, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: API key must be a non-empty string", entities.ErrConfiguration)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if units == "" {
		units = "metric"
	}

	return &OpenWeatherFetcher{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		units:   units,
		logger:  logger.New("info", "development").WithField("component", "openweather_fetcher"),
	}, nil
}

type openWeatherResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
}

// FetchCurrent performs a single request for the city's current
// weather and extracts temperature, humidity and pressure.
func (f *OpenWeatherFetcher) FetchCurrent(ctx context.Context, city string) (*entities.Observation, error) {
	if strings.TrimSpace(city) == "" {
		return nil, fmt.Errorf("%w: city name must be a non-empty string", entities.ErrInvalidInput)
	}

	f.logger.Debugf("Fetching current weather for city: %s", city)

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", f.apiKey)
	params.Set("units", f.units)

	reqURL := fmt.Sprintf("%s/weather?%s", f.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", entities.ErrWeatherData, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: connection error: %v", entities.ErrWeatherData, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: city %q not found", entities.ErrWeatherData, city)
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: invalid API key", entities.ErrWeatherData)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: request failed with status %d", entities.ErrWeatherData, resp.StatusCode)
	}

	var apiResp openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", entities.ErrWeatherData, err)
	}

	if apiResp.Main == nil {
		return nil, fmt.Errorf("%w: response is missing main weather data", entities.ErrWeatherData)
	}

	obs := &entities.Observation{
		City:     city,
		Temp:     apiResp.Main.Temp,
		Humidity: apiResp.Main.Humidity,
		Pressure: apiResp.Main.Pressure,
	}

	f.logger.Debugf("Successfully fetched weather for %s: %.1f°C", city, obs.Temp)
	return obs, nil
}

// FetchBatch fetches the cities one by one. Individual failures are
// collected and tolerated; the call fails only when every city failed
// or the context is cancelled.
func (f *OpenWeatherFetcher) FetchBatch(ctx context.Context, cities []string) ([]*entities.Observation, error) {
	f.logger.Debugf("Fetching weather batch for %d cities", len(cities))

	var observations []*entities.Observation
	var errs []error

	for _, city := range cities {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			obs, err := f.FetchCurrent(ctx, city)
			if err != nil {
				f.logger.Warnf("Failed to fetch weather for %s: %v", city, err)
				errs = append(errs, fmt.Errorf("city %s: %w", city, err))
				continue
			}
			observations = append(observations, obs)
		}
	}

	if len(observations) == 0 && len(errs) > 0 {
		return nil, fmt.Errorf("all requests failed: %v", errs)
	}

	f.logger.Infof("Fetched weather for %d out of %d cities", len(observations), len(cities))
	return observations, nil
}

func (f *OpenWeatherFetcher) HealthCheck(ctx context.Context) error {
	params := url.Values{}
	params.Set("q", healthCheckCity)
	params.Set("appid", f.apiKey)

	reqURL := fmt.Sprintf("%s/weather?%s", f.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute health check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API health check failed with status: %d", resp.StatusCode)
	}

	f.logger.Debug("OpenWeatherMap API health check passed")
	return nil
}

type OpenWeatherFetcherFactory struct {
	logger logger.Logger
}

func NewOpenWeatherFetcherFactory() ports.FetcherFactory {
	return &OpenWeatherFetcherFactory{
		logger: logger.New("info", "development").WithField("component", "openweather_fetcher_factory"),
	}
}

func (f *OpenWeatherFetcherFactory) CreateFetcher(baseURL, apiKey, units string) (ports.Fetcher, error) {
	f.logger.Infof("Creating OpenWeatherFetcher with baseURL: %s", baseURL)
	return NewOpenWeatherFetcher(baseURL, apiKey, units)
}
