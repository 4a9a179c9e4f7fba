package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sofiakaramia/Data-Storm/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenWeatherFetcher(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		fetcher, err := NewOpenWeatherFetcher("http://localhost:8080", "test-key", "metric")

		require.NoError(t, err)
		assert.NotNil(t, fetcher)
	})

	t.Run("empty API key fails", func(t *testing.T) {
		fetcher, err := NewOpenWeatherFetcher("http://localhost:8080", "", "metric")

		assert.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConfiguration)
		assert.Nil(t, fetcher)
	})

	t.Run("whitespace API key fails", func(t *testing.T) {
		fetcher, err := NewOpenWeatherFetcher("http://localhost:8080", "   ", "metric")

		assert.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConfiguration)
		assert.Nil(t, fetcher)
	})

	t.Run("defaults are applied", func(t *testing.T) {
		fetcher, err := NewOpenWeatherFetcher("", "test-key", "")

		require.NoError(t, err)
		owf := fetcher.(*OpenWeatherFetcher)
		assert.Equal(t, DefaultBaseURL, owf.baseURL)
		assert.Equal(t, "metric", owf.units)
	})
}

func TestOpenWeatherFetcher_FetchCurrent(t *testing.T) {
	t.Run("successful fetch sends the expected query", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/weather", r.URL.Path)
			assert.Equal(t, "Kyiv", r.URL.Query().Get("q"))
			assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
			assert.Equal(t, "metric", r.URL.Query().Get("units"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"name":"Kyiv","main":{"temp":20.5,"humidity":65,"pressure":1013}}`))
		}))
		defer server.Close()

		fetcher, err := NewOpenWeatherFetcher(server.URL, "test-key", "metric")
		require.NoError(t, err)

		obs, err := fetcher.FetchCurrent(context.Background(), "Kyiv")

		require.NoError(t, err)
		assert.Equal(t, "Kyiv", obs.City)
		assert.Equal(t, 20.5, obs.Temp)
		assert.Equal(t, 65.0, obs.Humidity)
		assert.Equal(t, 1013.0, obs.Pressure)
	})

	t.Run("empty city fails without a request", func(t *testing.T) {
		var requests int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requests, 1)
		}))
		defer server.Close()

		fetcher, err := NewOpenWeatherFetcher(server.URL, "test-key", "metric")
		require.NoError(t, err)

		obs, err := fetcher.FetchCurrent(context.Background(), "   ")

		assert.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidInput)
		assert.Nil(t, obs)
		assert.Equal(t, int32(0), atomic.LoadInt32(&requests))
	})

	t.Run("unknown city returns not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"cod":"404","message":"city not found"}`))
		}))
		defer server.Close()

		fetcher, err := NewOpenWeatherFetcher(server.URL, "test-key", "metric")
		require.NoError(t, err)

		obs, err := fetcher.FetchCurrent(context.Background(), "Nowhere")

		assert.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrWeatherData)
		assert.Contains(t, err.Error(), "not found")
		assert.Nil(t, obs)
	})

	t.Run("unauthorized returns invalid API key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		fetcher, err := NewOpenWeatherFetcher(server.URL, "bad-key", "metric")
		require.NoError(t, err)

		obs, err := fetcher.FetchCurrent(context.Background(), "Kyiv")

		assert.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrWeatherData)
		assert.Contains(t, err.Error(), "invalid API key")
		assert.Nil(t, obs)
	})

	t.Run("other HTTP errors carry the status code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		fetcher, err := NewOpenWeatherFetcher(server.URL, "test-key", "metric")
		require.NoError(t, err)

		obs, err := fetcher.FetchCurrent(context.Background(), "Kyiv")

		assert.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrWeatherData)
		assert.Contains(t, err.Error(), "request failed with status 500")
		assert.Nil(t, obs)
	})

	t.Run("missing main section fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"name":"Kyiv"}`))
		}))
		defer server.Close()

		fetcher, err := NewOpenWeatherFetcher(server.URL, "test-key", "metric")
		require.NoError(t, err)

		obs, err := fetcher.FetchCurrent(context.Background(), "Kyiv")

		assert.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrWeatherData)
		assert.Contains(t, err.Error(), "missing main weather data")
		assert.Nil(t, obs)
	})

	t.Run("malformed JSON fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"name":`))
		}))
		defer server.Close()

		fetcher, err := NewOpenWeatherFetcher(server.URL, "test-key", "metric")
		require.NoError(t, err)

		obs, err := fetcher.FetchCurrent(context.Background(), "Kyiv")

		assert.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrWeatherData)
		assert.Nil(t, obs)
	})

	t.Run("unreachable server is a connection error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		fetcher, err := NewOpenWeatherFetcher(server.URL, "test-key", "metric")
		require.NoError(t, err)

		obs, err := fetcher.FetchCurrent(context.Background(), "Kyiv")

		assert.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrWeatherData)
		assert.Contains(t, err.Error(), "connection error")
		assert.Nil(t, obs)
	})
}

func TestOpenWeatherFetcher_FetchBatch(t *testing.T) {
	t.Run("tolerates partial failures", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("q") == "Nowhere" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(`{"name":"x","main":{"temp":20,"humidity":60,"pressure":1010}}`))
		}))
		defer server.Close()

		fetcher, err := NewOpenWeatherFetcher(server.URL, "test-key", "metric")
		require.NoError(t, err)

		observations, err := fetcher.FetchBatch(context.Background(), []string{"Kyiv", "Nowhere", "Lviv"})

		require.NoError(t, err)
		require.Len(t, observations, 2)
		assert.Equal(t, "Kyiv", observations[0].City)
		assert.Equal(t, "Lviv", observations[1].City)
	})

	t.Run("fails when all cities fail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher, err := NewOpenWeatherFetcher(server.URL, "test-key", "metric")
		require.NoError(t, err)

		observations, err := fetcher.FetchBatch(context.Background(), []string{"A", "B"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "all requests failed")
		assert.Nil(t, observations)
	})

	t.Run("empty city list returns no observations", func(t *testing.T) {
		fetcher, err := NewOpenWeatherFetcher("http://localhost:1", "test-key", "metric")
		require.NoError(t, err)

		observations, err := fetcher.FetchBatch(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, observations)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(50 * time.Millisecond)
			w.Write([]byte(`{"name":"x","main":{"temp":20,"humidity":60,"pressure":1010}}`))
		}))
		defer server.Close()

		fetcher, err := NewOpenWeatherFetcher(server.URL, "test-key", "metric")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		observations, err := fetcher.FetchBatch(ctx, []string{"Kyiv", "Lviv"})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, observations)
	})
}

func TestOpenWeatherFetcher_HealthCheck(t *testing.T) {
	t.Run("healthy API", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "London", r.URL.Query().Get("q"))
			w.Write([]byte(`{"name":"London","main":{"temp":15,"humidity":80,"pressure":1005}}`))
		}))
		defer server.Close()

		fetcher, err := NewOpenWeatherFetcher(server.URL, "test-key", "metric")
		require.NoError(t, err)

		assert.NoError(t, fetcher.HealthCheck(context.Background()))
	})

	t.Run("unhealthy API", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		fetcher, err := NewOpenWeatherFetcher(server.URL, "test-key", "metric")
		require.NoError(t, err)

		assert.Error(t, fetcher.HealthCheck(context.Background()))
	})
}

func TestOpenWeatherFetcherFactory(t *testing.T) {
	factory := NewOpenWeatherFetcherFactory()

	t.Run("creates a fetcher", func(t *testing.T) {
		fetcher, err := factory.CreateFetcher("http://localhost:8080", "test-key", "metric")

		require.NoError(t, err)
		assert.NotNil(t, fetcher)
	})

	t.Run("propagates configuration errors", func(t *testing.T) {
		fetcher, err := factory.CreateFetcher("http://localhost:8080", "", "metric")

		assert.Error(t, err)
		assert.Nil(t, fetcher)
	})
}
