package ports

import (
	"context"

	"github.com/sofiakaramia/Data-Storm/internal/domain/entities"
)

type Fetcher interface {
	FetchCurrent(ctx context.Context, city string) (*entities.Observation, error)
	FetchBatch(ctx context.Context, cities []string) ([]*entities.Observation, error)
	HealthCheck(ctx context.Context) error
}

type FetcherFactory interface {
	CreateFetcher(baseURL, apiKey, units string) (Fetcher, error)
}
