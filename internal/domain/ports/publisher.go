package ports

import (
	"context"

	"github.com/sofiakaramia/Data-Storm/internal/domain/entities"
)

type Publisher interface {
	PublishBatch(ctx context.Context, observations []*entities.Observation) error
	HealthCheck(ctx context.Context) error
	Close() error
}
