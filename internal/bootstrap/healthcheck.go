package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/sofiakaramia/Data-Storm/internal/domain/ports"
	"github.com/sofiakaramia/Data-Storm/internal/pkg/logger"
)

type HealthChecker struct {
	fetcher   ports.Fetcher
	publisher ports.Publisher
	logger    logger.Logger

	apiTimeout    time.Duration
	kafkaTimeout  time.Duration
	retryInterval time.Duration
	maxRetries    int
}

func NewHealthChecker(fetcher ports.Fetcher, publisher ports.Publisher, apiTimeout, kafkaTimeout, retryInterval time.Duration, maxRetries int) *HealthChecker {
	return &HealthChecker{
		fetcher:       fetcher,
		publisher:     publisher,
		logger:        logger.New("info", "development").WithField("component", "health_checker"),
		apiTimeout:    apiTimeout,
		kafkaTimeout:  kafkaTimeout,
		retryInterval: retryInterval,
		maxRetries:    maxRetries,
	}
}

func (h *HealthChecker) CheckAll(ctx context.Context) error {
	h.logger.Info("Starting health checks for all dependencies")

	if err := h.checkWithRetry(ctx, h.fetcher.HealthCheck, "OpenWeather API", h.apiTimeout); err != nil {
		return fmt.Errorf("OpenWeather API health check failed: %w", err)
	}

	if h.publisher != nil {
		if err := h.checkWithRetry(ctx, h.publisher.HealthCheck, "Kafka", h.kafkaTimeout); err != nil {
			return fmt.Errorf("Kafka health check failed: %w", err)
		}
	}

	h.logger.Info("All health checks passed successfully")
	return nil
}

func (h *HealthChecker) checkWithRetry(ctx context.Context, checkFunc func(context.Context) error, serviceName string, timeout time.Duration) error {
	var lastErr error

	for i := 0; i < h.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			h.logger.Debugf("Checking %s (attempt %d/%d)", serviceName, i+1, h.maxRetries)

			checkCtx, cancel := context.WithTimeout(ctx, timeout)
			err := checkFunc(checkCtx)
			cancel()

			if err == nil {
				h.logger.Infof("%s health check passed", serviceName)
				return nil
			}

			lastErr = err
			h.logger.Warnf("%s health check failed (attempt %d/%d): %v", serviceName, i+1, h.maxRetries, err)

			if i < h.maxRetries-1 {
				time.Sleep(h.retryInterval)
			}
		}
	}

	return fmt.Errorf("all %d attempts failed, last error: %w", h.maxRetries, lastErr)
}
