package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sofiakaramia/Data-Storm/internal/config"
	"github.com/sofiakaramia/Data-Storm/internal/domain/ports"
	"github.com/sofiakaramia/Data-Storm/internal/infrastructure/api"
	owhttp "github.com/sofiakaramia/Data-Storm/internal/infrastructure/http"
	"github.com/sofiakaramia/Data-Storm/internal/infrastructure/storage"
	"github.com/sofiakaramia/Data-Storm/internal/pkg/logger"
	"github.com/sofiakaramia/Data-Storm/internal/producer"
	"github.com/sofiakaramia/Data-Storm/internal/report"
	"github.com/sofiakaramia/Data-Storm/internal/scheduler"
	"github.com/sofiakaramia/Data-Storm/internal/services"
)

type Bootstrap struct {
	config *config.Config
	logger logger.Logger
}

func NewBootstrap() (*Bootstrap, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.Env).WithField("service", cfg.App.Name)

	return &Bootstrap{
		config: cfg,
		logger: log,
	}, nil
}

func (b *Bootstrap) Run() error {
	b.logger.Infof("Starting %s", b.config.App.Name)
	b.logger.Infof("Environment: %s", b.config.App.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signalChan
		b.logger.Infof("Received signal: %v. Shutting down...", sig)
		cancel()
	}()

	fetcher, publisher, reportStorage, err := b.initDependencies()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	b.logger.Info("Performing initial health checks...")
	healthChecker := NewHealthChecker(
		fetcher,
		publisher,
		b.config.HealthCheck.APITimeout,
		b.config.HealthCheck.KafkaTimeout,
		b.config.HealthCheck.RetryInterval,
		b.config.HealthCheck.MaxRetries,
	)
	if err := healthChecker.CheckAll(ctx); err != nil {
		return fmt.Errorf("initial health checks failed: %w", err)
	}

	var generator report.Generator
	if reportStorage != nil {
		generator = report.NewExcelGenerator()
	}

	collector := services.NewCollectorService(
		fetcher,
		publisher,
		reportStorage,
		generator,
		scheduler.NewCronScheduler(b.config.Scheduler.Timeout),
		b.config.OpenWeather.Cities,
		b.config.Analysis.SummaryPath,
	)

	var statusServer *api.StatusServer
	if b.config.API.Enabled {
		statusServer = api.NewStatusServer(collector, b.config)
		if err := statusServer.Start(); err != nil {
			return fmt.Errorf("failed to start status server: %w", err)
		}
	}

	b.logger.Infof("Starting collector with %d cities, interval: %v",
		len(b.config.OpenWeather.Cities), b.config.Scheduler.Interval)

	if err := collector.Start(ctx, b.config.Scheduler.Interval); err != nil {
		return fmt.Errorf("failed to start collector: %w", err)
	}

	<-ctx.Done()

	b.logger.Info("Stopping services...")
	collector.Stop()

	if statusServer != nil {
		if err := statusServer.Stop(context.Background()); err != nil {
			b.logger.Errorf("Failed to stop status server: %v", err)
		}
	}

	b.logger.Info("Service stopped gracefully")
	return nil
}

func (b *Bootstrap) initDependencies() (ports.Fetcher, ports.Publisher, ports.ReportStorage, error) {
	b.logger.Info("Initializing dependencies...")

	fetcherFactory := owhttp.NewOpenWeatherFetcherFactory()
	fetcher, err := fetcherFactory.CreateFetcher(
		b.config.OpenWeather.BaseURL,
		b.config.OpenWeather.APIKey,
		b.config.OpenWeather.Units,
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create fetcher: %w", err)
	}
	b.logger.Info("OpenWeather fetcher initialized")

	var publisher ports.Publisher
	if b.config.Kafka.Enabled {
		publisher, err = producer.NewKafkaPublisher(
			b.config.Kafka.Broker,
			b.config.Kafka.Topic,
			b.config.Kafka.RequiredAcks,
			b.config.Kafka.MaxRetries,
		)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
		}
		b.logger.Infof("Kafka publisher initialized for topic: %s", b.config.Kafka.Topic)
	}

	var reportStorage ports.ReportStorage
	if b.config.Minio.Enabled {
		minioStorage, err := storage.NewMinioReportStorage(
			b.config.Minio.Endpoint,
			b.config.Minio.AccessKey,
			b.config.Minio.SecretKey,
			b.config.Minio.Bucket,
			b.config.Minio.UseSSL,
		)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create Minio storage: %w", err)
		}
		reportStorage = minioStorage
		b.logger.Infof("Minio report storage initialized for bucket: %s", b.config.Minio.Bucket)
	}

	return fetcher, publisher, reportStorage, nil
}
