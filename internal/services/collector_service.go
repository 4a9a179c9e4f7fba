package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sofiakaramia/Data-Storm/internal/analysis"
	"github.com/sofiakaramia/Data-Storm/internal/domain/entities"
	"github.com/sofiakaramia/Data-Storm/internal/domain/ports"
	"github.com/sofiakaramia/Data-Storm/internal/pkg/logger"
	"github.com/sofiakaramia/Data-Storm/internal/report"
)

type Service interface {
	Start(ctx context.Context, interval time.Duration) error
	Stop()
	RunOnce(ctx context.Context) error
	LatestSummary() (analysis.Summary, time.Time, bool)
	HealthCheck(ctx context.Context) error
}

// CollectorService runs the fetch -> publish -> analyze cycle: it
// fetches one observation per configured city, optionally publishes
// them to Kafka, builds and cleans a dataset, computes summary
// statistics, writes them to disk and optionally ships an xlsx report
// to object storage.
type CollectorService struct {
	fetcher     ports.Fetcher
	publisher   ports.Publisher      // optional
	storage     ports.ReportStorage  // optional
	generator   report.Generator     // optional
	scheduler   ports.Scheduler
	analyzer    *analysis.Analyzer
	cities      []string
	summaryPath string
	logger      logger.Logger

	mu          sync.RWMutex
	lastSummary analysis.Summary
	lastRun     time.Time
}

func NewCollectorService(
	fetcher ports.Fetcher,
	publisher ports.Publisher,
	storage ports.ReportStorage,
	generator report.Generator,
	scheduler ports.Scheduler,
	cities []string,
	summaryPath string,
) Service {
	return &CollectorService{
		fetcher:     fetcher,
		publisher:   publisher,
		storage:     storage,
		generator:   generator,
		scheduler:   scheduler,
		analyzer:    analysis.NewAnalyzer(),
		cities:      cities,
		summaryPath: summaryPath,
		logger:      logger.New("info", "development").WithField("component", "collector_service"),
	}
}

func (s *CollectorService) Start(ctx context.Context, interval time.Duration) error {
	s.logger.Infof("Starting collector for %d cities with interval: %v", len(s.cities), interval)

	if err := s.scheduler.Schedule(ctx, interval, s.RunOnce); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	s.logger.Info("Collector service started successfully")
	return nil
}

func (s *CollectorService) Stop() {
	s.logger.Info("Stopping collector service")
	s.scheduler.Stop()

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			s.logger.Errorf("Failed to close publisher: %v", err)
		}
	}

	s.logger.Info("Collector service stopped")
}

// RunOnce executes a single collect cycle.
func (s *CollectorService) RunOnce(ctx context.Context) error {
	startTime := time.Now()
	runID := uuid.New().String()
	s.logger.Infof("Starting collect cycle %s", runID)

	observations, err := s.fetcher.FetchBatch(ctx, s.cities)
	if err != nil {
		return fmt.Errorf("fetch weather data: %w", err)
	}

	for _, obs := range observations {
		if err := obs.Validate(); err != nil {
			s.logger.Warnf("Observation for %s failed validation (%v), it will be dropped during cleaning", obs.City, err)
		}
	}

	// Publishing is best-effort; analysis proceeds regardless.
	if s.publisher != nil {
		if err := s.publisher.PublishBatch(ctx, observations); err != nil {
			s.logger.Errorf("Failed to publish observations: %v", err)
		}
	}

	records := make([]map[string]interface{}, 0, len(observations))
	for _, obs := range observations {
		records = append(records, obs.ToMap())
	}

	dataset, err := s.analyzer.BuildDataset(records)
	if err != nil {
		return fmt.Errorf("build dataset: %w", err)
	}

	cleaned := s.analyzer.Clean(dataset)

	summary, err := s.analyzer.Summarize(cleaned)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	if s.summaryPath != "" {
		if err := s.analyzer.SaveSummaryJSON(summary, s.summaryPath); err != nil {
			return fmt.Errorf("save summary: %w", err)
		}
	}

	s.uploadReport(ctx, runID, observations, summary)

	s.mu.Lock()
	s.lastSummary = summary
	s.lastRun = time.Now()
	s.mu.Unlock()

	s.logger.Infof("Collect cycle %s completed in %v: %d fetched, %d kept",
		runID, time.Since(startTime), len(observations), cleaned.Rows())
	return nil
}

// uploadReport generates the xlsx report and ships it to object
// storage. Report delivery is best-effort and never fails the cycle.
func (s *CollectorService) uploadReport(ctx context.Context, runID string, observations []*entities.Observation, summary analysis.Summary) {
	if s.generator == nil || s.storage == nil {
		return
	}

	data, err := s.generator.GenerateSummaryReport(ctx, runID, observations, summary)
	if err != nil {
		s.logger.Errorf("Failed to generate report: %v", err)
		return
	}

	objectName := fmt.Sprintf("reports/%s/%s.xlsx", time.Now().Format("2006-01-02"), runID)
	location, err := s.storage.UploadReport(ctx, objectName, data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err != nil {
		s.logger.Errorf("Failed to upload report: %v", err)
		return
	}

	s.logger.Infof("Report uploaded to %s", location)
}

func (s *CollectorService) LatestSummary() (analysis.Summary, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastSummary == nil {
		return nil, time.Time{}, false
	}
	return s.lastSummary, s.lastRun, true
}

func (s *CollectorService) HealthCheck(ctx context.Context) error {
	if err := s.fetcher.HealthCheck(ctx); err != nil {
		return fmt.Errorf("fetcher health check failed: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.HealthCheck(ctx); err != nil {
			return fmt.Errorf("publisher health check failed: %w", err)
		}
	}

	return nil
}
