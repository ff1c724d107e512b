// Package jobs runs the periodic background tasks: the nightly forecast
// refresh and audit-log retention pruning.
package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"backoffice/internal/domain"
	"backoffice/internal/service"
)

// Scheduler manages the cron-driven background jobs.
type Scheduler struct {
	cron          *cron.Cron
	forecast      *service.ForecastService
	audit         domain.AuditRepository
	retentionDays int
	logger        *slog.Logger
}

// NewScheduler creates the job scheduler. forecast may be nil when AI is
// not configured; the forecast job is then skipped.
func NewScheduler(forecast *service.ForecastService, audit domain.AuditRepository, retentionDays int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		forecast:      forecast,
		audit:         audit,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.forecast != nil {
		// Nightly, after the business day closes.
		if _, err := s.cron.AddFunc("15 2 * * *", s.runForecast); err != nil {
			return err
		}
	}
	if s.retentionDays > 0 {
		if _, err := s.cron.AddFunc("45 3 * * *", s.runRetention); err != nil {
			return err
		}
	}
	s.cron.Start()
	s.logger.Info("job scheduler started",
		"forecast_enabled", s.forecast != nil,
		"audit_retention_days", s.retentionDays,
	)
	return nil
}

// Stop gracefully stops the cron loop.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("job scheduler stopped")
}

func (s *Scheduler) runForecast() {
	ctx := context.Background()
	f, err := s.forecast.Refresh(ctx)
	if err != nil {
		s.logger.Warn("nightly forecast refresh failed", "error", err)
		return
	}
	s.logger.Info("nightly forecast refreshed", "forecast_id", f.ID)
}

func (s *Scheduler) runRetention() {
	ctx := context.Background()
	pruned, err := s.audit.DeleteOlderThanDays(ctx, s.retentionDays)
	if err != nil {
		s.logger.Warn("audit retention prune failed", "error", err)
		return
	}
	if pruned > 0 {
		s.logger.Info("audit retention prune completed", "deleted", pruned, "older_than_days", s.retentionDays)
	}
}
