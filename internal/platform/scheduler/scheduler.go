// Package scheduler runs bulk challan generation on a cron schedule.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/fee_management_app/internal/core/ports/services"
	"github.com/SscSPs/fee_management_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// runTimeout bounds one scheduled generation run.
const runTimeout = 30 * time.Minute

// Scheduler manages the generation cron job.
type Scheduler struct {
	cron      *cron.Cron
	generator portssvc.ChallanGenerationSvc
	logger    *slog.Logger
	spec      string
}

// NewScheduler creates a scheduler for spec, a standard five-field cron expression.
// An empty spec disables scheduling.
func NewScheduler(spec string, generator portssvc.ChallanGenerationSvc, logger *slog.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	return &Scheduler{
		cron:      c,
		generator: generator,
		logger:    logger.With(slog.String("component", "scheduler")),
		spec:      spec,
	}
}

// Start registers the generation job and starts the cron loop. It returns the
// parse error of an invalid spec.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.logger.Info("Challan generation schedule not configured, scheduler disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.runGeneration); err != nil {
		return err
	}
	s.logger.Info("Scheduled challan generation job", slog.String("schedule", s.spec))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler. The returned context is done once a running job finishes.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runGeneration() {
	runLogger := s.logger.With(slog.String("run_id", uuid.NewString()))
	ctx, cancel := context.WithTimeout(middleware.WithLogger(context.Background(), runLogger), runTimeout)
	defer cancel()

	report, err := s.generator.GenerateBulkChallans(ctx)
	if err != nil {
		runLogger.Error("Scheduled challan generation failed", slog.String("error", err.Error()))
		return
	}
	runLogger.Info("Scheduled challan generation finished",
		slog.Int("generated", report.Generated),
		slog.Int("skipped", report.Skipped),
		slog.String("message", report.Message))
}
