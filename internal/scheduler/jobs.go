package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/planloop/planloop-api/internal/config"
	"github.com/planloop/planloop-api/internal/platform/logger"
	"github.com/robfig/cron/v3"
)

// Jobs wires the materializer and reminder scheduler onto periodic cron
// triggers: a daily materialization run (cron spec, matching the reference
// nightly schedule by default) and an interval-based reminder scan. Both
// jobs additionally run once at startup when configured to.
type Jobs struct {
	cron         *cron.Cron
	materializer *Materializer
	reminders    *ReminderScheduler
	cfg          config.SchedulerConfig
	logger       *slog.Logger
	startupWG    sync.WaitGroup
}

// NewJobs creates the cron-backed job runner.
// If log is nil, a default logger will be used.
func NewJobs(
	materializer *Materializer,
	reminders *ReminderScheduler,
	cfg config.SchedulerConfig,
	log *slog.Logger,
) *Jobs {
	if log == nil {
		log = slog.Default()
	}

	return &Jobs{
		cron:         cron.New(),
		materializer: materializer,
		reminders:    reminders,
		cfg:          cfg,
		logger:       log.With(slog.String("component", "scheduler_jobs")),
	}
}

// Start registers both periodic jobs and begins the cron loop. When
// RunOnStart is configured, each job also runs immediately in its own
// goroutine so pending work is picked up without waiting for the first tick.
func (j *Jobs) Start() error {
	if _, err := j.cron.AddFunc(j.cfg.MaterializerSpec, j.runMaterializer); err != nil {
		return fmt.Errorf("invalid materializer cron spec %q: %w", j.cfg.MaterializerSpec, err)
	}

	scanSpec := fmt.Sprintf("@every %dm", j.cfg.ReminderScanMinutes)
	if _, err := j.cron.AddFunc(scanSpec, j.runReminderScan); err != nil {
		return fmt.Errorf("invalid reminder scan spec %q: %w", scanSpec, err)
	}

	if j.cfg.RunOnStart {
		j.startupWG.Add(2)
		go func() {
			defer j.startupWG.Done()
			j.runMaterializer()
		}()
		go func() {
			defer j.startupWG.Done()
			j.runReminderScan()
		}()
	}

	j.cron.Start()
	j.logger.Info("scheduler started",
		"materializer_spec", j.cfg.MaterializerSpec,
		"reminder_scan_spec", scanSpec,
		"run_on_start", j.cfg.RunOnStart)
	return nil
}

// Stop halts the cron loop, waits for running scans to finish, and shuts
// down the reminder scheduler (disarming pending timers).
func (j *Jobs) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.startupWG.Wait()
	j.reminders.Stop()
	j.logger.Info("scheduler stopped")
}

func (j *Jobs) runMaterializer() {
	ctx := logger.WithLogger(context.Background(), j.logger)
	if err := j.materializer.Run(ctx); err != nil {
		j.logger.Error("materializer run failed", "error", err)
	}
}

func (j *Jobs) runReminderScan() {
	ctx := logger.WithLogger(context.Background(), j.logger)
	if err := j.reminders.Scan(ctx); err != nil {
		j.logger.Error("reminder scan failed", "error", err)
	}
}
