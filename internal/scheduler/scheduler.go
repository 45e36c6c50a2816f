package scheduler

import (
	"AfrilanceWeb/internal/config"
	"AfrilanceWeb/internal/scheduler/job"
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler runs housekeeping inside the web process, since messenger state
// lives in this process's memory.
type Scheduler struct {
	cfg        *config.AppConfig
	cron       *cron.Cron
	messengers job.IdleMessengerRemover
}

func New(cfg *config.AppConfig, messengers job.IdleMessengerRemover) *Scheduler {
	c := cron.New()

	return &Scheduler{
		cfg:        cfg,
		cron:       c,
		messengers: messengers,
	}
}

func (s *Scheduler) Start() error {
	slog.Info("Starting Scheduler...")

	if err := s.registerJobs(); err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("Scheduler started successfully")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) registerJobs() error {
	_, err := s.cron.AddFunc(s.cfg.IdleMessengerCleanupCron, func() {
		slog.Info("Starting Idle Messenger Cleanup Job")
		ctx := context.Background()
		if err := job.RunIdleMessengerCleanup(ctx, s.messengers, s.cfg); err != nil {
			slog.Error("Idle Messenger Cleanup Job failed", "error", err)
		} else {
			slog.Info("Idle Messenger Cleanup Job completed")
		}
	})
	if err != nil {
		slog.Error("Failed to register Idle Messenger Cleanup job", "error", err, "schedule", s.cfg.IdleMessengerCleanupCron)
		return err
	}

	slog.Info("Registered Idle Messenger Cleanup Job", "schedule", s.cfg.IdleMessengerCleanupCron)
	return nil
}
