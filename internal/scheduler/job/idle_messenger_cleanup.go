package job

import (
	"AfrilanceWeb/internal/config"
	"context"
	"log/slog"
	"time"
)

type IdleMessengerRemover interface {
	RemoveIdle(cutoff time.Time) int
	Count() int
}

func RunIdleMessengerCleanup(ctx context.Context, messengers IdleMessengerRemover, cfg *config.AppConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	idle := cfg.MessengerIdleTimeout()
	if idle <= 0 {
		idle = 30 * time.Minute
	}

	cutoff := time.Now().Add(-idle)

	slog.Info("Running Idle Messenger Cleanup", "idleTimeout", idle, "cutoff", cutoff, "active", messengers.Count())

	removed := messengers.RemoveIdle(cutoff)

	slog.Info("Idle Messenger Cleanup finished", "removed", removed, "remaining", messengers.Count())
	return nil
}
