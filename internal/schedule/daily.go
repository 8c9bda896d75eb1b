package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DefaultSpec = "0 9 * * *"

	runTimeout = 5 * time.Minute
)

type DailyConfig struct {
	Spec     string
	Location *time.Location
}

// Job is a single bot run. Its result is only logged.
type Job func(ctx context.Context) bool

// ParseSpec validates a standard five-field cron expression.
func ParseSpec(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("parse cron spec %q: %w", spec, err)
	}
	return nil
}

// StartDaily runs job on the configured schedule until ctx is done. Runs never overlap.
func StartDaily(ctx context.Context, conf DailyConfig, job Job, log *slog.Logger) error {
	c := cron.New(
		cron.WithLocation(conf.Location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	_, err := c.AddFunc(conf.Spec, func() {
		defer func() {
			if r := recover(); r != nil {
				log.ErrorContext(ctx, "panic", "error", r)
			}
		}()

		ctx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()

		log.DebugContext(ctx, "scheduled run started")
		if ok := job(ctx); !ok {
			log.WarnContext(ctx, "scheduled run did not publish")
		}
	})
	if err != nil {
		return fmt.Errorf("add schedule %q: %w", conf.Spec, err)
	}

	c.Start()
	log.InfoContext(ctx, "daily schedule started", "spec", conf.Spec, "location", conf.Location.String())
	defer log.InfoContext(ctx, "daily schedule stopped")

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
