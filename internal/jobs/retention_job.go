package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"routekeeper/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRetentionSchedule sweeps expired deliveries every quarter hour.
const DefaultRetentionSchedule = "@every 15m"

// RetentionJob periodically drops delivered packages older than the
// retention window, so long-running processes apply the same rule as load.
type RetentionJob struct {
	handler  PruneRouteHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewRetentionJob(handler PruneRouteHandler, schedule string, logger *slog.Logger) *RetentionJob {
	if schedule == "" {
		schedule = DefaultRetentionSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetentionJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "retention_job"),
	}
}

// Start registers the sweep on the cron schedule.
func (j *RetentionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("invalid retention schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Retention job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single sweep and returns the number of packages dropped.
func (j *RetentionJob) RunOnce(ctx context.Context) int {
	_, pruned, err := j.handler.Handle(ctx, commands.NewPruneRouteCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Retention sweep failed", "error", err)
	}
	return pruned
}

// Stop stops the schedule and waits for a running sweep.
func (j *RetentionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Retention job stopped")
}
