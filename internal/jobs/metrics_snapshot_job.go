package jobs

import (
	"context"
	"log/slog"

	"fifo/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultMetricsSnapshotSchedule runs at the start of every minute.
const DefaultMetricsSnapshotSchedule = "0 * * * * *"

type DashboardMetricsHandler interface {
	Handle(ctx context.Context, query queries.GetDashboardMetricsQuery) (queries.GetDashboardMetricsQueryResponse, error)
}

type MetricsSnapshotJob struct {
	handler  DashboardMetricsHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewMetricsSnapshotJob(handler DashboardMetricsHandler, schedule string, logger *slog.Logger) *MetricsSnapshotJob {
	if schedule == "" {
		schedule = DefaultMetricsSnapshotSchedule
	}
	return &MetricsSnapshotJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "metrics_snapshot_job"),
	}
}

func (j *MetricsSnapshotJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Metrics snapshot job started", "schedule", j.schedule)
	return nil
}

// Run takes one snapshot. Failures are logged and the next tick tries again.
func (j *MetricsSnapshotJob) Run(ctx context.Context) {
	m, err := j.handler.Handle(ctx, queries.NewGetDashboardMetricsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Metrics snapshot failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Queue metrics",
		"backlog_count", m.BacklogCount,
		"backlog_value", m.BacklogValue,
		"counts", m.Counts,
		"values", m.Values,
		"avg_wait_seconds", m.AvgWaitSeconds,
	)
}

func (j *MetricsSnapshotJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Metrics snapshot job stopped")
}
