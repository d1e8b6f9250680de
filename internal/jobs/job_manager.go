package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager starts and stops every scheduled job together.
type JobManager struct {
	metricsSnapshotJob *MetricsSnapshotJob
}

func NewJobManager(metricsHandler DashboardMetricsHandler, metricsSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		metricsSnapshotJob: NewMetricsSnapshotJob(metricsHandler, metricsSchedule, logger),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.metricsSnapshotJob.Start(); err != nil {
		return fmt.Errorf("failed to start metrics snapshot job: %w", err)
	}
	return nil
}

func (jm *JobManager) StopAll() {
	jm.metricsSnapshotJob.Stop()
}
