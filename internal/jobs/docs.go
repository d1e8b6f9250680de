// Package jobs runs scheduled background tasks with github.com/robfig/cron/v3.
//
// MetricsSnapshotJob logs the dashboard metrics on a schedule so backlog trends
// are visible in the service logs. Schedules use the six-field cron format with
// seconds, for example "0 * * * * *" for every minute.
//
//	manager := jobs.NewJobManager(metricsHandler, cfg.MetricsSnapshotSchedule, logger)
//	if err := manager.StartAll(); err != nil {
//	    return err
//	}
//	defer manager.StopAll()
package jobs
