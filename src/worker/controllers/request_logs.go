package controllers

import (
	"context"
	"fmt"
	"time"

	"advisor/src/scheduler"

	"github.com/sirupsen/logrus"
)

const requestLogRetentionTask = "request_log_retention"

// PurgeRequestLogs deletes request logs older than the retention window,
// measured from now.
func (c *Controller) PurgeRequestLogs(ctx context.Context, now time.Time) (int64, error) {
	if c.RetentionDays <= 0 {
		return 0, fmt.Errorf("request log retention must be positive, got %d days", c.RetentionDays)
	}
	cutoff := now.AddDate(0, 0, -c.RetentionDays)
	deleted, err := c.RequestLogs.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	c.Logger.WithFields(logrus.Fields{"deleted": deleted, "cutoff": cutoff}).Info("Purged request logs")
	return deleted, nil
}

// ScheduleRequestLogRetention (re)schedules the purge on cronSpec.
func (c *Controller) ScheduleRequestLogRetention(cronSpec string) error {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()

	if existingTask, exists := c.Schedulers[requestLogRetentionTask]; exists {
		existingTask.Cancel()
		delete(c.Schedulers, requestLogRetentionTask)
	}

	newTask, err := scheduler.NewScheduledTask(cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := c.PurgeRequestLogs(ctx, time.Now()); err != nil {
			c.Logger.WithError(err).Error("Scheduled request log purge failed")
		}
	}, c.Logger)
	if err != nil {
		return err
	}

	c.Schedulers[requestLogRetentionTask] = newTask
	c.Logger.WithField("next", newTask.Next()).Info("Request log retention scheduled")
	return nil
}
