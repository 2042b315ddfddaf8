package controllers

import (
	"sync"

	"advisor/src/repositories"
	"advisor/src/scheduler"

	"github.com/sirupsen/logrus"
)

type Controller struct {
	RequestLogs    repositories.RequestLogRepository
	RetentionDays  int
	Logger         *logrus.Logger
	SchedulerMutex sync.Mutex
	Schedulers     map[string]*scheduler.ScheduledTask
}

func NewController(requestLogs repositories.RequestLogRepository, retentionDays int, logger *logrus.Logger) *Controller {
	return &Controller{
		RequestLogs:   requestLogs,
		RetentionDays: retentionDays,
		Logger:        logger,
		Schedulers:    map[string]*scheduler.ScheduledTask{},
	}
}

func (c *Controller) GetSchedulers() map[string]*scheduler.ScheduledTask {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()
	schedulers := make(map[string]*scheduler.ScheduledTask, len(c.Schedulers))
	for name, task := range c.Schedulers {
		schedulers[name] = task
	}
	return schedulers
}

// StopSchedulers cancels every scheduled task.
func (c *Controller) StopSchedulers() {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()
	for name, task := range c.Schedulers {
		task.Cancel()
		delete(c.Schedulers, name)
	}
}
