package services

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the notification generator inside the server process. The
// create_notifications command does the same job for external schedulers.
type Scheduler struct {
	scheduler     *gocron.Scheduler
	notifications *NotificationService
}

func NewScheduler(notifications *NotificationService) *Scheduler {
	return &Scheduler{
		scheduler:     gocron.NewScheduler(time.UTC),
		notifications: notifications,
	}
}

func (s *Scheduler) Start(cronSpec string) error {
	if _, err := s.scheduler.Cron(cronSpec).Do(s.generate); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	logrus.WithField("cron", cronSpec).Info("notification scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) generate() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	result, err := s.notifications.GenerateAll(ctx, time.Now())
	if err != nil {
		logrus.WithError(err).Error("scheduled notification run failed")
		return
	}
	logrus.WithField("created", result.Total()).Info("scheduled notification run finished")
}
