// Command create_notifications runs the notification generator once and exits.
// It is meant to be run daily by cron or a similar scheduler.
package main

import (
	"context"
	"os"
	"time"

	"personalhub/connection"

	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := connection.LoadConfig()
	if err != nil {
		logrus.WithError(err).Error("load config")
		return 1
	}
	connection.SetupLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	app, err := connection.NewApp(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Error("open application")
		return 1
	}
	defer app.Close()

	result, err := app.Deps.Notifications.GenerateAll(ctx, time.Now())
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"task_due":        result.TaskDue,
			"habit_reminders": result.HabitReminders,
			"goal_milestones": result.GoalMilestones,
			"study_reminders": result.StudyReminders,
		}).Error("notification generation failed")
		return 1
	}
	logrus.WithFields(logrus.Fields{
		"task_due":        result.TaskDue,
		"habit_reminders": result.HabitReminders,
		"goal_milestones": result.GoalMilestones,
		"study_reminders": result.StudyReminders,
		"total":           result.Total(),
	}).Info("Successfully created notifications")
	return 0
}
