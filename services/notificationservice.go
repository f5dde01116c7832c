package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"personalhub/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MilestoneBands are the goal progress thresholds that trigger a notification.
var MilestoneBands = []int{25, 50, 75, 90}

const milestoneWidth = 5

// NotificationSink receives every newly created notification.
type NotificationSink interface {
	Deliver(ctx context.Context, n *model.Notification) error
}

type GenerateResult struct {
	TaskDue        int `json:"task_due"`
	HabitReminders int `json:"habit_reminders"`
	GoalMilestones int `json:"goal_milestones"`
	StudyReminders int `json:"study_reminders"`
}

func (r GenerateResult) Total() int {
	return r.TaskDue + r.HabitReminders + r.GoalMilestones + r.StudyReminders
}

type NotificationService struct {
	db    *gorm.DB
	sinks []NotificationSink
}

func NewNotificationService(db *gorm.DB, sinks ...NotificationSink) *NotificationService {
	return &NotificationService{db: db, sinks: sinks}
}

// NotificationKey identifies a notification by user, kind and text.
func NotificationKey(userID uint, kind, title, message string) string {
	sum := sha256.Sum256([]byte(strconv.FormatUint(uint64(userID), 10) + "\x00" + kind + "\x00" + title + "\x00" + message))
	return hex.EncodeToString(sum[:])
}

// MilestoneBand returns the first band whose [band, band+5) range contains progress.
func MilestoneBand(progress int) (int, bool) {
	for _, band := range MilestoneBands {
		if progress >= band && progress < band+milestoneWidth {
			return band, true
		}
	}
	return 0, false
}

// Notify creates the notification unless an identical one exists. created reports
// whether a new row was written.
func (s *NotificationService) Notify(ctx context.Context, userID uint, kind, title, message, relatedURL string) (bool, error) {
	n := model.Notification{
		Owner:   model.Owner{UserID: userID},
		Kind:    kind,
		Title:   title,
		Message: message,
	}
	if relatedURL != "" {
		n.RelatedURL = &relatedURL
	}
	n.DedupeKey = NotificationKey(userID, kind, title, message)

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "dedupe_key"}}, DoNothing: true}).
		Create(&n)
	if res.Error != nil {
		return false, fmt.Errorf("create %s notification for user %d: %w", kind, userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	for _, sink := range s.sinks {
		if err := sink.Deliver(ctx, &n); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"notification": n.ID,
				"user":         userID,
			}).Warn("notification delivery failed")
		}
	}
	return true, nil
}

// GenerateAll runs the task, habit, goal and study passes in that order. The first
// failure stops the run; notifications from finished passes stay committed.
func (s *NotificationService) GenerateAll(ctx context.Context, asOf time.Time) (GenerateResult, error) {
	asOf = DateOf(asOf)
	var result GenerateResult

	passes := []struct {
		name string
		run  func(context.Context, time.Time) (int, error)
		dst  *int
	}{
		{"task_due", s.TaskDuePass, &result.TaskDue},
		{"habit_reminder", s.HabitReminderPass, &result.HabitReminders},
		{"goal_milestone", s.GoalMilestonePass, &result.GoalMilestones},
		{"study_reminder", s.StudyReminderPass, &result.StudyReminders},
	}
	for _, p := range passes {
		n, err := p.run(ctx, asOf)
		*p.dst = n
		if err != nil {
			return result, fmt.Errorf("%s pass: %w", p.name, err)
		}
		logrus.WithFields(logrus.Fields{"pass": p.name, "created": n}).Info("notification pass finished")
	}
	return result, nil
}

// TaskDuePass notifies about open tasks due between asOf and the following day.
func (s *NotificationService) TaskDuePass(ctx context.Context, asOf time.Time) (int, error) {
	asOf = DateOf(asOf)
	var tasks []model.Task
	err := s.db.WithContext(ctx).
		Where("status IN ?", []string{model.TaskTodo, model.TaskInProgress}).
		Where("due_date >= ? AND due_date <= ?", asOf, asOf.AddDate(0, 0, 1)).
		Order("id").
		Find(&tasks).Error
	if err != nil {
		return 0, err
	}

	created := 0
	for _, t := range tasks {
		ok, err := s.Notify(ctx, t.UserID, model.NotificationTaskDue,
			"Task Due: "+t.Title,
			fmt.Sprintf("Your task \"%s\" is due on %s", t.Title, t.DueDate.Format(DateLayout)),
			fmt.Sprintf("/api/tasks/%d", t.ID))
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// HabitReminderPass reminds about daily habits not yet completed on asOf.
func (s *NotificationService) HabitReminderPass(ctx context.Context, asOf time.Time) (int, error) {
	asOf = DateOf(asOf)
	var habits []model.Habit
	err := s.db.WithContext(ctx).
		Where("frequency = ?", model.FrequencyDaily).
		Where("(last_completed_date IS NULL OR last_completed_date < ?)", asOf).
		Order("id").
		Find(&habits).Error
	if err != nil {
		return 0, err
	}

	created := 0
	for _, h := range habits {
		ok, err := s.Notify(ctx, h.UserID, model.NotificationHabitReminder,
			"Habit Reminder: "+h.Name,
			fmt.Sprintf("Don't forget to complete your habit \"%s\" today!", h.Name),
			fmt.Sprintf("/api/habits/%d/track", h.ID))
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// GoalMilestonePass congratulates goals sitting inside a milestone band.
func (s *NotificationService) GoalMilestonePass(ctx context.Context, _ time.Time) (int, error) {
	var goals []model.Goal
	err := s.db.WithContext(ctx).
		Where("progress >= ? AND progress < ?", MilestoneBands[0], 100).
		Order("id").
		Find(&goals).Error
	if err != nil {
		return 0, err
	}

	created := 0
	for _, g := range goals {
		band, ok := MilestoneBand(g.Progress)
		if !ok {
			continue
		}
		ok, err := s.Notify(ctx, g.UserID, model.NotificationGoalMilestone,
			"Goal Milestone: "+g.Title,
			fmt.Sprintf("Congratulations! You've reached %d%% progress on \"%s\"", band, g.Title),
			fmt.Sprintf("/api/goals/%d", g.ID))
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// StudyReminderPass nudges users with ongoing courses and no session in the last two days.
func (s *NotificationService) StudyReminderPass(ctx context.Context, asOf time.Time) (int, error) {
	cutoff := DateOf(asOf).AddDate(0, 0, -2)
	db := s.db.WithContext(ctx)

	var userIDs []uint
	err := db.Model(&model.Course{}).
		Where("status = ?", model.CourseOngoing).
		Distinct().
		Order("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return 0, err
	}

	created := 0
	for _, userID := range userIDs {
		var recent int64
		err := db.Model(&model.StudySession{}).
			Joins("JOIN courses ON courses.id = study_sessions.course_id").
			Where("courses.user_id = ? AND study_sessions.date >= ?", userID, cutoff).
			Count(&recent).Error
		if err != nil {
			return created, err
		}
		if recent > 0 {
			continue
		}
		ok, err := s.Notify(ctx, userID, model.NotificationStudyReminder,
			"Study Reminder",
			"You haven't logged a study session in 2+ days. Keep up the momentum!",
			"/api/academic/dashboard")
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// List returns the user's notifications newest first and the unread count.
func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]model.Notification, int64, error) {
	db := s.db.WithContext(ctx)
	q := db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var items []model.Notification
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	unread, err := s.UnreadCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) (*model.Notification, error) {
	var n model.Notification
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !n.Read {
		if err := s.db.WithContext(ctx).Model(&n).Update("is_read", true).Error; err != nil {
			return nil, err
		}
		n.Read = true
	}
	return &n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (s *NotificationService) Delete(ctx context.Context, userID, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
