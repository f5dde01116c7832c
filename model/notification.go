package model

const (
	NotificationTaskDue       = "task_due"
	NotificationHabitReminder = "habit_reminder"
	NotificationGoalMilestone = "goal_milestone"
	NotificationStudyReminder = "study_reminder"
	NotificationGeneral       = "general"
)

// Notification rows are never edited apart from the read flag.
// DedupeKey is unique per (user, kind, title, message).
type Notification struct {
	Base
	Owner
	Kind       string  `gorm:"size:32;not null;index" json:"kind"`
	Title      string  `gorm:"size:255;not null" json:"title"`
	Message    string  `gorm:"type:text;not null" json:"message"`
	Read       bool    `gorm:"column:is_read;not null;default:false;index" json:"read"`
	RelatedURL *string `gorm:"size:500" json:"related_url"`
	DedupeKey  string  `gorm:"size:64;uniqueIndex;not null" json:"-"`
}
