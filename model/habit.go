package model

import "time"

const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// Habit keeps CurrentStreak at 0 while LastCompletedDate is nil.
type Habit struct {
	Base
	Owner
	Name              string     `gorm:"size:255;not null" json:"name"`
	Frequency         string     `gorm:"size:20;not null;default:daily;index" json:"frequency"`
	CurrentStreak     int        `gorm:"not null;default:0" json:"current_streak"`
	LastCompletedDate *time.Time `gorm:"type:date" json:"last_completed_date"`
}
