package model

import "time"

var (
	Moods        = []string{"excellent", "good", "okay", "poor", "terrible"}
	EnergyLevels = []string{"high", "medium", "low"}
)

// JournalEntry is unique per user and day.
type JournalEntry struct {
	Base
	UserID      uint      `gorm:"not null;uniqueIndex:idx_journal_user_date" json:"user_id"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:idx_journal_user_date" json:"date"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Mood        string    `gorm:"size:20" json:"mood"`
	EnergyLevel string    `gorm:"size:20" json:"energy_level"`
	Tags        string    `gorm:"size:500" json:"tags"`
}

func (e *JournalEntry) SetOwner(userID uint) { e.UserID = userID }

type Philosophy struct {
	Base
	Owner
	Title       string    `gorm:"size:255;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Category    string    `gorm:"size:50;not null;default:life" json:"category"`
	DateWritten time.Time `gorm:"type:date;not null" json:"date_written"`
}

type VisionGoal struct {
	Base
	Owner
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"size:50;not null;default:personal" json:"category"`
	TargetDate  *time.Time `gorm:"type:date" json:"target_date"`
	Progress    int        `gorm:"not null;default:0" json:"progress"`
}

type LifeLesson struct {
	Base
	Owner
	Title       string    `gorm:"size:255;not null" json:"title"`
	Lesson      string    `gorm:"type:text;not null" json:"lesson"`
	Context     string    `gorm:"type:text" json:"context"`
	DateLearned time.Time `gorm:"type:date;not null" json:"date_learned"`
}
