package model

import "time"

const (
	CourseOngoing   = "ongoing"
	CourseCompleted = "completed"
	CourseDropped   = "dropped"
)

type Course struct {
	Base
	Owner
	Name     string   `gorm:"size:255;not null" json:"name"`
	Code     string   `gorm:"size:50" json:"code"`
	Semester string   `gorm:"size:50" json:"semester"`
	Credits  *float64 `gorm:"type:decimal(4,1);default:3.0" json:"credits"`
	Status   string   `gorm:"size:20;not null;default:ongoing;index" json:"status"`
	Grade    *float64 `gorm:"type:decimal(3,2)" json:"grade"`
}

type Note struct {
	Base
	Owner
	CourseID uint   `gorm:"not null;index" json:"course_id"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	File     string `gorm:"size:500" json:"file"`
}

// Flashcard carries SM-2 review state alongside the card.
type Flashcard struct {
	Base
	Owner
	CourseID     uint       `gorm:"not null;index" json:"course_id"`
	Question     string     `gorm:"type:text;not null" json:"question"`
	Answer       string     `gorm:"type:text;not null" json:"answer"`
	Easiness     float64    `gorm:"not null;default:2.5" json:"easiness"`
	Interval     int        `gorm:"not null;default:0" json:"interval"`
	Repetitions  int        `gorm:"not null;default:0" json:"repetitions"`
	NextReview   *time.Time `json:"next_review"`
	LastReviewed *time.Time `json:"last_reviewed"`
}

type StudySession struct {
	Base
	Owner
	CourseID        uint      `gorm:"not null;index" json:"course_id"`
	Course          *Course   `json:"course,omitempty"`
	Date            time.Time `gorm:"type:date;not null;index" json:"date"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	TopicsCovered   string    `gorm:"type:text" json:"topics_covered"`
}
