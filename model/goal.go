package model

import "time"

type Goal struct {
	Base
	Owner
	Title       string      `gorm:"size:255;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	TargetDate  *time.Time  `gorm:"type:date" json:"target_date"`
	Progress    int         `gorm:"not null;default:0" json:"progress"`
	Milestones  []Milestone `gorm:"constraint:OnDelete:CASCADE" json:"milestones,omitempty"`
}

type Milestone struct {
	Base
	Owner
	GoalID        uint       `gorm:"not null;index" json:"goal_id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Completed     bool       `gorm:"not null;default:false" json:"completed"`
	DueDate       *time.Time `gorm:"type:date" json:"due_date"`
	CompletedDate *time.Time `gorm:"type:date" json:"completed_date"`
}
