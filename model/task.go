package model

import "time"

const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskDone       = "done"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Task struct {
	Base
	Owner
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:20;not null;default:todo;index" json:"status"`
	Priority    string     `gorm:"size:20;not null;default:medium" json:"priority"`
	DueDate     *time.Time `gorm:"type:date;index" json:"due_date"`
}
