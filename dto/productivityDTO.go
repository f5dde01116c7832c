package dto

import (
	"fmt"
	"strings"

	"personalhub/model"
	"personalhub/services"

	"gorm.io/datatypes"
)

type TaskRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     string `json:"due_date" binding:"omitempty,ymd"`
}

func (r TaskRequest) Apply(m *model.Task) error {
	due, err := services.ParseOptionalDate(r.DueDate)
	if err != nil {
		return err
	}
	m.Title = strings.TrimSpace(r.Title)
	m.Description = r.Description
	m.DueDate = due
	m.Status = orDefault(r.Status, m.Status, model.TaskTodo)
	m.Priority = orDefault(r.Priority, m.Priority, model.PriorityMedium)
	return nil
}

// HabitRequest never carries streak fields; they only change through tracking.
type HabitRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	Frequency string `json:"frequency" binding:"omitempty,oneof=daily weekly"`
}

func (r HabitRequest) Apply(m *model.Habit) error {
	m.Name = strings.TrimSpace(r.Name)
	m.Frequency = orDefault(r.Frequency, m.Frequency, model.FrequencyDaily)
	return nil
}

type GoalRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date" binding:"omitempty,ymd"`
	Progress    *int   `json:"progress" binding:"omitempty,min=0,max=100"`
}

func (r GoalRequest) Apply(m *model.Goal) error {
	target, err := services.ParseOptionalDate(r.TargetDate)
	if err != nil {
		return err
	}
	m.Title = strings.TrimSpace(r.Title)
	m.Description = r.Description
	m.TargetDate = target
	if r.Progress != nil {
		m.Progress = *r.Progress
	}
	return nil
}

type MilestoneRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" binding:"omitempty,ymd"`
}

func (r MilestoneRequest) Apply(m *model.Milestone) error {
	due, err := services.ParseOptionalDate(r.DueDate)
	if err != nil {
		return err
	}
	m.Title = strings.TrimSpace(r.Title)
	m.Description = r.Description
	m.DueDate = due
	return nil
}

type TimetableRequest struct {
	Name     string               `json:"name" binding:"required,max=255"`
	Schedule model.WeeklySchedule `json:"schedule"`
	Active   *bool                `json:"active"`
}

func (r TimetableRequest) Apply(m *model.Timetable) error {
	for _, day := range model.Weekdays {
		for i, slot := range *r.Schedule.Day(day) {
			if strings.TrimSpace(slot.Time) == "" || strings.TrimSpace(slot.Activity) == "" {
				return fmt.Errorf("%w: %s slot %d needs a time and an activity", services.ErrInvalidInput, day, i+1)
			}
		}
	}
	m.Name = strings.TrimSpace(r.Name)
	m.Schedule = datatypes.NewJSONType(r.Schedule)
	if r.Active != nil {
		m.Active = *r.Active
	} else if m.ID == 0 {
		m.Active = true
	}
	return nil
}

type TimetableRow struct {
	Day      string `json:"day" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

type GenerateTimetableRequest struct {
	Name string         `json:"name" binding:"required,max=255"`
	Rows []TimetableRow `json:"rows" binding:"dive"`
}

// Schedule groups rows by day, dropping rows without a time or an activity.
func (r GenerateTimetableRequest) Schedule() model.WeeklySchedule {
	var w model.WeeklySchedule
	for _, row := range r.Rows {
		t, a := strings.TrimSpace(row.Time), strings.TrimSpace(row.Activity)
		if t == "" || a == "" {
			continue
		}
		if day := w.Day(row.Day); day != nil {
			*day = append(*day, model.TimeSlot{Time: t, Activity: a})
		}
	}
	return w
}

type TransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=income expense"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required,oneof=food transport entertainment shopping bills education health salary freelance investment other"`
	Date        string  `json:"date" binding:"omitempty,ymd"`
	Description string  `json:"description"`
}

func (r TransactionRequest) Apply(m *model.Transaction) error {
	date, err := services.ParseDateOrToday(r.Date)
	if err != nil {
		return err
	}
	m.Type = r.Type
	m.Amount = r.Amount
	m.Category = r.Category
	m.Date = date
	m.Description = r.Description
	return nil
}

type DocumentForm struct {
	Title    string `form:"title" binding:"required,max=255"`
	Category string `form:"category" binding:"max=100"`
	Tags     string `form:"tags" binding:"max=500"`
}

func (r DocumentForm) Apply(m *model.Document) error {
	m.Title = strings.TrimSpace(r.Title)
	m.Category = r.Category
	m.Tags = r.Tags
	return nil
}

func orDefault(value, current, fallback string) string {
	if value != "" {
		return value
	}
	if current != "" {
		return current
	}
	return fallback
}
