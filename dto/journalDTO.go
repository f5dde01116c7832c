package dto

import (
	"strings"

	"personalhub/model"
	"personalhub/services"
)

type JournalEntryRequest struct {
	Date        string `json:"date" binding:"omitempty,ymd"`
	Content     string `json:"content" binding:"required"`
	Mood        string `json:"mood" binding:"omitempty,oneof=excellent good okay poor terrible"`
	EnergyLevel string `json:"energy_level" binding:"omitempty,oneof=high medium low"`
	Tags        string `json:"tags" binding:"max=500"`
}

func (r JournalEntryRequest) Apply(m *model.JournalEntry) error {
	date, err := services.ParseDateOrToday(r.Date)
	if err != nil {
		return err
	}
	m.Date = date
	m.Content = r.Content
	m.Mood = r.Mood
	m.EnergyLevel = r.EnergyLevel
	m.Tags = r.Tags
	return nil
}

type PhilosophyRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Content     string `json:"content" binding:"required"`
	Category    string `json:"category" binding:"omitempty,oneof=life work relationships growth values other"`
	DateWritten string `json:"date_written" binding:"omitempty,ymd"`
}

func (r PhilosophyRequest) Apply(m *model.Philosophy) error {
	date, err := services.ParseDateOrToday(r.DateWritten)
	if err != nil {
		return err
	}
	m.Title = strings.TrimSpace(r.Title)
	m.Content = r.Content
	m.Category = orDefault(r.Category, m.Category, "life")
	m.DateWritten = date
	return nil
}

type VisionGoalRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"omitempty,oneof=career education business personal africa financial health other"`
	TargetDate  string `json:"target_date" binding:"omitempty,ymd"`
	Progress    *int   `json:"progress" binding:"omitempty,min=0,max=100"`
}

func (r VisionGoalRequest) Apply(m *model.VisionGoal) error {
	target, err := services.ParseOptionalDate(r.TargetDate)
	if err != nil {
		return err
	}
	m.Title = strings.TrimSpace(r.Title)
	m.Description = r.Description
	m.Category = orDefault(r.Category, m.Category, "personal")
	m.TargetDate = target
	if r.Progress != nil {
		m.Progress = *r.Progress
	}
	return nil
}

type LifeLessonRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Lesson      string `json:"lesson" binding:"required"`
	Context     string `json:"context"`
	DateLearned string `json:"date_learned" binding:"omitempty,ymd"`
}

func (r LifeLessonRequest) Apply(m *model.LifeLesson) error {
	date, err := services.ParseDateOrToday(r.DateLearned)
	if err != nil {
		return err
	}
	m.Title = strings.TrimSpace(r.Title)
	m.Lesson = r.Lesson
	m.Context = r.Context
	m.DateLearned = date
	return nil
}
