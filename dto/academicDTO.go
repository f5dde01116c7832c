package dto

import (
	"strings"

	"personalhub/model"
	"personalhub/services"
)

type CourseRequest struct {
	Name     string   `json:"name" binding:"required,max=255"`
	Code     string   `json:"code" binding:"max=50"`
	Semester string   `json:"semester" binding:"max=50"`
	Credits  *float64 `json:"credits" binding:"omitempty,min=0,max=999.9"`
	Status   string   `json:"status" binding:"omitempty,oneof=ongoing completed dropped"`
	Grade    *float64 `json:"grade" binding:"omitempty,min=0,max=9.99"`
}

func (r CourseRequest) Apply(m *model.Course) error {
	m.Name = strings.TrimSpace(r.Name)
	m.Code = r.Code
	m.Semester = r.Semester
	if r.Credits != nil {
		m.Credits = r.Credits
	} else if m.Credits == nil {
		def := 3.0
		m.Credits = &def
	}
	m.Status = orDefault(r.Status, m.Status, model.CourseOngoing)
	m.Grade = r.Grade
	return nil
}

type NoteRequest struct {
	CourseID uint   `json:"course_id" binding:"required"`
	Title    string `json:"title" binding:"required,max=255"`
	Content  string `json:"content"`
}

func (r NoteRequest) Apply(m *model.Note) error {
	m.CourseID = r.CourseID
	m.Title = strings.TrimSpace(r.Title)
	m.Content = r.Content
	return nil
}

type FlashcardRequest struct {
	CourseID uint   `json:"course_id" binding:"required"`
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

func (r FlashcardRequest) Apply(m *model.Flashcard) error {
	m.CourseID = r.CourseID
	m.Question = strings.TrimSpace(r.Question)
	m.Answer = strings.TrimSpace(r.Answer)
	if m.Easiness == 0 {
		m.Easiness = 2.5
	}
	return nil
}

type StudySessionRequest struct {
	CourseID        uint   `json:"course_id" binding:"required"`
	Date            string `json:"date" binding:"omitempty,ymd"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=1440"`
	TopicsCovered   string `json:"topics_covered"`
}

func (r StudySessionRequest) Apply(m *model.StudySession) error {
	date, err := services.ParseDateOrToday(r.Date)
	if err != nil {
		return err
	}
	m.CourseID = r.CourseID
	m.Date = date
	m.DurationMinutes = r.DurationMinutes
	m.TopicsCovered = r.TopicsCovered
	return nil
}

type ReviewRequest struct {
	Quality *int `json:"quality" binding:"required,min=0,max=5"`
}

type QuestionsRequest struct {
	Topic string `json:"topic" binding:"required"`
	Count int    `json:"count" binding:"omitempty,min=1,max=20"`
}
