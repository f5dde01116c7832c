package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

var TransactionCategories = []string{
	"food", "transport", "entertainment", "shopping", "bills", "education",
	"health", "salary", "freelance", "investment", "other",
}

type Transaction struct {
	Base
	Owner
	Type        string    `gorm:"size:20;not null;index" json:"type"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Description string    `gorm:"type:text" json:"description"`
}

type TimeSlot struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

type WeeklySchedule struct {
	Monday    []TimeSlot `json:"monday,omitempty"`
	Tuesday   []TimeSlot `json:"tuesday,omitempty"`
	Wednesday []TimeSlot `json:"wednesday,omitempty"`
	Thursday  []TimeSlot `json:"thursday,omitempty"`
	Friday    []TimeSlot `json:"friday,omitempty"`
	Saturday  []TimeSlot `json:"saturday,omitempty"`
	Sunday    []TimeSlot `json:"sunday,omitempty"`
}

// Day returns the slot list for a lower-case weekday name, or nil for an unknown name.
func (w *WeeklySchedule) Day(name string) *[]TimeSlot {
	switch name {
	case "monday":
		return &w.Monday
	case "tuesday":
		return &w.Tuesday
	case "wednesday":
		return &w.Wednesday
	case "thursday":
		return &w.Thursday
	case "friday":
		return &w.Friday
	case "saturday":
		return &w.Saturday
	case "sunday":
		return &w.Sunday
	}
	return nil
}

var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

type Timetable struct {
	Base
	Owner
	Name     string                             `gorm:"size:255;not null" json:"name"`
	Schedule datatypes.JSONType[WeeklySchedule] `json:"schedule"`
	Active   bool                               `gorm:"not null;default:true" json:"active"`
}

type Document struct {
	Base
	Owner
	Title    string `gorm:"size:255;not null" json:"title"`
	File     string `gorm:"size:500;not null" json:"file"`
	FileURL  string `gorm:"-" json:"file_url,omitempty"`
	Category string `gorm:"size:100;index" json:"category"`
	Tags     string `gorm:"size:500" json:"tags"`
}
