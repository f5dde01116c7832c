package model

import "time"

type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Owner marks a row as belonging to a single user.
type Owner struct {
	UserID uint `gorm:"not null;index" json:"user_id"`
}

func (o *Owner) SetOwner(userID uint) { o.UserID = userID }

func (o Owner) OwnerID() uint { return o.UserID }

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{}, &RefreshToken{},
		&Task{}, &Habit{}, &Goal{}, &Milestone{}, &Timetable{}, &Transaction{}, &Document{},
		&Course{}, &Note{}, &Flashcard{}, &StudySession{},
		&Notification{},
		&Profile{}, &TimelineEntry{}, &Skill{}, &Project{}, &ProjectImage{}, &ContactMessage{},
		&JournalEntry{}, &Philosophy{}, &VisionGoal{}, &LifeLesson{},
		&BlogPost{}, &CodeSnippet{}, &Tutorial{},
		&BusinessIdea{}, &MarketResearch{}, &BusinessPlan{}, &ImportExportRecord{},
		&Conversation{}, &Message{}, &PromptTemplate{}, &PDFAnalysis{},
	}
}
