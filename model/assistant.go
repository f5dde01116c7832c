package model

import "gorm.io/datatypes"

const (
	AssistantGeneral = "general"
	AssistantStudy   = "study"
	AssistantCode    = "code"
	AssistantWriting = "writing"
)

type Conversation struct {
	Base
	Owner
	Title         string    `gorm:"size:255" json:"title"`
	AssistantType string    `gorm:"size:20;not null;default:general" json:"assistant_type"`
	Messages      []Message `gorm:"constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

type Message struct {
	Base
	ConversationID uint   `gorm:"not null;index" json:"conversation_id"`
	Role           string `gorm:"size:20;not null" json:"role"`
	Content        string `gorm:"type:text;not null" json:"content"`
}

type PromptTemplate struct {
	Base
	Owner
	Name         string `gorm:"size:255;not null" json:"name"`
	Category     string `gorm:"size:50;not null;default:general" json:"category"`
	TemplateText string `gorm:"type:text;not null" json:"template_text"`
	Description  string `gorm:"type:text" json:"description"`
}

type PDFAnalysis struct {
	Base
	Owner
	File             string                      `gorm:"size:500;not null" json:"file"`
	OriginalFilename string                      `gorm:"size:255" json:"original_filename"`
	Summary          string                      `gorm:"type:text" json:"summary"`
	KeyPoints        datatypes.JSONSlice[string] `json:"key_points"`
}
