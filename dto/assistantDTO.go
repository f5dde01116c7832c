package dto

import (
	"strings"

	"personalhub/model"
)

type ConversationRequest struct {
	Title         string `json:"title" binding:"max=255"`
	AssistantType string `json:"assistant_type" binding:"omitempty,oneof=general study code writing"`
}

func (r ConversationRequest) Apply(m *model.Conversation) error {
	m.Title = strings.TrimSpace(r.Title)
	if m.Title == "" {
		m.Title = "New Conversation"
	}
	m.AssistantType = orDefault(r.AssistantType, m.AssistantType, model.AssistantGeneral)
	return nil
}

type MessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type PromptTemplateRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Category     string `json:"category" binding:"omitempty,oneof=study code writing business general"`
	TemplateText string `json:"template_text" binding:"required"`
	Description  string `json:"description"`
}

func (r PromptTemplateRequest) Apply(m *model.PromptTemplate) error {
	m.Name = strings.TrimSpace(r.Name)
	m.Category = orDefault(r.Category, m.Category, "general")
	m.TemplateText = r.TemplateText
	m.Description = r.Description
	return nil
}

type RenderTemplateRequest struct {
	Variables map[string]string `json:"variables"`
	Send      bool              `json:"send"`
}

type StudyHelpRequest struct {
	Course   string `json:"course" binding:"required"`
	Topic    string `json:"topic" binding:"required"`
	Question string `json:"question" binding:"required"`
}

type CodeAssistRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language" binding:"required"`
	Question string `json:"question"`
}

type WritingAssistRequest struct {
	Text        string `json:"text" binding:"required"`
	RequestType string `json:"request_type" binding:"omitempty,oneof=review edit improve proofread"`
}

type RecommendationRequest struct {
	Interests []string `json:"interests" binding:"required,min=1"`
}
