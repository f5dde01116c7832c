package dto

import (
	"strings"
	"time"

	"personalhub/model"
)

type BlogPostRequest struct {
	Title     string `json:"title" binding:"required,max=255"`
	Slug      string `json:"slug" binding:"omitempty,max=191"`
	Content   string `json:"content" binding:"required"`
	Category  string `json:"category" binding:"omitempty,oneof=django python ai electronics web tutorial project other"`
	Published bool   `json:"published"`
	Featured  bool   `json:"featured"`
}

// Apply publishes the post on first publication and unpublishes it when Published is false.
func (r BlogPostRequest) Apply(m *model.BlogPost, now time.Time) {
	m.Title = strings.TrimSpace(r.Title)
	m.Content = r.Content
	m.Category = orDefault(r.Category, m.Category, "other")
	m.Featured = r.Featured
	switch {
	case r.Published && m.PublishedDate == nil:
		m.PublishedDate = &now
	case !r.Published:
		m.PublishedDate = nil
	}
}

type SnippetRequest struct {
	PostID      *uint  `json:"post_id"`
	Title       string `json:"title" binding:"required,max=255"`
	Language    string `json:"language" binding:"omitempty,oneof=python javascript html css django sql bash go other"`
	Code        string `json:"code" binding:"required"`
	Description string `json:"description"`
}

func (r SnippetRequest) Apply(m *model.CodeSnippet) error {
	m.PostID = r.PostID
	m.Title = strings.TrimSpace(r.Title)
	m.Language = orDefault(r.Language, m.Language, "python")
	m.Code = r.Code
	m.Description = r.Description
	return nil
}

type TutorialRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Slug        string `json:"slug" binding:"omitempty,max=191"`
	Description string `json:"description" binding:"required"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Parts       int    `json:"parts" binding:"omitempty,min=1"`
}

func (r TutorialRequest) Apply(m *model.Tutorial) {
	m.Title = strings.TrimSpace(r.Title)
	m.Description = r.Description
	m.Difficulty = orDefault(r.Difficulty, m.Difficulty, "beginner")
	m.Parts = r.Parts
	if m.Parts == 0 {
		m.Parts = 1
	}
}
