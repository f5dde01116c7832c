package dto

import (
	"strings"

	"personalhub/model"

	"gorm.io/datatypes"
)

type SocialLinksRequest struct {
	LinkedIn string `json:"linkedin" binding:"omitempty,url"`
	GitHub   string `json:"github" binding:"omitempty,url"`
	Twitter  string `json:"twitter" binding:"omitempty,url"`
	Website  string `json:"website" binding:"omitempty,url"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type ProfileRequest struct {
	Bio         string             `json:"bio"`
	Tagline     string             `json:"tagline" binding:"max=255"`
	SocialLinks SocialLinksRequest `json:"social_links"`
}

func (r ProfileRequest) Apply(m *model.Profile) {
	m.Bio = r.Bio
	m.Tagline = r.Tagline
	m.SocialLinks = datatypes.NewJSONType(model.SocialLinks(r.SocialLinks))
}

type ProjectRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Slug        string   `json:"slug" binding:"omitempty,max=191"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required,oneof=ai electronics web other"`
	TechStack   []string `json:"tech_stack" binding:"dive,required,max=50"`
	GithubURL   string   `json:"github_url" binding:"omitempty,url"`
	LiveLink    string   `json:"live_link" binding:"omitempty,url"`
	Status      string   `json:"status" binding:"omitempty,oneof=active completed archived"`
}

func (r ProjectRequest) Apply(m *model.Project) {
	m.Title = strings.TrimSpace(r.Title)
	m.Description = r.Description
	m.Category = r.Category
	stack := make([]string, 0, len(r.TechStack))
	for _, t := range r.TechStack {
		stack = append(stack, strings.TrimSpace(t))
	}
	m.TechStack = datatypes.JSONSlice[string](stack)
	m.GithubURL = r.GithubURL
	m.LiveLink = r.LiveLink
	m.Status = orDefault(r.Status, m.Status, model.ProjectActive)
}

type SkillRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Category    string `json:"category" binding:"required,oneof=frontend backend tools soft"`
	Proficiency *int   `json:"proficiency" binding:"omitempty,min=0,max=100"`
}

func (r SkillRequest) Apply(m *model.Skill) error {
	m.Name = strings.TrimSpace(r.Name)
	m.Category = r.Category
	if r.Proficiency != nil {
		m.Proficiency = *r.Proficiency
	} else if m.ID == 0 {
		m.Proficiency = 50
	}
	return nil
}

type TimelineRequest struct {
	Year        string `json:"year" binding:"required,max=20"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required,oneof=education work award"`
}

func (r TimelineRequest) Apply(m *model.TimelineEntry) error {
	m.Year = r.Year
	m.Title = strings.TrimSpace(r.Title)
	m.Description = r.Description
	m.Category = r.Category
	return nil
}

type ContactRequest struct {
	Name         string `json:"name" form:"name" binding:"required,max=255"`
	Email        string `json:"email" form:"email" binding:"required,email"`
	Subject      string `json:"subject" form:"subject" binding:"required,max=255"`
	Message      string `json:"message" form:"message" binding:"required"`
	CaptchaToken string `json:"captcha_token" form:"g-recaptcha-response"`
}
