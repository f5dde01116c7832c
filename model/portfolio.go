package model

import "gorm.io/datatypes"

type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
	Email    string `json:"email,omitempty"`
}

type Profile struct {
	Base
	UserID      uint                            `gorm:"not null;uniqueIndex" json:"user_id"`
	Bio         string                          `gorm:"type:text" json:"bio"`
	Photo       string                          `gorm:"size:500" json:"photo"`
	Tagline     string                          `gorm:"size:255" json:"tagline"`
	CVFile      string                          `gorm:"size:500" json:"cv_file"`
	SocialLinks datatypes.JSONType[SocialLinks] `json:"social_links"`
}

type TimelineEntry struct {
	Base
	Year        string `gorm:"size:20;not null" json:"year"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:100;not null" json:"category"`
}

type Skill struct {
	Base
	Name        string `gorm:"size:100;not null" json:"name"`
	Category    string `gorm:"size:100;not null;index" json:"category"`
	Proficiency int    `gorm:"not null;default:50" json:"proficiency"`
}

const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectArchived  = "archived"
)

type Project struct {
	Base
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Slug        string                      `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Description string                      `gorm:"type:text" json:"description"`
	Category    string                      `gorm:"size:100;not null;index" json:"category"`
	TechStack   datatypes.JSONSlice[string] `json:"tech_stack"`
	Image       string                      `gorm:"size:500" json:"image"`
	GithubURL   string                      `gorm:"size:500" json:"github_url"`
	LiveLink    string                      `gorm:"size:500" json:"live_link"`
	Status      string                      `gorm:"size:20;not null;default:active;index" json:"status"`
	Images      []ProjectImage              `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

type ProjectImage struct {
	Base
	ProjectID uint   `gorm:"not null;index" json:"project_id"`
	Image     string `gorm:"size:500;not null" json:"image"`
	Caption   string `gorm:"size:255" json:"caption"`
}

// ContactMessage records every contact form submission, sent or not.
type ContactMessage struct {
	Base
	Name    string `gorm:"size:255;not null" json:"name"`
	Email   string `gorm:"size:255;not null" json:"email"`
	Subject string `gorm:"size:255;not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`
	Sent    bool   `gorm:"not null;default:false" json:"sent"`
}
