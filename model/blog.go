package model

import "time"

type BlogPost struct {
	Base
	Owner
	Title         string        `gorm:"size:255;not null" json:"title"`
	Slug          string        `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Content       string        `gorm:"type:text;not null" json:"content"`
	Category      string        `gorm:"size:50;not null;default:other;index" json:"category"`
	PublishedDate *time.Time    `gorm:"index" json:"published_date"`
	Featured      bool          `gorm:"not null;default:false" json:"featured"`
	Snippets      []CodeSnippet `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"snippets,omitempty"`
}

type CodeSnippet struct {
	Base
	PostID      *uint  `gorm:"index" json:"post_id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Language    string `gorm:"size:50;not null;default:python" json:"language"`
	Code        string `gorm:"type:text;not null" json:"code"`
	Description string `gorm:"type:text" json:"description"`
}

type Tutorial struct {
	Base
	Owner
	Title       string `gorm:"size:255;not null" json:"title"`
	Slug        string `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text;not null" json:"description"`
	Difficulty  string `gorm:"size:20;not null;default:beginner" json:"difficulty"`
	Parts       int    `gorm:"not null;default:1" json:"parts"`
}
