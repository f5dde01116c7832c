package model

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	Base
	Name           string `gorm:"size:255;not null" json:"name"`
	Email          string `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Password       string `gorm:"size:255;not null" json:"-"`
	Profile        string `gorm:"size:500" json:"profile"`
	Role           string `gorm:"size:20;not null;default:user" json:"role"`
	Active         bool   `gorm:"not null;default:true" json:"active"`
	TelegramChatID *int64 `json:"telegram_chat_id,omitempty"`
}
