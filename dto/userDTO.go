package dto

import (
	"time"

	"personalhub/model"
)

type UserResponse struct {
	UserID         uint   `json:"user_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Profile        string `json:"profile"`
	Role           string `json:"role"`
	IsActive       bool   `json:"is_active"`
	TelegramChatID *int64 `json:"telegram_chat_id,omitempty"`
	CreatedAt      string `json:"created_at"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		UserID:         u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Profile:        u.Profile,
		Role:           u.Role,
		IsActive:       u.Active,
		TelegramChatID: u.TelegramChatID,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}

type UpdateProfileRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=255"`
	Password       *string `json:"password" binding:"omitempty,min=8"`
	Profile        *string `json:"profile" binding:"omitempty,max=500"`
	TelegramChatID *int64  `json:"telegram_chat_id"`
	UnlinkTelegram bool    `json:"unlink_telegram"`
}
