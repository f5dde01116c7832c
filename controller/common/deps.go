package common

import (
	"personalhub/services"

	"gorm.io/gorm"
)

// Deps carries the shared services every controller registers against.
type Deps struct {
	DB            *gorm.DB
	Tokens        *services.TokenService
	Users         *services.UserService
	Streaks       *services.StreakService
	Notifications *services.NotificationService
	Hub           *services.NotificationHub
	AI            *services.AIService
	Store         services.BlobStore
	Mailer        *services.EmailService
	Captcha       services.CaptchaVerifier
	MediaPrefix   string
	StaticPrefix  string
}
