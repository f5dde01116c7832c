package services

import (
	"context"
	"fmt"

	"personalhub/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"
)

type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier forwards notifications to users who linked a chat id.
type TelegramNotifier struct {
	bot TelegramSender
	db  *gorm.DB
}

func NewTelegramNotifier(token string, db *gorm.DB) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, db: db}, nil
}

func NewTelegramNotifierWithSender(sender TelegramSender, db *gorm.DB) *TelegramNotifier {
	return &TelegramNotifier{bot: sender, db: db}
}

func (t *TelegramNotifier) Deliver(ctx context.Context, n *model.Notification) error {
	var user model.User
	err := t.db.WithContext(ctx).Select("id", "telegram_chat_id").First(&user, n.UserID).Error
	if err != nil {
		return err
	}
	if user.TelegramChatID == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(*user.TelegramChatID, n.Title+"\n\n"+n.Message)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send to user %d: %w", n.UserID, err)
	}
	return nil
}
