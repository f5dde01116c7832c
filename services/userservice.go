package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"personalhub/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) UserExist(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", normalizeEmail(email)).Count(&count).Error
	return count > 0, err
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &user, err
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &user, err
}

// Register creates an account. The first account becomes the admin.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Name:     strings.TrimSpace(name),
		Email:    normalizeEmail(email),
		Password: string(hashed),
		Role:     model.RoleUser,
		Active:   true,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			user.Role = model.RoleAdmin
		}
		return tx.Create(&user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("%w: email %s is already registered", ErrConflict, user.Email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks the password and returns the active user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrForbidden
	}
	return user, nil
}

type ProfileUpdate struct {
	Name           *string
	Password       *string
	Profile        *string
	TelegramChatID *int64
	UnlinkTelegram bool
}

func (s *UserService) Update(ctx context.Context, id uint, upd ProfileUpdate) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
		fields["name"] = strings.TrimSpace(*upd.Name)
	}
	if upd.Password != nil && *upd.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password"] = string(hashed)
	}
	if upd.Profile != nil {
		fields["profile"] = *upd.Profile
	}
	if upd.TelegramChatID != nil {
		fields["telegram_chat_id"] = *upd.TelegramChatID
	}
	if upd.UnlinkTelegram {
		fields["telegram_chat_id"] = nil
	}
	if len(fields) == 0 {
		return user, nil
	}
	if err := s.db.WithContext(ctx).Model(user).Updates(fields).Error; err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes the user together with every row the user owns.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []interface{}{
			&model.RefreshToken{}, &model.Task{}, &model.Habit{}, &model.Milestone{}, &model.Goal{},
			&model.Timetable{}, &model.Transaction{}, &model.Document{},
			&model.Note{}, &model.Flashcard{}, &model.StudySession{}, &model.Course{},
			&model.Notification{}, &model.Profile{},
			&model.JournalEntry{}, &model.Philosophy{}, &model.VisionGoal{}, &model.LifeLesson{},
			&model.Tutorial{},
			&model.MarketResearch{}, &model.BusinessPlan{}, &model.BusinessIdea{}, &model.ImportExportRecord{},
			&model.PromptTemplate{}, &model.PDFAnalysis{},
		}
		for _, m := range owned {
			if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("conversation_id IN (?)", tx.Model(&model.Conversation{}).Select("id").Where("user_id = ?", id)).
			Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Conversation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN (?)", tx.Model(&model.BlogPost{}).Select("id").Where("user_id = ?", id)).
			Delete(&model.CodeSnippet{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.BlogPost{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
