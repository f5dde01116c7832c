package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"personalhub/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NextStreak computes the streak after completing a habit on today.
// ok is false when the habit was already completed today.
func NextStreak(current int, last *time.Time, today time.Time) (streak int, ok bool) {
	if last == nil {
		return 1, true
	}
	switch gap := DaysBetween(*last, today); {
	case gap == 0:
		return current, false
	case gap == 1:
		return current + 1, true
	case gap > 1:
		return 1, true
	default:
		// last completion lies in the future
		if current < 1 {
			return 1, true
		}
		return current, true
	}
}

type StreakService struct {
	db *gorm.DB
}

func NewStreakService(db *gorm.DB) *StreakService {
	return &StreakService{db: db}
}

// Track records a completion of the habit on today. The read and the write happen in
// one transaction under a row lock, and the write only applies if last_completed_date
// is still the value that was read. A repeat on the same day returns the unchanged
// habit together with ErrAlreadyCompletedToday.
func (s *StreakService) Track(ctx context.Context, userID, habitID uint, today time.Time) (*model.Habit, error) {
	today = DateOf(today)
	var habit model.Habit
	var already bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", habitID, userID).
			First(&habit).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		streak, ok := NextStreak(habit.CurrentStreak, habit.LastCompletedDate, today)
		if !ok {
			already = true
			return nil
		}

		q := tx.Model(&model.Habit{}).Where("id = ?", habit.ID)
		if habit.LastCompletedDate == nil {
			q = q.Where("last_completed_date IS NULL")
		} else {
			q = q.Where("last_completed_date = ?", DateOf(*habit.LastCompletedDate))
		}
		res := q.Updates(map[string]interface{}{
			"current_streak":      streak,
			"last_completed_date": today,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// another request completed it between our read and write
			if err := tx.First(&habit, habit.ID).Error; err != nil {
				return err
			}
			already = true
			return nil
		}
		habit.CurrentStreak = streak
		habit.LastCompletedDate = &today
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("track habit %d: %w", habitID, err)
	}

	logrus.WithFields(logrus.Fields{
		"habit":  habit.ID,
		"streak": habit.CurrentStreak,
		"repeat": already,
	}).Debug("habit tracked")
	if already {
		return &habit, ErrAlreadyCompletedToday
	}
	return &habit, nil
}
