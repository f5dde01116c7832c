package services

import (
	"fmt"
	"sort"
	"time"

	"personalhub/model"
)

const (
	minEasiness     = 1.3
	passQuality     = 3
	maxIntervalDays = 365
)

// ReviewFlashcard applies one SM-2 step for a recall quality between 0 and 5.
func ReviewFlashcard(card *model.Flashcard, quality int, now time.Time) error {
	if quality < 0 || quality > 5 {
		return fmt.Errorf("%w: quality must be between 0 and 5", ErrInvalidInput)
	}
	if card.Easiness == 0 {
		card.Easiness = 2.5
	}

	q := float64(quality)
	card.Easiness += 0.1 - (5-q)*(0.08+(5-q)*0.02)
	if card.Easiness < minEasiness {
		card.Easiness = minEasiness
	}

	if quality >= passQuality {
		switch card.Repetitions {
		case 0:
			card.Interval = 1
		case 1:
			card.Interval = 6
		default:
			card.Interval = int(float64(card.Interval)*card.Easiness + 0.5)
		}
		if card.Interval > maxIntervalDays {
			card.Interval = maxIntervalDays
		}
		card.Repetitions++
	} else {
		card.Repetitions = 0
		card.Interval = 1
	}

	now = now.UTC()
	next := now.AddDate(0, 0, card.Interval)
	card.LastReviewed = &now
	card.NextReview = &next
	return nil
}

// DueFlashcards picks up to limit cards due at now: never reviewed first, then the
// hardest, then the most overdue.
func DueFlashcards(cards []model.Flashcard, now time.Time, limit int) []model.Flashcard {
	var due []model.Flashcard
	for _, c := range cards {
		if c.NextReview == nil || !c.NextReview.After(now) {
			due = append(due, c)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if (a.Repetitions == 0) != (b.Repetitions == 0) {
			return a.Repetitions == 0
		}
		if a.Easiness != b.Easiness {
			return a.Easiness < b.Easiness
		}
		if a.NextReview == nil || b.NextReview == nil {
			return a.NextReview == nil && b.NextReview != nil
		}
		return a.NextReview.Before(*b.NextReview)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due
}
