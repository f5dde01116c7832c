package services_test

import (
	"testing"
	"time"

	"personalhub/model"
	"personalhub/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewFlashcardSchedule(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	card := &model.Flashcard{Easiness: 2.5}

	require.NoError(t, services.ReviewFlashcard(card, 5, now))
	assert.InDelta(t, 2.6, card.Easiness, 1e-9)
	assert.Equal(t, 1, card.Interval)
	assert.Equal(t, 1, card.Repetitions)
	require.NotNil(t, card.NextReview)
	assert.Equal(t, now.AddDate(0, 0, 1), *card.NextReview)
	assert.Equal(t, now, *card.LastReviewed)

	require.NoError(t, services.ReviewFlashcard(card, 4, now))
	assert.InDelta(t, 2.6, card.Easiness, 1e-9)
	assert.Equal(t, 6, card.Interval)
	assert.Equal(t, 2, card.Repetitions)

	require.NoError(t, services.ReviewFlashcard(card, 5, now))
	assert.InDelta(t, 2.7, card.Easiness, 1e-9)
	assert.Equal(t, 16, card.Interval)
	assert.Equal(t, 3, card.Repetitions)

	require.NoError(t, services.ReviewFlashcard(card, 2, now))
	assert.InDelta(t, 2.38, card.Easiness, 1e-9)
	assert.Equal(t, 1, card.Interval)
	assert.Equal(t, 0, card.Repetitions)
}

func TestReviewFlashcardClampsEasiness(t *testing.T) {
	card := &model.Flashcard{Easiness: 1.3}
	require.NoError(t, services.ReviewFlashcard(card, 0, time.Now()))
	assert.Equal(t, 1.3, card.Easiness)
}

func TestReviewFlashcardRejectsQuality(t *testing.T) {
	card := &model.Flashcard{Easiness: 2.5}
	assert.ErrorIs(t, services.ReviewFlashcard(card, 6, time.Now()), services.ErrInvalidInput)
	assert.ErrorIs(t, services.ReviewFlashcard(card, -1, time.Now()), services.ErrInvalidInput)
	assert.Equal(t, 2.5, card.Easiness)
	assert.Nil(t, card.NextReview)
}

func TestDueFlashcards(t *testing.T) {
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	at := func(day int) *time.Time {
		d := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
		return &d
	}
	cards := []model.Flashcard{
		{Question: "reviewed", Easiness: 2.5, Repetitions: 2, NextReview: at(5)},
		{Question: "new", Easiness: 2.5},
		{Question: "hard", Easiness: 1.5, Repetitions: 1, NextReview: at(8)},
		{Question: "future", Easiness: 1.3, Repetitions: 3, NextReview: at(20)},
	}

	due := services.DueFlashcards(cards, now, 0)
	var order []string
	for _, c := range due {
		order = append(order, c.Question)
	}
	assert.Equal(t, []string{"new", "hard", "reviewed"}, order)

	assert.Len(t, services.DueFlashcards(cards, now, 2), 2)
}
