package services

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// DateOf truncates t to midnight UTC. Every stored calendar date goes through it.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Today() time.Time {
	return DateOf(time.Now())
}

// DaysBetween returns to - from in whole calendar days.
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t, nil
}

// ParseOptionalDate maps an empty string to nil.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseDateOrToday maps an empty string to today.
func ParseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		return Today(), nil
	}
	return ParseDate(s)
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// LastDays is the n days ending on today.
func LastDays(today time.Time, n int) DateRange {
	today = DateOf(today)
	return DateRange{From: today.AddDate(0, 0, -(n - 1)), To: today}
}

// NextDays is the n days starting on today.
func NextDays(today time.Time, n int) DateRange {
	today = DateOf(today)
	return DateRange{From: today, To: today.AddDate(0, 0, n-1)}
}

func (r DateRange) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(r.From) && !d.After(r.To)
}

func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.From; !d.After(r.To); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
