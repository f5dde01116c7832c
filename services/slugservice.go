package services

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const maxSlugAttempts = 100

// UniqueSlug derives a slug from title that is unused in table, appending -1, -2, ...
// on collision. excludeID skips the row being renamed.
func UniqueSlug(ctx context.Context, db *gorm.DB, table, title string, excludeID uint) (string, error) {
	base := slug.Make(title)
	if base == "" {
		return "", fmt.Errorf("%w: title produces an empty slug", ErrInvalidInput)
	}
	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		var count int64
		q := db.WithContext(ctx).Table(table).Where("slug = ?", candidate)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("%w: slug %s is taken", ErrConflict, base)
}
