package services

import (
	"context"
	"math"

	"personalhub/model"

	"gorm.io/gorm"
)

// ComputeGPA returns the credit-weighted grade average rounded to two places.
// Courses missing a grade or credits are skipped; zero total credits yields 0.
func ComputeGPA(courses []model.Course) float64 {
	var points, credits float64
	for _, c := range courses {
		if c.Grade == nil || c.Credits == nil {
			continue
		}
		points += *c.Grade * *c.Credits
		credits += *c.Credits
	}
	if credits == 0 {
		return 0
	}
	return math.Round(points/credits*100) / 100
}

// TotalCredits sums credits of courses that count towards the GPA.
func TotalCredits(courses []model.Course) float64 {
	var total float64
	for _, c := range courses {
		if c.Grade != nil && c.Credits != nil {
			total += *c.Credits
		}
	}
	return total
}

// CompletedCoursesGPA reads the user's completed courses and averages them.
func CompletedCoursesGPA(ctx context.Context, db *gorm.DB, userID uint) (float64, float64, error) {
	var courses []model.Course
	err := db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.CourseCompleted).
		Find(&courses).Error
	if err != nil {
		return 0, 0, err
	}
	return ComputeGPA(courses), TotalCredits(courses), nil
}
