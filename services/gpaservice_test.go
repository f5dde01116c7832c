package services_test

import (
	"context"
	"testing"

	"personalhub/model"
	"personalhub/services"
	"personalhub/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(v float64) *float64 { return &v }

func TestComputeGPA(t *testing.T) {
	t.Run("no courses", func(t *testing.T) {
		assert.Equal(t, 0.0, services.ComputeGPA(nil))
	})
	t.Run("zero credits", func(t *testing.T) {
		assert.Equal(t, 0.0, services.ComputeGPA([]model.Course{{Credits: num(0), Grade: num(4)}}))
	})
	t.Run("weighted by credits", func(t *testing.T) {
		courses := []model.Course{
			{Credits: num(3), Grade: num(4.0)},
			{Credits: num(4), Grade: num(3.0)},
		}
		// (12 + 12) / 7
		assert.Equal(t, 3.43, services.ComputeGPA(courses))
		assert.Equal(t, 7.0, services.TotalCredits(courses))
	})
	t.Run("ungraded courses are skipped", func(t *testing.T) {
		courses := []model.Course{
			{Credits: num(3), Grade: num(3.5)},
			{Credits: num(3)},
		}
		assert.Equal(t, 3.5, services.ComputeGPA(courses))
		assert.Equal(t, 3.0, services.TotalCredits(courses))
	})
}

func TestCompletedCoursesGPA(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "gpa@example.com")
	for _, c := range []model.Course{
		{Name: "Algorithms", Credits: num(3), Grade: num(4.0), Status: model.CourseCompleted},
		{Name: "Databases", Credits: num(4), Grade: num(3.0), Status: model.CourseCompleted},
		{Name: "Compilers", Credits: num(3), Grade: num(1.0), Status: model.CourseOngoing},
	} {
		c.SetOwner(user.ID)
		require.NoError(t, db.Create(&c).Error)
	}

	gpa, credits, err := services.CompletedCoursesGPA(context.Background(), db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.43, gpa)
	assert.Equal(t, 7.0, credits)
}
