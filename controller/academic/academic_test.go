package academic

import (
	"fmt"
	"net/http"
	"testing"

	"personalhub/model"
	"personalhub/services"
	"personalhub/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourse(t *testing.T, router *gin.Engine, token string, body gin.H) model.Course {
	t.Helper()
	w := testutil.Do(t, router, http.MethodPost, "/api/courses", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var course model.Course
	testutil.Decode(t, w, &course)
	return course
}

func TestGPAEndpoint(t *testing.T) {
	deps := testutil.NewDeps(t)
	router := testutil.NewRouter(t)
	AcademicController(router, deps)
	token := testutil.Token(t, deps, testutil.CreateUser(t, deps.DB, "student@example.com"))

	var empty struct {
		GPA float64 `json:"gpa"`
	}
	testutil.Decode(t, testutil.Do(t, router, http.MethodGet, "/api/academic/gpa", token, nil), &empty)
	assert.Zero(t, empty.GPA)

	newCourse(t, router, token, gin.H{"name": "Algorithms", "credits": 3, "grade": 4.0, "status": "completed"})
	newCourse(t, router, token, gin.H{"name": "Databases", "credits": 4, "grade": 3.0, "status": "completed"})
	newCourse(t, router, token, gin.H{"name": "Compilers", "credits": 3, "grade": 1.0})

	var got struct {
		GPA          float64 `json:"gpa"`
		TotalCredits float64 `json:"total_credits"`
	}
	w := testutil.Do(t, router, http.MethodGet, "/api/academic/gpa", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &got)
	assert.Equal(t, 3.43, got.GPA)
	assert.Equal(t, 7.0, got.TotalCredits)
}

func TestNotesBelongToOwnCourses(t *testing.T) {
	deps := testutil.NewDeps(t)
	router := testutil.NewRouter(t)
	AcademicController(router, deps)
	alice := testutil.Token(t, deps, testutil.CreateUser(t, deps.DB, "alice@example.com"))
	bob := testutil.Token(t, deps, testutil.CreateUser(t, deps.DB, "bob@example.com"))

	course := newCourse(t, router, alice, gin.H{"name": "Linear Algebra"})

	w := testutil.Do(t, router, http.MethodPost, "/api/notes", bob, gin.H{"course_id": course.ID, "title": "stolen"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutil.Do(t, router, http.MethodPost, "/api/notes", alice, gin.H{"course_id": course.ID, "title": "Eigenvalues"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var notes []model.Note
	testutil.Decode(t, testutil.Do(t, router, http.MethodGet, fmt.Sprintf("/api/notes?course=%d", course.ID), alice, nil), &notes)
	assert.Len(t, notes, 1)

	require.Equal(t, http.StatusOK, testutil.Do(t, router, http.MethodDelete, fmt.Sprintf("/api/courses/%d", course.ID), alice, nil).Code)
	var left int64
	require.NoError(t, deps.DB.Model(&model.Note{}).Count(&left).Error)
	assert.Zero(t, left)
}

func TestFlashcardReview(t *testing.T) {
	deps := testutil.NewDeps(t)
	router := testutil.NewRouter(t)
	AcademicController(router, deps)
	token := testutil.Token(t, deps, testutil.CreateUser(t, deps.DB, "cards@example.com"))

	course := newCourse(t, router, token, gin.H{"name": "Spanish"})
	w := testutil.Do(t, router, http.MethodPost, "/api/flashcards", token, gin.H{"course_id": course.ID, "question": "hola", "answer": "hello"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var card model.Flashcard
	testutil.Decode(t, w, &card)
	assert.Equal(t, 2.5, card.Easiness)

	review := fmt.Sprintf("/api/flashcards/%d/review", card.ID)
	assert.Equal(t, http.StatusBadRequest, testutil.Do(t, router, http.MethodPost, review, token, gin.H{"quality": 7}).Code)
	assert.Equal(t, http.StatusBadRequest, testutil.Do(t, router, http.MethodPost, review, token, gin.H{}).Code)

	w = testutil.Do(t, router, http.MethodPost, review, token, gin.H{"quality": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	testutil.Decode(t, w, &card)
	assert.Equal(t, 1, card.Interval)
	assert.Equal(t, 1, card.Repetitions)
	assert.NotNil(t, card.NextReview)

	var stored model.Flashcard
	require.NoError(t, deps.DB.First(&stored, card.ID).Error)
	assert.Equal(t, 1, stored.Repetitions)
	assert.InDelta(t, 2.6, stored.Easiness, 1e-9)
}

func TestQuestionsWithoutAIKey(t *testing.T) {
	deps := testutil.NewDeps(t)
	router := testutil.NewRouter(t)
	AcademicController(router, deps)
	token := testutil.Token(t, deps, testutil.CreateUser(t, deps.DB, "ai@example.com"))
	course := newCourse(t, router, token, gin.H{"name": "History"})

	w := testutil.Do(t, router, http.MethodPost, fmt.Sprintf("/api/courses/%d/questions", course.ID), token, gin.H{"topic": "Rome"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStudyStats(t *testing.T) {
	calculus := &model.Course{Name: "Math"}
	sessions := []model.StudySession{
		{CourseID: 1, Course: calculus, Date: testutil.Date(t, "2024-03-07"), DurationMinutes: 60},
		{CourseID: 2, Date: testutil.Date(t, "2024-03-05"), DurationMinutes: 30},
		{CourseID: 1, Course: calculus, Date: testutil.Date(t, "2024-02-01"), DurationMinutes: 45},
	}
	window := services.LastDays(testutil.Date(t, "2024-03-07"), 3)

	hours, perCourse, perDay := StudyStats(sessions, window)
	assert.Equal(t, 2.3, hours)
	assert.Equal(t, []courseMinutes{
		{CourseID: 1, Name: "Math", Minutes: 105},
		{CourseID: 2, Minutes: 30},
	}, perCourse)
	assert.Equal(t, []dayMinutes{
		{Date: "2024-03-05", Minutes: 30},
		{Date: "2024-03-06"},
		{Date: "2024-03-07", Minutes: 60},
	}, perDay)
}
