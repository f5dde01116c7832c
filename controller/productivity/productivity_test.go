package productivity

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"
	"time"

	"personalhub/controller/common"
	"personalhub/middleware"
	"personalhub/model"
	"personalhub/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type fixture struct {
	deps   *common.Deps
	router *gin.Engine
	alice  string
	bob    string
}

func setup(t *testing.T) fixture {
	t.Helper()
	deps := testutil.NewDeps(t)
	router := testutil.NewRouter(t)
	ProductivityController(router, deps)
	return fixture{
		deps:   deps,
		router: router,
		alice:  testutil.Token(t, deps, testutil.CreateUser(t, deps.DB, "alice@example.com")),
		bob:    testutil.Token(t, deps, testutil.CreateUser(t, deps.DB, "bob@example.com")),
	}
}

func TestTasksRequireToken(t *testing.T) {
	f := setup(t)
	w := testutil.Do(t, f.router, http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.Do(t, f.router, http.MethodGet, "/api/tasks", "garbage", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOtherUsersTaskIsNotFound(t *testing.T) {
	f := setup(t)

	w := testutil.Do(t, f.router, http.MethodPost, "/api/tasks", f.alice, gin.H{"title": "Write report", "priority": "high"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task model.Task
	testutil.Decode(t, w, &task)
	assert.Equal(t, model.TaskTodo, task.Status)
	path := fmt.Sprintf("/api/tasks/%d", task.ID)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w = testutil.Do(t, f.router, method, path, f.bob, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, method)
	}
	w = testutil.Do(t, f.router, http.MethodPut, path, f.bob, gin.H{"title": "Hijacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var bobs []model.Task
	testutil.Decode(t, testutil.Do(t, f.router, http.MethodGet, "/api/tasks", f.bob, nil), &bobs)
	assert.Empty(t, bobs)

	w = testutil.Do(t, f.router, http.MethodGet, path, f.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &task)
	assert.Equal(t, "Write report", task.Title)
}

func TestTaskValidation(t *testing.T) {
	f := setup(t)
	for _, body := range []gin.H{
		{},
		{"title": "x", "status": "blocked"},
		{"title": "x", "due_date": "31/12/2024"},
	} {
		w := testutil.Do(t, f.router, http.MethodPost, "/api/tasks", f.alice, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
	}
}

func TestTaskListOrder(t *testing.T) {
	f := setup(t)
	for _, body := range []gin.H{
		{"title": "someday", "priority": "high"},
		{"title": "later low", "due_date": "2030-01-02", "priority": "low"},
		{"title": "later high", "due_date": "2030-01-02", "priority": "high"},
		{"title": "soon", "due_date": "2030-01-01", "priority": "low"},
	} {
		require.Equal(t, http.StatusCreated, testutil.Do(t, f.router, http.MethodPost, "/api/tasks", f.alice, body).Code)
	}

	var tasks []model.Task
	testutil.Decode(t, testutil.Do(t, f.router, http.MethodGet, "/api/tasks", f.alice, nil), &tasks)
	var titles []string
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"soon", "later high", "later low", "someday"}, titles)

	testutil.Decode(t, testutil.Do(t, f.router, http.MethodGet, "/api/tasks?status=done", f.alice, nil), &tasks)
	assert.Empty(t, tasks)
}

func TestTrackHabitTwice(t *testing.T) {
	f := setup(t)

	w := testutil.Do(t, f.router, http.MethodPost, "/api/habits", f.alice, gin.H{"name": "Journal"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var habit model.Habit
	testutil.Decode(t, w, &habit)
	assert.Zero(t, habit.CurrentStreak)
	path := fmt.Sprintf("/api/habits/%d/track", habit.ID)

	type trackResponse struct {
		AlreadyCompleted bool        `json:"already_completed"`
		Habit            model.Habit `json:"habit"`
	}
	var first, second trackResponse
	w = testutil.Do(t, f.router, http.MethodPost, path, f.alice, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	testutil.Decode(t, w, &first)
	assert.False(t, first.AlreadyCompleted)
	assert.Equal(t, 1, first.Habit.CurrentStreak)

	w = testutil.Do(t, f.router, http.MethodPost, path, f.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &second)
	assert.True(t, second.AlreadyCompleted)
	assert.Equal(t, 1, second.Habit.CurrentStreak)

	w = testutil.Do(t, f.router, http.MethodPost, path, f.bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHabitUpdateKeepsConcurrentTracking(t *testing.T) {
	f := setup(t)
	w := testutil.Do(t, f.router, http.MethodPost, "/api/habits", f.alice, gin.H{"name": "Read"})
	require.Equal(t, http.StatusCreated, w.Code)
	var habit model.Habit
	testutil.Decode(t, w, &habit)

	// a track lands after the rename loaded the habit and before it is saved
	habits := habitResource(f.deps)
	habits.Check = func(c *gin.Context, _ *gorm.DB, userID uint, m *model.Habit) error {
		_, err := f.deps.Streaks.Track(c.Request.Context(), userID, m.ID, time.Now())
		return err
	}
	router := testutil.NewRouter(t)
	habits.RegisterWrite(router.Group("/api", middleware.AccessTokenMiddleware(f.deps.Tokens)), "/habits")

	w = testutil.Do(t, router, http.MethodPut, fmt.Sprintf("/api/habits/%d", habit.ID), f.alice, gin.H{"name": "Read more"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated model.Habit
	testutil.Decode(t, w, &updated)
	assert.Equal(t, "Read more", updated.Name)
	assert.Equal(t, 1, updated.CurrentStreak)

	var stored model.Habit
	require.NoError(t, f.deps.DB.First(&stored, habit.ID).Error)
	assert.Equal(t, "Read more", stored.Name)
	assert.Equal(t, 1, stored.CurrentStreak)
	assert.NotNil(t, stored.LastCompletedDate)
}

func TestGoalMilestones(t *testing.T) {
	f := setup(t)

	w := testutil.Do(t, f.router, http.MethodPost, "/api/goals", f.alice, gin.H{"title": "Run a marathon", "progress": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var goal model.Goal
	testutil.Decode(t, w, &goal)
	base := fmt.Sprintf("/api/goals/%d/milestones", goal.ID)

	w = testutil.Do(t, f.router, http.MethodPost, base, f.alice, gin.H{"title": "10k", "due_date": "2030-03-01"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var milestone model.Milestone
	testutil.Decode(t, w, &milestone)

	assert.Equal(t, http.StatusNotFound, testutil.Do(t, f.router, http.MethodPost, base, f.bob, gin.H{"title": "sneaky"}).Code)

	w = testutil.Do(t, f.router, http.MethodPost, fmt.Sprintf("%s/%d/complete", base, milestone.ID), f.alice, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	testutil.Decode(t, w, &milestone)
	assert.True(t, milestone.Completed)
	assert.NotNil(t, milestone.CompletedDate)

	w = testutil.Do(t, f.router, http.MethodGet, fmt.Sprintf("/api/goals/%d", goal.ID), f.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &goal)
	require.Len(t, goal.Milestones, 1)

	w = testutil.Do(t, f.router, http.MethodDelete, fmt.Sprintf("/api/goals/%d", goal.ID), f.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var left int64
	require.NoError(t, f.deps.DB.Model(&model.Milestone{}).Count(&left).Error)
	assert.Zero(t, left)
}

func TestSummarizeTransactions(t *testing.T) {
	txs := []model.Transaction{
		{Type: model.TransactionIncome, Category: "salary", Amount: 3000, Date: testutil.Date(t, "2024-01-31")},
		{Type: model.TransactionExpense, Category: "food", Amount: 40, Date: testutil.Date(t, "2024-01-05")},
		{Type: model.TransactionExpense, Category: "food", Amount: 60, Date: testutil.Date(t, "2024-02-02")},
		{Type: model.TransactionExpense, Category: "bills", Amount: 100, Date: testutil.Date(t, "2024-02-10")},
	}
	income, expenses, categories, months := SummarizeTransactions(txs)
	assert.Equal(t, 3000.0, income)
	assert.Equal(t, 200.0, expenses)
	assert.Equal(t, []categoryTotal{
		{Type: "income", Category: "salary", Total: 3000},
		{Type: "expense", Category: "food", Total: 100},
		{Type: "expense", Category: "bills", Total: 100},
	}, categories)
	assert.Equal(t, []monthTotal{
		{Month: "2024-01", Income: 3000, Expenses: 40},
		{Month: "2024-02", Expenses: 160},
	}, months)
}

func TestExportTransactions(t *testing.T) {
	f := setup(t)
	w := testutil.Do(t, f.router, http.MethodPost, "/api/transactions", f.alice,
		gin.H{"type": "expense", "amount": 12.5, "category": "food", "date": "2024-04-01"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.Do(t, f.router, http.MethodGet, "/api/transactions/export", f.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	book, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2024-04-01", "expense", "food", "12.5"}, rows[1])
}
