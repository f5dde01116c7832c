package main

import (
	"path/filepath"
	"testing"
	"time"

	"personalhub/connection"
	"personalhub/model"
	"personalhub/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configure(t *testing.T, driver, dsn string) {
	t.Helper()
	t.Setenv("HUB_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HUB_DATABASE_DRIVER", driver)
	t.Setenv("HUB_DATABASE_DSN", dsn)
	t.Setenv("HUB_STORAGE_LOCAL_DIR", t.TempDir())
	t.Setenv("HUB_LOG_LEVEL", "error")
}

func TestRunSucceedsOnEmptyDatabase(t *testing.T) {
	configure(t, "sqlite", ":memory:")
	assert.Equal(t, 0, run())
}

func TestRunFailsOnUnsupportedDriver(t *testing.T) {
	configure(t, "postgres", "host=nowhere")
	assert.Equal(t, 1, run())
}

func TestRunCreatesNotificationsOnce(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "hub.db")
	configure(t, "sqlite", dsn)

	db, err := connection.OpenDatabase(connection.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	user := model.User{Name: "cli", Email: "cli@example.com", Password: "x", Role: model.RoleUser, Active: true}
	require.NoError(t, db.Create(&user).Error)
	today := services.DateOf(time.Now())
	task := model.Task{Title: "File taxes", Status: model.TaskTodo, Priority: model.PriorityHigh, DueDate: &today}
	task.SetOwner(user.ID)
	require.NoError(t, db.Create(&task).Error)
	require.NoError(t, connection.CloseDatabase(db))

	require.Equal(t, 0, run())
	require.Equal(t, 0, run())

	db, err = connection.OpenDatabase(connection.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = connection.CloseDatabase(db) })
	var notifications []model.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Task Due: File taxes", notifications[0].Title)
	assert.Equal(t, user.ID, notifications[0].UserID)
}
