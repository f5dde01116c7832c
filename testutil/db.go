// Package testutil opens throwaway databases for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"personalhub/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory sqlite database private to the test.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// CreateUser inserts an active user with the given email.
func CreateUser(t testing.TB, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Name: email, Email: email, Password: "x", Role: model.RoleUser, Active: true}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Date parses a YYYY-MM-DD literal as a UTC midnight.
func Date(t testing.TB, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func DatePtr(t testing.TB, s string) *time.Time {
	d := Date(t, s)
	return &d
}
