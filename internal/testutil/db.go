// Package testutil holds fixtures shared by the repository, service and
// handler tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/recipe-app/api/internal/models"
	"github.com/recipe-app/api/internal/repository"
	"github.com/recipe-app/api/pkg/database"
)

// OpenTestDB returns a migrated sqlite database private to the test.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := database.Open(context.Background(), database.Options{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts an active account without going through password hashing.
func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: "Test", PasswordHash: "unused", IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}
