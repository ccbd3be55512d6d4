// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campus_hub/internal/config"
	"campus_hub/internal/models"
)

// OpenDB returns a migrated in-memory SQLite database with foreign keys
// enforced. It is private to the test.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// CreateUser inserts an account with its profile and role rows, the way
// signup does, and returns the account ID.
func CreateUser(t testing.TB, db *gorm.DB, email string, roles ...string) uuid.UUID {
	t.Helper()
	acct := models.Account{Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&acct).Error)
	require.NoError(t, db.Create(&models.Profile{UserID: acct.ID, Email: email}).Error)
	if len(roles) == 0 {
		roles = []string{models.RoleUser}
	}
	for _, r := range roles {
		require.NoError(t, db.Create(&models.UserRole{UserID: acct.ID, Role: r}).Error)
	}
	return acct.ID
}
