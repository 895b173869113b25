package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/usagetrack/backend/internal/domain/identity"
	"github.com/usagetrack/backend/internal/domain/metering"
	"github.com/usagetrack/backend/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.UserModel{}, &models.UsageTypeModel{}, &models.UsageModel{})
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(name, "s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Create(context.Background(), user))
	return user
}

func createTestUsageType(t *testing.T, db *gorm.DB, name, unit string, factor float64) *metering.UsageType {
	t.Helper()
	ut, err := metering.NewUsageType(name, unit, factor)
	require.NoError(t, err)
	require.NoError(t, NewGormUsageTypeRepository(db).Create(context.Background(), ut))
	return ut
}
