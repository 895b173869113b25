package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usagetrack/backend/internal/domain/metering"
	"github.com/usagetrack/backend/internal/domain/shared"
)

func TestGormUsageTypeRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUsageTypeRepository(db)
	ctx := context.Background()

	ut, err := metering.NewUsageType("electricity", "kWh", 1.5)
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, ut))
	assert.NotZero(t, ut.ID, "create assigns the ID")

	found, err := repo.FindByID(ctx, ut.ID)
	require.NoError(t, err)
	assert.Equal(t, "electricity", found.Name)
	assert.Equal(t, "kWh", found.Unit)
	assert.Equal(t, 1.5, found.Factor)
}

func TestGormUsageTypeRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUsageTypeRepository(db)
	ctx := context.Background()

	ut := createTestUsageType(t, db, "electricity", "kWh", 1.5)
	require.NoError(t, ut.UpdateDetails("gas", "m3", 0.8))

	require.NoError(t, repo.Update(ctx, ut))

	found, err := repo.FindByID(ctx, ut.ID)
	require.NoError(t, err)
	assert.Equal(t, "gas", found.Name)
	assert.Equal(t, 0.8, found.Factor)
}

func TestGormUsageTypeRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUsageTypeRepository(db)
	ctx := context.Background()

	createTestUsageType(t, db, "electricity", "kWh", 1)
	createTestUsageType(t, db, "gas", "m3", 1)
	createTestUsageType(t, db, "water", "l", 1)

	types, total, err := repo.FindAll(ctx, "", "", 10, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, types, 3)
	assert.Equal(t, "electricity", types[0].Name)

	types, total, err = repo.FindAll(ctx, "", "", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, types, 1)
	assert.Equal(t, "water", types[0].Name)

	types, _, err = repo.FindAll(ctx, "name", "desc", 10, 0)
	require.NoError(t, err)
	require.Len(t, types, 3)
	assert.Equal(t, "water", types[0].Name)
	assert.Equal(t, "electricity", types[2].Name)
}

func TestGormUsageTypeRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUsageTypeRepository(db)
	usageRepo := NewGormUsageRepository(db)
	ctx := context.Background()

	t.Run("deletes unreferenced type", func(t *testing.T) {
		ut := createTestUsageType(t, db, "water", "l", 1)

		require.NoError(t, repo.Delete(ctx, ut.ID))

		_, err := repo.FindByID(ctx, ut.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("refuses to delete referenced type", func(t *testing.T) {
		user := createTestUser(t, db, "penny")
		ut := createTestUsageType(t, db, "electricity", "kWh", 1.5)

		usage, err := metering.NewUsage(user.ID, ut.ID, time.Now(), 10)
		require.NoError(t, err)
		require.NoError(t, usageRepo.Create(ctx, usage))

		err = repo.Delete(ctx, ut.ID)
		assert.ErrorIs(t, err, shared.ErrUsageTypeInUse)

		// Type survives
		found, err := repo.FindByID(ctx, ut.ID)
		require.NoError(t, err)
		assert.Equal(t, ut.ID, found.ID)
	})

	t.Run("delete of missing type returns not found", func(t *testing.T) {
		err := repo.Delete(ctx, 99999)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
