package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPrincipalCanAccessOwned(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	t.Run("owner can access own resources", func(t *testing.T) {
		p := Principal{UserID: owner}
		assert.True(t, p.CanAccessOwned(owner))
	})

	t.Run("regular user cannot access another user's resources", func(t *testing.T) {
		p := Principal{UserID: other}
		assert.False(t, p.CanAccessOwned(owner))
	})

	t.Run("staff can access anyone's resources", func(t *testing.T) {
		p := Principal{UserID: other, IsStaff: true}
		assert.True(t, p.CanAccessOwned(owner))
	})

	t.Run("superuser can access anyone's resources", func(t *testing.T) {
		p := Principal{UserID: other, IsSuperuser: true}
		assert.True(t, p.CanAccessOwned(owner))
	})
}

func TestPrincipalCanManageUsageTypes(t *testing.T) {
	assert.False(t, Principal{UserID: uuid.New()}.CanManageUsageTypes())
	assert.True(t, Principal{UserID: uuid.New(), IsStaff: true}.CanManageUsageTypes())
	assert.True(t, Principal{UserID: uuid.New(), IsSuperuser: true}.CanManageUsageTypes())
}

func TestPrincipalCanListUsers(t *testing.T) {
	assert.False(t, Principal{UserID: uuid.New()}.CanListUsers())
	assert.True(t, Principal{UserID: uuid.New(), IsStaff: true}.CanListUsers())
}
