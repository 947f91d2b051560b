package demo

import (
	"context"
	"testing"

	"kencana-crm/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCreatesOwnerAtDesiredKey(t *testing.T) {
	db := newTestDB(t)
	ensurer := NewIdentityEnsurer(db)
	ctx := context.Background()

	user, err := ensurer.Ensure(ctx, 5, "demo_owner_99", "Budi Santoso")
	require.NoError(t, err)

	assert.Equal(t, uint(5), user.ID)
	assert.Equal(t, "demo_owner_99", user.Username)
	assert.Equal(t, models.RoleOwner, user.Role)
	assert.True(t, user.IsDemo)

	// The row really sits at the desired key, not at the auto key
	var stored models.User
	require.NoError(t, db.First(&stored, 5).Error)
	assert.Equal(t, "demo_owner_99", stored.Username)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnsureRerunIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ensurer := NewIdentityEnsurer(db)
	ctx := context.Background()

	first, err := ensurer.Ensure(ctx, 5, "demo_owner_99", "Budi Santoso")
	require.NoError(t, err)

	second, err := ensurer.Ensure(ctx, 5, "demo_owner_99", "Budi Santoso")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	// Password hash untouched on rerun, so tokens issued between runs
	// keep working
	assert.Equal(t, first.Password, second.Password)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnsureReconcilesDisplayName(t *testing.T) {
	db := newTestDB(t)
	ensurer := NewIdentityEnsurer(db)
	ctx := context.Background()

	_, err := ensurer.Ensure(ctx, 5, "demo_owner_99", "Budi Santoso")
	require.NoError(t, err)

	updated, err := ensurer.Ensure(ctx, 5, "demo_owner_99", "Siti Wijaya")
	require.NoError(t, err)
	assert.Equal(t, "Siti Wijaya", updated.FullName)

	var stored models.User
	require.NoError(t, db.First(&stored, 5).Error)
	assert.Equal(t, "Siti Wijaya", stored.FullName)
}

func TestEnsureReplacesUsernameConflict(t *testing.T) {
	db := newTestDB(t)
	ensurer := NewIdentityEnsurer(db)
	ctx := context.Background()

	// A stale row holds the username under the wrong key
	stale := models.User{
		ID:       30,
		Username: "demo_owner_99",
		Email:    "stale@demo.kencana.co.id",
		Password: "x",
		IsDemo:   true,
	}
	require.NoError(t, db.Create(&stale).Error)

	user, err := ensurer.Ensure(ctx, 5, "demo_owner_99", "Budi Santoso")
	require.NoError(t, err)
	assert.Equal(t, uint(5), user.ID)

	var gone int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", 30).Count(&gone).Error)
	assert.EqualValues(t, 0, gone)
}
