package services

import (
	"context"
	"testing"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))

	user, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Username: "  Budi.Santoso  ",
		Email:    "Budi@Kencana.co.id",
		Password: "rahasia-123",
		FullName: "Budi Santoso",
	})
	require.NoError(t, err)

	assert.Equal(t, "budi.santoso", user.Username)
	assert.Equal(t, "budi@kencana.co.id", user.Email)
	assert.Equal(t, models.RoleStaff, user.Role)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsDemo)
	// Stored hashed, never plaintext
	assert.NotEqual(t, "rahasia-123", user.Password)
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &CreateUserInput{
		Username: "budi",
		Email:    "budi@kencana.co.id",
		Password: "rahasia-123",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, &CreateUserInput{
		Username: "budi",
		Email:    "other@kencana.co.id",
		Password: "rahasia-123",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.CreateUser(ctx, &CreateUserInput{
		Username: "other",
		Email:    "budi@kencana.co.id",
		Password: "rahasia-123",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateUserRejectsWeakPasswordAndBadRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &CreateUserInput{
		Username: "budi",
		Email:    "budi@kencana.co.id",
		Password: "pendek",
	})
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.CreateUser(ctx, &CreateUserInput{
		Username: "budi",
		Email:    "budi@kencana.co.id",
		Password: "rahasia-123",
		Role:     "SUPERUSER",
	})
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestReassignIDMovesBackReferences(t *testing.T) {
	db := newTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	svc := NewUserService(userRepo)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &CreateUserInput{
		Username: "budi",
		Email:    "budi@kencana.co.id",
		Password: "rahasia-123",
		Role:     models.RoleOwner,
	})
	require.NoError(t, err)

	regency := firstRegency(t, db)
	customer := models.Customer{
		Code:       "KCN-U01",
		Name:       "PT Sumber Makmur",
		NPWP:       "31.111.111.1-111.111",
		NIB:        "8111111111111",
		Status:     models.CustomerStatusActive,
		ProvinceID: regency.ProvinceID,
		RegencyID:  regency.ID,
		UserID:     user.ID,
	}
	require.NoError(t, db.Create(&customer).Error)

	require.NoError(t, svc.ReassignID(ctx, user.ID, 50))

	_, err = userRepo.GetByID(ctx, user.ID)
	require.Error(t, err)

	moved, err := userRepo.GetByID(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, "budi", moved.Username)

	var stored models.Customer
	require.NoError(t, db.First(&stored, customer.ID).Error)
	assert.Equal(t, uint(50), stored.UserID)
}

func TestReassignIDConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	ctx := context.Background()

	a, err := svc.CreateUser(ctx, &CreateUserInput{
		Username: "budi",
		Email:    "budi@kencana.co.id",
		Password: "rahasia-123",
	})
	require.NoError(t, err)

	b, err := svc.CreateUser(ctx, &CreateUserInput{
		Username: "siti",
		Email:    "siti@kencana.co.id",
		Password: "rahasia-123",
	})
	require.NoError(t, err)

	err = svc.ReassignID(ctx, a.ID, b.ID)
	require.ErrorIs(t, err, ErrIDReassignConflict)
}
