package services

import (
	"context"
	"testing"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/adapters/persistence/repositories"
	"kencana-crm/internal/config"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema
// and the region/agency master data
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	require.NoError(t, config.SeedMasterData(db))
	return db
}

// newBranchService wires a branch service over db
func newBranchService(db *gorm.DB) *BranchService {
	return NewBranchService(
		repositories.NewBranchRepository(db),
		repositories.NewEmployeeRepository(db),
		repositories.NewRegionRepository(db),
	)
}

// newCustomerService wires a customer service over db
func newCustomerService(db *gorm.DB) *CustomerService {
	return NewCustomerService(
		repositories.NewCustomerRepository(db),
		repositories.NewRegionRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewMembershipRepository(db),
		repositories.NewInvoiceRepository(db),
		newBranchService(db),
	)
}

// newMembershipService wires a membership service over db
func newMembershipService(db *gorm.DB) *MembershipService {
	return NewMembershipService(
		repositories.NewMembershipRepository(db),
		repositories.NewLevelRepository(db),
		repositories.NewInvoiceRepository(db),
		repositories.NewBranchRepository(db),
	)
}

// createOwner inserts an owner account and returns its key
func createOwner(t *testing.T, db *gorm.DB, username string) uint {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@kencana.co.id",
		Password: "x",
		Role:     models.RoleOwner,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

// firstRegency returns one regency together with its province key
func firstRegency(t *testing.T, db *gorm.DB) models.Regency {
	t.Helper()
	var regency models.Regency
	require.NoError(t, db.First(&regency).Error)
	return regency
}

// createCustomer drives the live creation flow and returns the customer
func createCustomer(t *testing.T, db *gorm.DB, svc *CustomerService, code, npwp, nib string) *models.Customer {
	t.Helper()
	regency := firstRegency(t, db)
	ownerID := createOwner(t, db, "owner_"+code)

	customer, err := svc.Create(context.Background(), &CreateCustomerInput{
		Code:       code,
		Name:       "PT Karya Maju " + code,
		NPWP:       npwp,
		NIB:        nib,
		ProvinceID: regency.ProvinceID,
		RegencyID:  regency.ID,
		UserID:     ownerID,
	})
	require.NoError(t, err)
	return customer
}

// createLevel inserts a membership level master row
func createLevel(t *testing.T, db *gorm.DB, slug string, price float64, trialDays int) *models.MembershipLevel {
	t.Helper()
	level := models.MembershipLevel{
		Slug:         slug,
		Name:         "Paket " + slug,
		PricePerUnit: price,
		MaxBranches:  5,
		MaxEmployees: 50,
		TrialDays:    trialDays,
		GraceDays:    7,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&level).Error)
	return &level
}
