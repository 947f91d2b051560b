package services

import (
	"context"
	"testing"

	"kencana-crm/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCreateCascadesPusatBranch(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)

	customer := createCustomer(t, db, svc, "KCN-001", "01.234.567.8-901.234", "1234567890123")

	var pusat models.Branch
	require.NoError(t, db.Where("customer_id = ? AND type = ?", customer.ID, models.BranchTypePusat).First(&pusat).Error)
	assert.Equal(t, "KCN-001-01", pusat.Code)
	assert.Equal(t, customer.Name+" Kantor Pusat", pusat.Name)
	assert.Equal(t, customer.ProvinceID, pusat.ProvinceID)
	assert.Equal(t, customer.UserID, pusat.UserID)
}

func TestCustomerValidateCollectsAllReasons(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	regency := firstRegency(t, db)

	input := &CreateCustomerInput{
		Code:       "KCN-002",
		Name:       "PT",
		NPWP:       "not-an-npwp",
		NIB:        "123",
		ProvinceID: regency.ProvinceID + 99,
		RegencyID:  regency.ID,
		UserID:     9999,
	}
	input.Sanitize()

	err := svc.Validate(context.Background(), input)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// Every violation comes back in one pass, not just the first
	assert.GreaterOrEqual(t, len(verr.Reasons), 4)
	joined := verr.Error()
	assert.Contains(t, joined, "name must be at least 3 characters")
	assert.Contains(t, joined, "DD.DDD.DDD.D-DDD.DDD")
	assert.Contains(t, joined, "13 digits")
	assert.Contains(t, joined, "does not belong to province")
	assert.Contains(t, joined, "owner user 9999 not found")
}

func TestCustomerDuplicateNPWPRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)

	createCustomer(t, db, svc, "KCN-003", "01.234.567.8-901.234", "1234567890123")

	regency := firstRegency(t, db)
	ownerID := createOwner(t, db, "owner_dup")
	_, err := svc.Create(context.Background(), &CreateCustomerInput{
		Code:       "KCN-004",
		Name:       "PT Mitra Sejahtera",
		NPWP:       "01.234.567.8-901.234",
		NIB:        "9876543210123",
		ProvinceID: regency.ProvinceID,
		RegencyID:  regency.ID,
		UserID:     ownerID,
	})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), ErrNPWPAlreadyExists.Error())
}

func TestCustomerCreateWithForcedKeys(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	regency := firstRegency(t, db)
	ownerID := createOwner(t, db, "owner_forced")

	forcedCustomer := uint(7)
	forcedPusat := uint(42)
	customer, err := svc.Create(context.Background(), &CreateCustomerInput{
		Code:         "KCN-007",
		Name:         "PT Graha Nusantara",
		NPWP:         "07.777.777.7-777.777",
		NIB:          "7777777777777",
		ProvinceID:   regency.ProvinceID,
		RegencyID:    regency.ID,
		UserID:       ownerID,
		ForceID:      &forcedCustomer,
		ForcePusatID: &forcedPusat,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), customer.ID)

	var pusat models.Branch
	require.NoError(t, db.First(&pusat, 42).Error)
	assert.Equal(t, uint(7), pusat.CustomerID)
	assert.Equal(t, models.BranchTypePusat, pusat.Type)
}

func TestCustomerForcedKeyReplacesLeftoverRow(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	regency := firstRegency(t, db)
	ownerID := createOwner(t, db, "owner_replay")

	forcedCustomer := uint(3)
	forcedPusat := uint(18)
	_, err := svc.Create(context.Background(), &CreateCustomerInput{
		Code:         "KCN-R03",
		Name:         "PT Citra Abadi",
		NPWP:         "03.333.333.3-333.333",
		NIB:          "3333333333333",
		ProvinceID:   regency.ProvinceID,
		RegencyID:    regency.ID,
		UserID:       ownerID,
		ForceID:      &forcedCustomer,
		ForcePusatID: &forcedPusat,
	})
	require.NoError(t, err)

	// A reseed regenerates the business data but pins the same keys.
	// The leftover rows are cleared pre-insert, so the same forced keys
	// land with no duplicate residue.
	_, err = svc.Create(context.Background(), &CreateCustomerInput{
		Code:         "KCN-R04",
		Name:         "PT Citra Abadi Baru",
		NPWP:         "04.444.444.4-444.444",
		NIB:          "4444444444444",
		ProvinceID:   regency.ProvinceID,
		RegencyID:    regency.ID,
		UserID:       ownerID,
		ForceID:      &forcedCustomer,
		ForcePusatID: &forcedPusat,
	})
	require.NoError(t, err)

	var customerCount, pusatCount int64
	require.NoError(t, db.Unscoped().Model(&models.Customer{}).Where("id = ?", 3).Count(&customerCount).Error)
	require.NoError(t, db.Unscoped().Model(&models.Branch{}).Where("customer_id = ?", 3).Count(&pusatCount).Error)
	assert.EqualValues(t, 1, customerCount)
	assert.EqualValues(t, 1, pusatCount)

	var reseeded models.Customer
	require.NoError(t, db.First(&reseeded, 3).Error)
	assert.Equal(t, "KCN-R04", reseeded.Code)
}

func TestCustomerDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	ctx := context.Background()

	customer := createCustomer(t, db, svc, "KCN-DEL", "05.555.555.5-555.555", "5555555555555")

	var pusat models.Branch
	require.NoError(t, db.Where("customer_id = ?", customer.ID).First(&pusat).Error)

	level := createLevel(t, db, "dasar", 250000, 14)
	require.NoError(t, db.Create(&models.Employee{
		CustomerID: customer.ID,
		BranchID:   pusat.ID,
		Name:       "Budi Santoso",
		Email:      "budi.santoso@kencana.co.id",
		Status:     "active",
	}).Error)

	membershipSvc := newMembershipService(db)
	membership, err := membershipSvc.Activate(ctx, &ActivateInput{
		CustomerID: customer.ID,
		BranchID:   pusat.ID,
		LevelID:    level.ID,
	})
	require.NoError(t, err)

	_, err = membershipSvc.IssueInvoice(ctx, &IssueInvoiceInput{
		InvoiceNumber: "INV-20260301-00001",
		MembershipID:  membership.ID,
		ToLevelID:     level.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, customer.ID))

	// Nothing of the customer survives, soft-deleted rows included
	tables := map[string]interface{}{
		"branches":    &models.Branch{},
		"employees":   &models.Employee{},
		"memberships": &models.Membership{},
		"invoices":    &models.Invoice{},
	}
	for name, model := range tables {
		var count int64
		require.NoError(t, db.Unscoped().Model(model).Where("customer_id = ?", customer.ID).Count(&count).Error)
		assert.EqualValues(t, 0, count, name)
	}

	var customerCount int64
	require.NoError(t, db.Unscoped().Model(&models.Customer{}).Where("id = ?", customer.ID).Count(&customerCount).Error)
	assert.EqualValues(t, 0, customerCount)
}

func TestCustomerDeleteMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)

	err := svc.Delete(context.Background(), 9999)
	require.ErrorIs(t, err, ErrCustomerNotFoundSvc)
}
