package services

import (
	"context"
	"testing"

	"kencana-crm/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchSecondPusatRejected(t *testing.T) {
	db := newTestDB(t)
	customerSvc := newCustomerService(db)
	branchSvc := newBranchService(db)

	customer := createCustomer(t, db, customerSvc, "KCN-B01", "11.111.111.1-111.111", "1111111111111")

	err := branchSvc.Validate(context.Background(), &CreateBranchInput{
		CustomerID: customer.ID,
		Code:       "KCN-B01-02",
		Name:       "Kantor Pusat Kedua",
		Type:       models.BranchTypePusat,
		ProvinceID: customer.ProvinceID,
		RegencyID:  customer.RegencyID,
		UserID:     customer.UserID,
	})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), ErrPusatAlreadyExist.Error())
}

func TestBranchPusatReseedWithSameForcedKeyAllowed(t *testing.T) {
	db := newTestDB(t)
	customerSvc := newCustomerService(db)
	branchSvc := newBranchService(db)

	customer := createCustomer(t, db, customerSvc, "KCN-B02", "12.222.222.2-222.222", "2222222222222")

	var pusat models.Branch
	require.NoError(t, db.Where("customer_id = ?", customer.ID).First(&pusat).Error)

	// Forcing the existing pusat key re-points at the same row: that is
	// a reseed, not a duplicate head office
	err := branchSvc.Validate(context.Background(), &CreateBranchInput{
		CustomerID: customer.ID,
		Code:       "KCN-B02-01",
		Name:       "Kantor Pusat Ulang",
		Type:       models.BranchTypePusat,
		ProvinceID: customer.ProvinceID,
		RegencyID:  customer.RegencyID,
		UserID:     customer.UserID,
		ForceID:    &pusat.ID,
	})
	require.NoError(t, err)
}

func TestBranchInspectorRequiresAgency(t *testing.T) {
	db := newTestDB(t)
	customerSvc := newCustomerService(db)
	branchSvc := newBranchService(db)

	customer := createCustomer(t, db, customerSvc, "KCN-B03", "13.333.333.3-333.333", "3333333333333")

	var inspector models.AgencyEmployee
	require.NoError(t, db.Where("is_inspector = ?", true).First(&inspector).Error)

	err := branchSvc.Validate(context.Background(), &CreateBranchInput{
		CustomerID:  customer.ID,
		Code:        "KCN-B03-02",
		Name:        "Cabang Tanpa Instansi",
		Type:        models.BranchTypeCabang,
		ProvinceID:  customer.ProvinceID,
		RegencyID:   customer.RegencyID,
		UserID:      customer.UserID,
		InspectorID: &inspector.ID,
	})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "inspector assigned without an agency")
}

func TestBranchAgencyMustMatchProvince(t *testing.T) {
	db := newTestDB(t)
	customerSvc := newCustomerService(db)
	branchSvc := newBranchService(db)

	customer := createCustomer(t, db, customerSvc, "KCN-B04", "14.444.444.4-444.444", "4444444444444")

	// Pick an agency from any other province
	var agency models.Agency
	require.NoError(t, db.Where("province_id <> ?", customer.ProvinceID).First(&agency).Error)

	err := branchSvc.Validate(context.Background(), &CreateBranchInput{
		CustomerID: customer.ID,
		Code:       "KCN-B04-02",
		Name:       "Cabang Salah Provinsi",
		Type:       models.BranchTypeCabang,
		ProvinceID: customer.ProvinceID,
		RegencyID:  customer.RegencyID,
		UserID:     customer.UserID,
		AgencyID:   &agency.ID,
	})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "does not operate in province")
}

func TestBranchDeleteRemovesEmployees(t *testing.T) {
	db := newTestDB(t)
	customerSvc := newCustomerService(db)
	branchSvc := newBranchService(db)
	ctx := context.Background()

	customer := createCustomer(t, db, customerSvc, "KCN-B05", "15.555.555.5-555.555", "5555555555555")

	var pusat models.Branch
	require.NoError(t, db.Where("customer_id = ?", customer.ID).First(&pusat).Error)

	require.NoError(t, db.Create(&models.Employee{
		CustomerID: customer.ID,
		BranchID:   pusat.ID,
		Name:       "Dewi Kusuma",
		Email:      "dewi.kusuma@kencana.co.id",
		Status:     "active",
	}).Error)

	require.NoError(t, branchSvc.Delete(ctx, pusat.ID))

	var employees int64
	require.NoError(t, db.Unscoped().Model(&models.Employee{}).Where("branch_id = ?", pusat.ID).Count(&employees).Error)
	assert.EqualValues(t, 0, employees)

	_, err := branchSvc.GetByID(ctx, pusat.ID)
	require.ErrorIs(t, err, ErrBranchNotFoundSvc)
}
