package services

import (
	"context"
	"testing"
	"time"

	"kencana-crm/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// membershipFixture is one customer with its pusat branch and two levels
type membershipFixture struct {
	customer *models.Customer
	pusat    models.Branch
	dasar    *models.MembershipLevel
	bisnis   *models.MembershipLevel
}

func newMembershipFixture(t *testing.T, db *gorm.DB) membershipFixture {
	t.Helper()

	customerSvc := newCustomerService(db)
	customer := createCustomer(t, db, customerSvc, "KCN-M01", "21.111.111.1-111.111", "6111111111111")

	var pusat models.Branch
	require.NoError(t, db.Where("customer_id = ?", customer.ID).First(&pusat).Error)

	return membershipFixture{
		customer: customer,
		pusat:    pusat,
		dasar:    createLevel(t, db, "dasar", 250000, 14),
		bisnis:   createLevel(t, db, "bisnis", 750000, 0),
	}
}

func TestActivateMembership(t *testing.T) {
	db := newTestDB(t)
	fix := newMembershipFixture(t, db)
	svc := newMembershipService(db)
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	membership, err := svc.Activate(ctx, &ActivateInput{
		CustomerID:  fix.customer.ID,
		BranchID:    fix.pusat.ID,
		LevelID:     fix.dasar.ID,
		PeriodStart: start,
	})
	require.NoError(t, err)

	assert.Equal(t, models.MembershipStatusActive, membership.Status)
	assert.Equal(t, fix.dasar.ID, membership.LevelID)
	assert.Equal(t, start.AddDate(1, 0, 0), membership.PeriodEnd)
	assert.False(t, membership.TrialUsed)
}

func TestActivateMembershipTrialPeriod(t *testing.T) {
	db := newTestDB(t)
	fix := newMembershipFixture(t, db)
	svc := newMembershipService(db)
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	membership, err := svc.Activate(ctx, &ActivateInput{
		CustomerID:  fix.customer.ID,
		BranchID:    fix.pusat.ID,
		LevelID:     fix.dasar.ID,
		PeriodStart: start,
		UseTrial:    true,
	})
	require.NoError(t, err)

	assert.True(t, membership.TrialUsed)
	assert.Equal(t, start.AddDate(0, 0, fix.dasar.TrialDays), membership.PeriodEnd)
}

func TestActivateRejectsSecondMembership(t *testing.T) {
	db := newTestDB(t)
	fix := newMembershipFixture(t, db)
	svc := newMembershipService(db)
	ctx := context.Background()

	input := &ActivateInput{
		CustomerID: fix.customer.ID,
		BranchID:   fix.pusat.ID,
		LevelID:    fix.dasar.ID,
	}
	_, err := svc.Activate(ctx, input)
	require.NoError(t, err)

	_, err = svc.Activate(ctx, input)
	require.ErrorIs(t, err, ErrBranchAlreadyMember)
}

func TestActivateRejectsForeignBranch(t *testing.T) {
	db := newTestDB(t)
	fix := newMembershipFixture(t, db)
	svc := newMembershipService(db)

	_, err := svc.Activate(context.Background(), &ActivateInput{
		CustomerID: fix.customer.ID + 99,
		BranchID:   fix.pusat.ID,
		LevelID:    fix.dasar.ID,
	})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "does not belong to customer")
}

func TestInvoiceLifecyclePaidUpgrade(t *testing.T) {
	db := newTestDB(t)
	fix := newMembershipFixture(t, db)
	svc := newMembershipService(db)
	ctx := context.Background()

	membership, err := svc.Activate(ctx, &ActivateInput{
		CustomerID: fix.customer.ID,
		BranchID:   fix.pusat.ID,
		LevelID:    fix.dasar.ID,
	})
	require.NoError(t, err)
	originalEnd := membership.PeriodEnd

	// Billing a different level snapshots both ends of the change
	invoice, err := svc.IssueInvoice(ctx, &IssueInvoiceInput{
		InvoiceNumber: "INV-20260301-00001",
		MembershipID:  membership.ID,
		ToLevelID:     fix.bisnis.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, invoice.FromLevelID)
	assert.Equal(t, fix.dasar.ID, *invoice.FromLevelID)
	assert.Equal(t, fix.bisnis.ID, invoice.ToLevelID)
	assert.Equal(t, fix.bisnis.PricePerUnit, invoice.Amount)
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)
	assert.True(t, invoice.IsUpgrade())

	invoice, err = svc.RequestPayment(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPendingPayment, invoice.Status)

	payment, err := svc.Pay(ctx, &PayInput{
		InvoiceID:     invoice.ID,
		PaymentNumber: "PAY-20260302-00001",
		Method:        models.PaymentMethodTransfer,
	})
	require.NoError(t, err)
	assert.Equal(t, invoice.Amount, payment.Amount)
	assert.NotEmpty(t, payment.Reference)

	settled, err := svc.GetByID(ctx, membership.ID)
	require.NoError(t, err)
	assert.Equal(t, fix.bisnis.ID, settled.LevelID)
	assert.Equal(t, originalEnd.AddDate(1, 0, 0), settled.PeriodEnd)

	var stored models.Invoice
	require.NoError(t, db.First(&stored, invoice.ID).Error)
	assert.Equal(t, models.InvoiceStatusPaid, stored.Status)
	require.NotNil(t, stored.PaidAt)
}

func TestInvoiceRenewalHasNoFromLevel(t *testing.T) {
	db := newTestDB(t)
	fix := newMembershipFixture(t, db)
	svc := newMembershipService(db)
	ctx := context.Background()

	membership, err := svc.Activate(ctx, &ActivateInput{
		CustomerID: fix.customer.ID,
		BranchID:   fix.pusat.ID,
		LevelID:    fix.dasar.ID,
	})
	require.NoError(t, err)

	invoice, err := svc.IssueInvoice(ctx, &IssueInvoiceInput{
		InvoiceNumber: "INV-20260301-00002",
		MembershipID:  membership.ID,
		ToLevelID:     fix.dasar.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, invoice.FromLevelID)
	assert.False(t, invoice.IsUpgrade())
}

func TestInvoiceInvalidTransitions(t *testing.T) {
	db := newTestDB(t)
	fix := newMembershipFixture(t, db)
	svc := newMembershipService(db)
	ctx := context.Background()

	membership, err := svc.Activate(ctx, &ActivateInput{
		CustomerID: fix.customer.ID,
		BranchID:   fix.pusat.ID,
		LevelID:    fix.dasar.ID,
	})
	require.NoError(t, err)

	invoice, err := svc.IssueInvoice(ctx, &IssueInvoiceInput{
		InvoiceNumber: "INV-20260301-00003",
		MembershipID:  membership.ID,
		ToLevelID:     fix.dasar.ID,
	})
	require.NoError(t, err)

	// Settling straight from pending skips the payment request
	_, err = svc.Pay(ctx, &PayInput{
		InvoiceID:     invoice.ID,
		PaymentNumber: "PAY-20260302-00003",
		Method:        models.PaymentMethodTransfer,
	})
	require.ErrorIs(t, err, ErrInvalidStatusTransit)

	// Cancelled is terminal
	_, err = svc.Cancel(ctx, invoice.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, invoice.ID)
	require.ErrorIs(t, err, ErrInvoiceTerminal)

	_, err = svc.RequestPayment(ctx, invoice.ID)
	require.ErrorIs(t, err, ErrInvalidStatusTransit)

	_, err = svc.Pay(ctx, &PayInput{
		InvoiceID:     invoice.ID,
		PaymentNumber: "PAY-20260302-00004",
		Method:        models.PaymentMethodTransfer,
	})
	require.ErrorIs(t, err, ErrInvoiceTerminal)
}

func TestInvoiceNumberValidationAndUniqueness(t *testing.T) {
	db := newTestDB(t)
	fix := newMembershipFixture(t, db)
	svc := newMembershipService(db)
	ctx := context.Background()

	membership, err := svc.Activate(ctx, &ActivateInput{
		CustomerID: fix.customer.ID,
		BranchID:   fix.pusat.ID,
		LevelID:    fix.dasar.ID,
	})
	require.NoError(t, err)

	_, err = svc.IssueInvoice(ctx, &IssueInvoiceInput{
		InvoiceNumber: "FAKTUR-001",
		MembershipID:  membership.ID,
		ToLevelID:     fix.dasar.ID,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "INV-YYYYMMDD-XXXXX")

	_, err = svc.IssueInvoice(ctx, &IssueInvoiceInput{
		InvoiceNumber: "INV-20260301-00005",
		MembershipID:  membership.ID,
		ToLevelID:     fix.dasar.ID,
	})
	require.NoError(t, err)

	_, err = svc.IssueInvoice(ctx, &IssueInvoiceInput{
		InvoiceNumber: "INV-20260301-00005",
		MembershipID:  membership.ID,
		ToLevelID:     fix.dasar.ID,
	})
	require.ErrorIs(t, err, ErrInvoiceNumberTaken)
}

func TestExpireOverdue(t *testing.T) {
	db := newTestDB(t)
	fix := newMembershipFixture(t, db)
	svc := newMembershipService(db)
	ctx := context.Background()

	start := time.Now().AddDate(-1, -2, 0)
	membership, err := svc.Activate(ctx, &ActivateInput{
		CustomerID:  fix.customer.ID,
		BranchID:    fix.pusat.ID,
		LevelID:     fix.dasar.ID,
		PeriodStart: start,
	})
	require.NoError(t, err)

	invoice, err := svc.IssueInvoice(ctx, &IssueInvoiceInput{
		InvoiceNumber: "INV-20250601-00001",
		MembershipID:  membership.ID,
		ToLevelID:     fix.dasar.ID,
		DueDate:       time.Now().AddDate(0, 0, -30),
	})
	require.NoError(t, err)

	changed, err := svc.ExpireOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	var storedInvoice models.Invoice
	require.NoError(t, db.First(&storedInvoice, invoice.ID).Error)
	assert.Equal(t, models.InvoiceStatusCancelled, storedInvoice.Status)

	// Two months past a one-year period with 7 grace days: expired
	var storedMembership models.Membership
	require.NoError(t, db.First(&storedMembership, membership.ID).Error)
	assert.Equal(t, models.MembershipStatusExpired, storedMembership.Status)
}
