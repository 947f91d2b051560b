package demo

import (
	"context"
	"testing"

	"kencana-crm/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAllDisabled(t *testing.T) {
	db := newTestDB(t)
	cfg := testDemoConfig()
	cfg.Enabled = false

	err := NewOrchestrator(db, cfg).RunAll(context.Background())
	require.ErrorIs(t, err, ErrDemoDisabled)
}

func TestRunUnitUnknown(t *testing.T) {
	db := newTestDB(t)

	err := NewOrchestrator(db, testDemoConfig()).RunUnit(context.Background(), "definitely-not-a-unit")
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestRunAllFullPipeline(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cfg := testDemoConfig()

	orchestrator := NewOrchestrator(db, cfg)
	require.NoError(t, orchestrator.RunAll(ctx))

	// Statically-keyed customers land on exactly 1..CustomerCount
	var customers []models.Customer
	require.NoError(t, db.Order("id").Find(&customers).Error)
	require.Len(t, customers, cfg.CustomerCount)
	for i, c := range customers {
		assert.Equal(t, uint(i+1), c.ID)
	}

	// Owner accounts sit at the forced keys, marked as demo
	var owners []models.User
	require.NoError(t, db.Where("is_demo = ?", true).Order("id").Find(&owners).Error)
	require.Len(t, owners, cfg.CustomerCount)
	for i, u := range owners {
		assert.Equal(t, uint(i+2), u.ID)
		assert.Equal(t, models.RoleOwner, u.Role)
	}

	// Customer 7 owns head-office branch 42
	var pusat42 models.Branch
	require.NoError(t, db.First(&pusat42, 42).Error)
	assert.Equal(t, uint(7), pusat42.CustomerID)
	assert.Equal(t, models.BranchTypePusat, pusat42.Type)

	// Exactly one pusat per customer
	for _, c := range customers {
		var pusatCount int64
		require.NoError(t, db.Model(&models.Branch{}).
			Where("customer_id = ? AND type = ?", c.ID, models.BranchTypePusat).
			Count(&pusatCount).Error)
		assert.EqualValues(t, 1, pusatCount, "customer %d", c.ID)
	}

	// Every branch holds a membership, every membership a branch
	var branchCount, membershipCount int64
	require.NoError(t, db.Model(&models.Branch{}).Count(&branchCount).Error)
	require.NoError(t, db.Model(&models.Membership{}).Count(&membershipCount).Error)
	assert.Equal(t, branchCount, membershipCount)

	// One payment per paid invoice, none otherwise
	var paidCount, paymentCount, invoiceCount int64
	require.NoError(t, db.Model(&models.Invoice{}).
		Where("status = ?", models.InvoiceStatusPaid).Count(&paidCount).Error)
	require.NoError(t, db.Model(&models.Payment{}).Count(&paymentCount).Error)
	require.NoError(t, db.Model(&models.Invoice{}).Count(&invoiceCount).Error)
	assert.Equal(t, paidCount, paymentCount)
	assert.GreaterOrEqual(t, invoiceCount, membershipCount)

	// Business identifiers never repeat within the run
	var distinctNPWP int64
	require.NoError(t, db.Model(&models.Customer{}).Distinct("npwp").Count(&distinctNPWP).Error)
	assert.EqualValues(t, cfg.CustomerCount, distinctNPWP)

	var distinctEmails, employeeCount int64
	require.NoError(t, db.Model(&models.Employee{}).Distinct("email").Count(&distinctEmails).Error)
	require.NoError(t, db.Model(&models.Employee{}).Count(&employeeCount).Error)
	assert.Equal(t, employeeCount, distinctEmails)

	// Produced-key lists mirror what was written
	state := orchestrator.State()
	assert.Len(t, state.CustomerIDs, cfg.CustomerCount)
	assert.EqualValues(t, branchCount, len(state.BranchIDs))
	assert.EqualValues(t, employeeCount, len(state.EmployeeIDs))
	assert.EqualValues(t, membershipCount, len(state.MembershipIDs))
	assert.EqualValues(t, invoiceCount, len(state.InvoiceIDs))
}

func TestRunAllRerunKeepsStaticKeys(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cfg := testDemoConfig()

	require.NoError(t, NewOrchestrator(db, cfg).RunAll(ctx))

	var firstPusat models.Branch
	require.NoError(t, db.First(&firstPusat, 42).Error)

	// Second run clears the previous demo data and regenerates
	cfg.ClearFirst = true
	require.NoError(t, NewOrchestrator(db, cfg).RunAll(ctx))

	var customers []models.Customer
	require.NoError(t, db.Order("id").Find(&customers).Error)
	require.Len(t, customers, cfg.CustomerCount)
	for i, c := range customers {
		assert.Equal(t, uint(i+1), c.ID)
	}

	var owners []models.User
	require.NoError(t, db.Where("is_demo = ?", true).Order("id").Find(&owners).Error)
	require.Len(t, owners, cfg.CustomerCount)
	for i, u := range owners {
		assert.Equal(t, uint(i+2), u.ID)
	}

	// The head-office key survives regeneration byte-identically
	var secondPusat models.Branch
	require.NoError(t, db.First(&secondPusat, 42).Error)
	assert.Equal(t, firstPusat.ID, secondPusat.ID)
	assert.Equal(t, firstPusat.CustomerID, secondPusat.CustomerID)
	assert.Equal(t, models.BranchTypePusat, secondPusat.Type)

	// No orphans from the first run
	var paidCount, paymentCount int64
	require.NoError(t, db.Model(&models.Invoice{}).
		Where("status = ?", models.InvoiceStatusPaid).Count(&paidCount).Error)
	require.NoError(t, db.Model(&models.Payment{}).Count(&paymentCount).Error)
	assert.Equal(t, paidCount, paymentCount)
}

func TestRunUnitOutOfOrderNamesMissingUpstream(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	orchestrator := NewOrchestrator(db, testDemoConfig())

	err := orchestrator.RunUnit(ctx, "invoices")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memberships unit")

	err = orchestrator.RunUnit(ctx, "branches")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customers unit")

	err = orchestrator.RunUnit(ctx, "employees")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "branches unit")
}

func TestRunAllAbortsOnFirstFailure(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Remove the regencies so the customers unit cannot validate
	require.NoError(t, db.Exec("DELETE FROM regencies").Error)

	err := NewOrchestrator(db, testDemoConfig()).RunAll(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit customers")

	// Units before the failure committed, units after never ran
	var levels, customers int64
	require.NoError(t, db.Model(&models.MembershipLevel{}).Count(&levels).Error)
	require.NoError(t, db.Model(&models.Customer{}).Count(&customers).Error)
	assert.EqualValues(t, 3, levels)
	assert.EqualValues(t, 0, customers)
}

func TestCleanupCommitsBeforeGenerationFails(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cfg := testDemoConfig()

	require.NoError(t, NewOrchestrator(db, cfg).RunAll(ctx))

	// Break generation downstream of cleanup
	require.NoError(t, db.Exec("DELETE FROM regencies").Error)

	cfg.ClearFirst = true
	err := NewOrchestrator(db, cfg).RunAll(ctx)
	require.Error(t, err)

	// Cleanup committed in its own transaction: the generation failure
	// must not resurrect the removed demo data
	var demoUsers, customers, branches, employees int64
	require.NoError(t, db.Model(&models.User{}).Where("is_demo = ?", true).Count(&demoUsers).Error)
	require.NoError(t, db.Model(&models.Customer{}).Count(&customers).Error)
	require.NoError(t, db.Model(&models.Branch{}).Count(&branches).Error)
	require.NoError(t, db.Model(&models.Employee{}).Count(&employees).Error)
	assert.EqualValues(t, 0, demoUsers)
	assert.EqualValues(t, 0, customers)
	assert.EqualValues(t, 0, branches)
	assert.EqualValues(t, 0, employees)
}

func TestCleanupLeavesLiveAccountsAlone(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	admin := models.User{
		ID:       1,
		Username: "admin",
		Email:    "admin@kencana.co.id",
		Password: "x",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	require.NoError(t, db.Create(&admin).Error)

	cfg := testDemoConfig()
	require.NoError(t, NewOrchestrator(db, cfg).RunAll(ctx))
	require.NoError(t, NewCleanup(db).Run(ctx))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
}
