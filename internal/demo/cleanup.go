package demo

import (
	"context"
	"fmt"
	"log"

	"kencana-crm/internal/adapters/persistence/repositories"
	"kencana-crm/internal/core/services"

	"gorm.io/gorm"
)

// Cleanup removes previously seeded demo data. Customers go through
// the same service cascade path used at creation time, so branches and
// employees disappear through symmetric hooks rather than ad-hoc
// foreign-key SQL. Only accounts carrying the demo marker are touched;
// the routine refuses to delete anything unmarked, which protects a
// real administrator from a key collision.
type Cleanup struct {
	db *gorm.DB
}

// NewCleanup creates a cleanup over the shared handle
func NewCleanup(db *gorm.DB) *Cleanup {
	return &Cleanup{db: db}
}

// Run deletes all demo-marked data inside one transaction of its own.
// Callers must commit it before any generation transaction begins: if
// the deletes lived inside the generation transaction, a later
// generation rollback would silently resurrect the data the operator
// asked to remove.
func (c *Cleanup) Run(ctx context.Context) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userRepo := repositories.NewUserRepository(tx)
		customerRepo := repositories.NewCustomerRepository(tx)

		branchService := services.NewBranchService(
			repositories.NewBranchRepository(tx),
			repositories.NewEmployeeRepository(tx),
			repositories.NewRegionRepository(tx),
		)
		customerService := services.NewCustomerService(
			customerRepo,
			repositories.NewRegionRepository(tx),
			userRepo,
			repositories.NewMembershipRepository(tx),
			repositories.NewInvoiceRepository(tx),
			branchService,
		)

		demoUsers, err := userRepo.ListDemo(ctx)
		if err != nil {
			return fmt.Errorf("list demo users: %w", err)
		}
		if len(demoUsers) == 0 {
			log.Println("⚠️ Cleanup: no demo users found, nothing to remove")
			return nil
		}

		userIDs := make([]uint, 0, len(demoUsers))
		for _, u := range demoUsers {
			userIDs = append(userIDs, u.ID)
		}

		customers, err := customerRepo.ListByUserIDs(ctx, userIDs)
		if err != nil {
			return fmt.Errorf("list demo customers: %w", err)
		}
		for _, customer := range customers {
			if err := customerService.Delete(ctx, customer.ID); err != nil {
				return fmt.Errorf("cascade-delete customer %d: %w", customer.ID, err)
			}
		}

		for _, user := range demoUsers {
			if !user.IsDemo {
				return fmt.Errorf("refusing to delete unmarked user %d (%s)", user.ID, user.Username)
			}
			if err := userRepo.HardDelete(ctx, user.ID); err != nil {
				return fmt.Errorf("delete demo user %d: %w", user.ID, err)
			}
		}

		log.Printf("✅ Cleanup removed %d demo customers and %d demo users", len(customers), len(demoUsers))
		return nil
	})
}
