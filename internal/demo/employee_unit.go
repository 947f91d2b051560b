package demo

import (
	"context"
	"fmt"
	"time"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// EmployeeUnit fans employees out across every seeded branch. There is
// no live validator to replay for employees, so rows go in as batched
// direct inserts, paced with a fixed sleep between sub-batches instead
// of raising any execution ceiling.
type EmployeeUnit struct {
	gen        *DataGen
	tracker    *Tracker
	state      *State
	batchSize  int
	batchPause time.Duration
}

func (u *EmployeeUnit) Name() string { return "employees" }

func (u *EmployeeUnit) Validate(ctx context.Context, db *gorm.DB) error {
	var branches int64
	if err := db.WithContext(ctx).Model(&models.Branch{}).Count(&branches).Error; err != nil {
		return err
	}
	if branches == 0 {
		return fmt.Errorf("no branches found, run the branches unit first")
	}
	return nil
}

func (u *EmployeeUnit) Generate(ctx context.Context, tx *gorm.DB) error {
	employeeRepo := repositories.NewEmployeeRepository(tx)

	var branches []*models.Branch
	if err := tx.WithContext(ctx).Order("id").Find(&branches).Error; err != nil {
		return err
	}

	var batch []*models.Employee
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := employeeRepo.CreateBatch(ctx, batch); err != nil {
			return fmt.Errorf("insert employee batch of %d: %w", len(batch), err)
		}
		for _, e := range batch {
			u.state.EmployeeIDs = append(u.state.EmployeeIDs, e.ID)
		}
		batch = batch[:0]
		if u.batchPause > 0 {
			time.Sleep(u.batchPause)
		}
		return nil
	}

	for _, branch := range branches {
		perBranch := 2 + u.gen.Intn(3)
		for n := 0; n < perBranch; n++ {
			name := u.gen.PersonName()
			email, err := u.tracker.Unique(KindEmail, func() string { return u.gen.Email(name) })
			if err != nil {
				return err
			}
			phone, err := u.tracker.Unique(KindPhone, u.gen.Phone)
			if err != nil {
				return err
			}

			batch = append(batch, &models.Employee{
				CustomerID: branch.CustomerID,
				BranchID:   branch.ID,
				Name:       name,
				Email:      email,
				Phone:      phone,
				Position:   u.gen.Position(),
				Finance:    u.gen.Chance(0.25),
				Operation:  u.gen.Chance(0.5),
				Legal:      u.gen.Chance(0.15),
				Purchase:   u.gen.Chance(0.25),
				Status:     "active",
			})

			if len(batch) >= u.batchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
	}

	return flush()
}
