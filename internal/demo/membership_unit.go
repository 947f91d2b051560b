package demo

import (
	"context"
	"fmt"
	"time"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// MembershipUnit activates a membership on every seeded branch at a
// uniform-random level. Memberships have no live validator to replay,
// so rows are written directly through the repository.
type MembershipUnit struct {
	gen   *DataGen
	state *State
}

func (u *MembershipUnit) Name() string { return "memberships" }

func (u *MembershipUnit) Validate(ctx context.Context, db *gorm.DB) error {
	var levels int64
	if err := db.WithContext(ctx).Model(&models.MembershipLevel{}).Count(&levels).Error; err != nil {
		return err
	}
	if levels == 0 {
		return fmt.Errorf("no membership levels found, run the membership-levels unit first")
	}

	var branches int64
	if err := db.WithContext(ctx).Model(&models.Branch{}).Count(&branches).Error; err != nil {
		return err
	}
	if branches == 0 {
		return fmt.Errorf("no branches found, run the branches unit first")
	}
	return nil
}

func (u *MembershipUnit) Generate(ctx context.Context, tx *gorm.DB) error {
	membershipRepo := repositories.NewMembershipRepository(tx)
	levelRepo := repositories.NewLevelRepository(tx)

	levels, err := levelRepo.ListLevels(ctx)
	if err != nil {
		return err
	}

	var branches []*models.Branch
	if err := tx.WithContext(ctx).Order("id").Find(&branches).Error; err != nil {
		return err
	}

	now := time.Now()
	for _, branch := range branches {
		// Idempotent rerun: a branch that already holds a membership
		// keeps it.
		if existing, err := membershipRepo.GetByBranch(ctx, branch.ID); err == nil && existing != nil {
			u.state.MembershipIDs = append(u.state.MembershipIDs, existing.ID)
			continue
		}

		level := levels[u.gen.Intn(len(levels))]
		useTrial := level.TrialDays > 0 && u.gen.Chance(0.5)

		start := now.AddDate(0, -u.gen.Intn(6), 0)
		end := start.AddDate(1, 0, 0)
		if useTrial {
			end = start.AddDate(0, 0, level.TrialDays)
		}

		membership := &models.Membership{
			CustomerID:  branch.CustomerID,
			BranchID:    branch.ID,
			LevelID:     level.ID,
			Status:      models.MembershipStatusActive,
			PeriodStart: start,
			PeriodEnd:   end,
			TrialUsed:   useTrial,
		}
		if err := membershipRepo.Create(ctx, membership); err != nil {
			return fmt.Errorf("create membership for branch %d: %w", branch.ID, err)
		}
		u.state.MembershipIDs = append(u.state.MembershipIDs, membership.ID)
	}

	return nil
}
