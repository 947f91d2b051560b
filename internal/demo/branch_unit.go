package demo

import (
	"context"
	"fmt"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/adapters/persistence/repositories"
	"kencana-crm/internal/core/services"

	"gorm.io/gorm"
)

// BranchUnit adds cabang branches to the seeded customers. Cabang rows
// carry no static-key requirement, so they go through runtime-flow
// replay with a nil forced key and accept whatever the store assigns.
// Attributes stay geographically consistent: the regency belongs to
// the customer's province, the supervising agency operates in that
// province, and an assigned inspector is an agency staff member not
// already supervising another branch of the same agency.
type BranchUnit struct {
	gen     *DataGen
	tracker *Tracker
	state   *State
}

func (u *BranchUnit) Name() string { return "branches" }

func (u *BranchUnit) Validate(ctx context.Context, db *gorm.DB) error {
	var customers int64
	if err := db.WithContext(ctx).Model(&models.Customer{}).Count(&customers).Error; err != nil {
		return err
	}
	if customers == 0 {
		return fmt.Errorf("no customers found, run the customers unit first")
	}
	return nil
}

func (u *BranchUnit) Generate(ctx context.Context, tx *gorm.DB) error {
	customerRepo := repositories.NewCustomerRepository(tx)
	regionRepo := repositories.NewRegionRepository(tx)
	replayer := NewReplayer(tx)

	// Upstream rows come from storage, not from in-memory caches, so a
	// fresh process can resume against a half-seeded database.
	customers, _, err := customerRepo.List(ctx, 0, 1000)
	if err != nil {
		return err
	}

	// inspectors already assigned this run, keyed by agency
	assigned := make(map[uint]map[uint]bool)

	for _, customer := range customers {
		regencies, err := regionRepo.ListRegenciesByProvince(ctx, customer.ProvinceID)
		if err != nil {
			return err
		}
		if len(regencies) == 0 {
			return fmt.Errorf("customer %q: province %d has no regencies", customer.Name, customer.ProvinceID)
		}

		agencies, err := regionRepo.ListAgenciesByProvince(ctx, customer.ProvinceID)
		if err != nil {
			return err
		}

		cabangCount := 1 + u.gen.Intn(2)
		for n := 1; n <= cabangCount; n++ {
			regency := regencies[u.gen.Intn(len(regencies))]

			var agencyID, inspectorID *uint
			if len(agencies) > 0 {
				agency := agencies[u.gen.Intn(len(agencies))]
				agencyID = &agency.ID

				if inspector := u.pickInspector(ctx, regionRepo, agency.ID, assigned); inspector != nil {
					inspectorID = &inspector.ID
				}
			}

			phone, err := u.tracker.Unique(KindPhone, u.gen.Phone)
			if err != nil {
				return err
			}

			input := &services.CreateBranchInput{
				CustomerID:  customer.ID,
				Code:        fmt.Sprintf("%s-C%d", customer.Code, n),
				Name:        fmt.Sprintf("%s Cabang %s", customer.Name, regency.Name),
				Type:        models.BranchTypeCabang,
				Address:     fmt.Sprintf("Jl. Sudirman No. %d, %s", u.gen.Intn(300)+1, regency.Name),
				Phone:       phone,
				ProvinceID:  customer.ProvinceID,
				RegencyID:   regency.ID,
				AgencyID:    agencyID,
				InspectorID: inspectorID,
				UserID:      customer.UserID,
			}

			branch, err := replayer.CreateBranch(ctx, input, nil)
			if err != nil {
				return err
			}
			u.state.BranchIDs = append(u.state.BranchIDs, branch.ID)
		}
	}

	return nil
}

// pickInspector returns an unassigned active inspector of the agency,
// or nil when every inspector is already supervising a branch.
func (u *BranchUnit) pickInspector(ctx context.Context, regionRepo repositories.RegionRepository, agencyID uint, assigned map[uint]map[uint]bool) *models.AgencyEmployee {
	inspectors, err := regionRepo.ListInspectorsByAgency(ctx, agencyID)
	if err != nil || len(inspectors) == 0 {
		return nil
	}

	taken := assigned[agencyID]
	if taken == nil {
		taken = make(map[uint]bool)
		assigned[agencyID] = taken
	}

	for _, candidate := range inspectors {
		if !taken[candidate.ID] {
			taken[candidate.ID] = true
			return candidate
		}
	}
	return nil
}
