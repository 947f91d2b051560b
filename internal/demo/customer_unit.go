package demo

import (
	"context"
	"fmt"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/adapters/persistence/repositories"
	"kencana-crm/internal/core/services"

	"gorm.io/gorm"
)

// CustomerUnit materializes the statically-keyed demo customers. Each
// demo index gets an owner account at a forced key (via the identity
// ensurer) and a customer row at a forced key (via runtime-flow
// replay), which cascades into the forced-key head-office branch.
type CustomerUnit struct {
	ids     *StaticIDs
	tracker *Tracker
	gen     *DataGen
	state   *State
}

func (u *CustomerUnit) Name() string { return "customers" }

func (u *CustomerUnit) Validate(ctx context.Context, db *gorm.DB) error {
	var provinces int64
	if err := db.WithContext(ctx).Model(&models.Province{}).Count(&provinces).Error; err != nil {
		return err
	}
	if provinces == 0 {
		return fmt.Errorf("no region master data found, seed provinces and regencies first")
	}

	var regencies int64
	if err := db.WithContext(ctx).Model(&models.Regency{}).Count(&regencies).Error; err != nil {
		return err
	}
	if regencies == 0 {
		return fmt.Errorf("no regencies found, seed region master data first")
	}
	return nil
}

func (u *CustomerUnit) Generate(ctx context.Context, tx *gorm.DB) error {
	regionRepo := repositories.NewRegionRepository(tx)
	ensurer := NewIdentityEnsurer(tx)
	replayer := NewReplayer(tx)

	provinces, err := regionRepo.ListProvinces(ctx)
	if err != nil {
		return err
	}

	for i := 1; i <= u.ids.Count(); i++ {
		ownerID := u.ids.UserID(i)
		customerID := u.ids.CustomerID(i)
		pusatID := u.ids.PusatBranchID(customerID)

		username := fmt.Sprintf("demo_owner_%02d", i)
		owner, err := ensurer.Ensure(ctx, ownerID, username, u.gen.PersonName())
		if err != nil {
			return err
		}

		// Spread customers over the region master data
		province := provinces[u.gen.Intn(len(provinces))]
		regencies, err := regionRepo.ListRegenciesByProvince(ctx, province.ID)
		if err != nil {
			return err
		}
		if len(regencies) == 0 {
			return fmt.Errorf("province %q has no regencies", province.Name)
		}
		regency := regencies[u.gen.Intn(len(regencies))]

		npwp, err := u.tracker.Unique(KindNPWP, u.gen.NPWP)
		if err != nil {
			return err
		}
		nib, err := u.tracker.Unique(KindNIB, u.gen.NIB)
		if err != nil {
			return err
		}
		phone, err := u.tracker.Unique(KindPhone, u.gen.Phone)
		if err != nil {
			return err
		}

		input := &services.CreateCustomerInput{
			Code:       fmt.Sprintf("DEMO-%03d", i),
			Name:       u.gen.CompanyName(),
			NPWP:       npwp,
			NIB:        nib,
			ProvinceID: province.ID,
			RegencyID:  regency.ID,
			UserID:     owner.ID,
			Address:    fmt.Sprintf("Jl. Merdeka No. %d, %s", u.gen.Intn(200)+1, regency.Name),
			Phone:      phone,
		}

		id, err := replayer.CreateCustomer(ctx, input, customerID, pusatID)
		if err != nil {
			return err
		}
		u.state.CustomerIDs = append(u.state.CustomerIDs, id)
		u.state.BranchIDs = append(u.state.BranchIDs, pusatID)
	}

	return nil
}
