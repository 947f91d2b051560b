package demo

import (
	"context"
	"fmt"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Membership taxonomy fixtures. Levels, feature groups and features are
// master data with forced keys so fixture invoices can reference them
// by exact ID across runs.

type levelFixture struct {
	ID           uint
	Slug         string
	Name         string
	PricePerUnit float64
	MaxBranches  int
	MaxEmployees int
	TrialDays    int
	GraceDays    int
}

var levelFixtures = []levelFixture{
	{1, "dasar", "Paket Dasar", 250000, 1, 10, 14, 7},
	{2, "bisnis", "Paket Bisnis", 750000, 5, 50, 7, 7},
	{3, "korporat", "Paket Korporat", 2500000, 25, 500, 0, 14},
}

type groupFixture struct {
	ID   uint
	Slug string
	Name string
}

var groupFixtures = []groupFixture{
	{1, "penjualan", "Penjualan"},
	{2, "keuangan", "Keuangan"},
	{3, "laporan", "Laporan"},
}

type featureFixture struct {
	ID      uint
	GroupID uint
	Slug    string
	Name    string
}

var featureFixtures = []featureFixture{
	{1, 1, "faktur", "Faktur Penjualan"},
	{2, 1, "pelanggan", "Manajemen Pelanggan"},
	{3, 2, "pembayaran", "Pencatatan Pembayaran"},
	{4, 2, "tagihan", "Penagihan Otomatis"},
	{5, 3, "laporan-bulanan", "Laporan Bulanan"},
	{6, 3, "ekspor-data", "Ekspor Data"},
}

// LevelUnit seeds the membership levels at forced keys
type LevelUnit struct{}

func (u *LevelUnit) Name() string { return "membership-levels" }

func (u *LevelUnit) Validate(ctx context.Context, db *gorm.DB) error {
	if !db.Migrator().HasTable(&models.MembershipLevel{}) {
		return fmt.Errorf("membership_levels table missing, run migrations first")
	}
	return nil
}

func (u *LevelUnit) Generate(ctx context.Context, tx *gorm.DB) error {
	levelRepo := repositories.NewLevelRepository(tx)
	for _, f := range levelFixtures {
		level := &models.MembershipLevel{
			ID:           f.ID,
			Slug:         f.Slug,
			Name:         f.Name,
			PricePerUnit: f.PricePerUnit,
			MaxBranches:  f.MaxBranches,
			MaxEmployees: f.MaxEmployees,
			TrialDays:    f.TrialDays,
			GraceDays:    f.GraceDays,
			SortOrder:    int(f.ID),
			IsActive:     true,
		}
		if err := levelRepo.CreateLevel(ctx, level); err != nil {
			return fmt.Errorf("create level %q: %w", f.Slug, err)
		}
	}
	return nil
}

// FeatureGroupUnit seeds the feature groups at forced keys
type FeatureGroupUnit struct{}

func (u *FeatureGroupUnit) Name() string { return "membership-feature-groups" }

func (u *FeatureGroupUnit) Validate(ctx context.Context, db *gorm.DB) error {
	if !db.Migrator().HasTable(&models.MembershipFeatureGroup{}) {
		return fmt.Errorf("membership_feature_groups table missing, run migrations first")
	}
	return nil
}

func (u *FeatureGroupUnit) Generate(ctx context.Context, tx *gorm.DB) error {
	levelRepo := repositories.NewLevelRepository(tx)
	for _, f := range groupFixtures {
		group := &models.MembershipFeatureGroup{
			ID:        f.ID,
			Slug:      f.Slug,
			Name:      f.Name,
			SortOrder: int(f.ID),
			IsActive:  true,
		}
		if err := levelRepo.CreateGroup(ctx, group); err != nil {
			return fmt.Errorf("create feature group %q: %w", f.Slug, err)
		}
	}
	return nil
}

// FeatureUnit seeds the features at forced keys, one group upstream
type FeatureUnit struct{}

func (u *FeatureUnit) Name() string { return "membership-features" }

func (u *FeatureUnit) Validate(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.MembershipFeatureGroup{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no feature groups found, run the membership-feature-groups unit first")
	}
	return nil
}

func (u *FeatureUnit) Generate(ctx context.Context, tx *gorm.DB) error {
	levelRepo := repositories.NewLevelRepository(tx)
	for _, f := range featureFixtures {
		feature := &models.MembershipFeature{
			ID:        f.ID,
			GroupID:   f.GroupID,
			Slug:      f.Slug,
			Name:      f.Name,
			SortOrder: int(f.ID),
			IsActive:  true,
		}
		if err := levelRepo.CreateFeature(ctx, feature); err != nil {
			return fmt.Errorf("create feature %q: %w", f.Slug, err)
		}
	}
	return nil
}
