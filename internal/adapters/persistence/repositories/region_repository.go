package repositories

import (
	"context"

	"kencana-crm/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// regionRepository implements RegionRepository interface.
// Region and agency tables are master data: this repository is
// read-only; rows come from the master seeder.
type regionRepository struct {
	db *gorm.DB
}

// NewRegionRepository creates a new region repository
func NewRegionRepository(db *gorm.DB) RegionRepository {
	return &regionRepository{db: db}
}

// ListProvinces lists all provinces
func (r *regionRepository) ListProvinces(ctx context.Context) ([]*models.Province, error) {
	var provinces []*models.Province
	err := r.db.WithContext(ctx).Order("id").Find(&provinces).Error
	return provinces, err
}

// GetProvince gets a province by ID
func (r *regionRepository) GetProvince(ctx context.Context, id uint) (*models.Province, error) {
	var province models.Province
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&province).Error
	if err != nil {
		return nil, err
	}
	return &province, nil
}

// ListRegenciesByProvince lists regencies of a province
func (r *regionRepository) ListRegenciesByProvince(ctx context.Context, provinceID uint) ([]*models.Regency, error) {
	var regencies []*models.Regency
	err := r.db.WithContext(ctx).Where("province_id = ?", provinceID).Order("id").Find(&regencies).Error
	return regencies, err
}

// GetRegency gets a regency by ID
func (r *regionRepository) GetRegency(ctx context.Context, id uint) (*models.Regency, error) {
	var regency models.Regency
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&regency).Error
	if err != nil {
		return nil, err
	}
	return &regency, nil
}

// ListAgenciesByProvince lists active agencies of a province
func (r *regionRepository) ListAgenciesByProvince(ctx context.Context, provinceID uint) ([]*models.Agency, error) {
	var agencies []*models.Agency
	err := r.db.WithContext(ctx).
		Where("province_id = ? AND is_active = ?", provinceID, true).
		Order("id").Find(&agencies).Error
	return agencies, err
}

// GetAgency gets an agency by ID
func (r *regionRepository) GetAgency(ctx context.Context, id uint) (*models.Agency, error) {
	var agency models.Agency
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&agency).Error
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

// ListInspectorsByAgency lists active inspectors of an agency
func (r *regionRepository) ListInspectorsByAgency(ctx context.Context, agencyID uint) ([]*models.AgencyEmployee, error) {
	var staff []*models.AgencyEmployee
	err := r.db.WithContext(ctx).
		Where("agency_id = ? AND is_inspector = ? AND is_active = ?", agencyID, true, true).
		Order("id").Find(&staff).Error
	return staff, err
}

// GetAgencyEmployee gets an agency employee by ID
func (r *regionRepository) GetAgencyEmployee(ctx context.Context, id uint) (*models.AgencyEmployee, error) {
	var emp models.AgencyEmployee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}
