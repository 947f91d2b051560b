package repositories

import (
	"context"

	"kencana-crm/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// branchRepository implements BranchRepository interface
type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

// Create creates a new branch. A caller-set ID forces that key.
func (r *branchRepository) Create(ctx context.Context, branch *models.Branch) error {
	if err := clearForcedID(r.db.WithContext(ctx), &models.Branch{}, branch.ID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(branch).Error
}

// GetByID gets a branch by ID
func (r *branchRepository) GetByID(ctx context.Context, id uint) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.WithContext(ctx).
		Preload("Agency").
		Preload("Inspector").
		Where("id = ?", id).First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

// ListByCustomer lists all branches of a customer
func (r *branchRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Branch, error) {
	var branches []*models.Branch
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&branches).Error
	return branches, err
}

// GetPusat gets the head-office branch of a customer
func (r *branchRepository) GetPusat(ctx context.Context, customerID uint) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND type = ?", customerID, models.BranchTypePusat).
		First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

// Update updates a branch
func (r *branchRepository) Update(ctx context.Context, branch *models.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

// HardDelete removes a branch row permanently
func (r *branchRepository) HardDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.Branch{}, id).Error
}

// Count counts branches
func (r *branchRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Branch{}).Count(&count).Error
	return count, err
}

// CountByCustomer counts branches of a customer
func (r *branchRepository) CountByCustomer(ctx context.Context, customerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Branch{}).
		Where("customer_id = ?", customerID).Count(&count).Error
	return count, err
}
