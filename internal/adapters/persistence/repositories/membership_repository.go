package repositories

import (
	"context"
	"time"

	"kencana-crm/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// membershipRepository implements MembershipRepository interface
type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// Create creates a new membership
func (r *membershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	if err := clearForcedID(r.db.WithContext(ctx), &models.Membership{}, membership.ID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(membership).Error
}

// GetByID gets a membership by ID
func (r *membershipRepository) GetByID(ctx context.Context, id uint) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).Preload("Level").Where("id = ?", id).First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetByBranch gets the membership of a branch
func (r *membershipRepository) GetByBranch(ctx context.Context, branchID uint) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).Where("branch_id = ?", branchID).First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// ListByCustomer lists memberships of a customer
func (r *membershipRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Membership, error) {
	var memberships []*models.Membership
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&memberships).Error
	return memberships, err
}

// List lists all memberships
func (r *membershipRepository) List(ctx context.Context) ([]*models.Membership, error) {
	var memberships []*models.Membership
	err := r.db.WithContext(ctx).Order("id").Find(&memberships).Error
	return memberships, err
}

// Update updates a membership
func (r *membershipRepository) Update(ctx context.Context, membership *models.Membership) error {
	return r.db.WithContext(ctx).Save(membership).Error
}

// HardDeleteByCustomer removes all memberships of a customer permanently
func (r *membershipRepository) HardDeleteByCustomer(ctx context.Context, customerID uint) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("customer_id = ?", customerID).
		Delete(&models.Membership{}).Error
}

// Count counts memberships
func (r *membershipRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Membership{}).Count(&count).Error
	return count, err
}

// ListExpiredActive lists active memberships whose period has lapsed
func (r *membershipRepository) ListExpiredActive(ctx context.Context) ([]*models.Membership, error) {
	var memberships []*models.Membership
	err := r.db.WithContext(ctx).
		Where("status = ? AND period_end < ?", models.MembershipStatusActive, time.Now()).
		Find(&memberships).Error
	return memberships, err
}
