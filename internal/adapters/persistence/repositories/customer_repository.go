package repositories

import (
	"context"

	"kencana-crm/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// customerRepository implements CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer. A caller-set ID forces that key.
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := clearForcedID(r.db.WithContext(ctx), &models.Customer{}, customer.ID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetByID gets a customer by ID with owner and region preloaded
func (r *customerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Province").
		Preload("Regency").
		Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByCode gets a customer by its unique code
func (r *customerRepository) GetByCode(ctx context.Context, code string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update updates a customer
func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// HardDelete removes a customer row permanently
func (r *customerRepository) HardDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.Customer{}, id).Error
}

// List lists customers with pagination
func (r *customerRepository) List(ctx context.Context, offset, limit int) ([]*models.Customer, int64, error) {
	var customers []*models.Customer
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Province").
		Preload("Regency").
		Order("id").
		Offset(offset).Limit(limit).Find(&customers).Error; err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

// ListByUserIDs lists customers owned by any of the given users
func (r *customerRepository) ListByUserIDs(ctx context.Context, userIDs []uint) ([]*models.Customer, error) {
	var customers []*models.Customer
	if len(userIDs) == 0 {
		return customers, nil
	}
	err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Order("id").Find(&customers).Error
	return customers, err
}

// ExistsByNPWP checks if NPWP is taken (direct read)
func (r *customerRepository) ExistsByNPWP(ctx context.Context, npwp string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Where("npwp = ?", npwp).Count(&count).Error
	return count > 0, err
}

// ExistsByNIB checks if NIB is taken (direct read)
func (r *customerRepository) ExistsByNIB(ctx context.Context, nib string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Where("nib = ?", nib).Count(&count).Error
	return count > 0, err
}

// Count counts customers
func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, err
}
