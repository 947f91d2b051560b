package repositories

import (
	"context"

	"kencana-crm/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user. A caller-set ID forces that key.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := clearForcedID(r.db.WithContext(ctx), &models.User{}, user.ID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID (direct read, no caching layer)
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername gets a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete soft deletes a user
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

// HardDelete removes a user row permanently
func (r *userRepository) HardDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.User{}, id).Error
}

// List lists users with pagination
func (r *userRepository) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	// Count total
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get users with pagination
	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ExistsByUsername checks if username exists
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ReassignID moves a user row from an auto-assigned key to a
// caller-chosen key and repoints dependent back-references. FK
// enforcement is suspended for the window.
func (r *userRepository) ReassignID(ctx context.Context, fromID, toID uint) error {
	db := r.db.WithContext(ctx)
	return withFKChecksDisabled(db, func(db *gorm.DB) error {
		if err := db.Model(&models.User{}).Where("id = ?", fromID).
			Update("id", toID).Error; err != nil {
			return err
		}
		if err := db.Model(&models.RefreshToken{}).Where("user_id = ?", fromID).
			Update("user_id", toID).Error; err != nil {
			return err
		}
		if err := db.Model(&models.Customer{}).Where("user_id = ?", fromID).
			Update("user_id", toID).Error; err != nil {
			return err
		}
		return db.Model(&models.Branch{}).Where("user_id = ?", fromID).
			Update("user_id", toID).Error
	})
}

// ListDemo lists users carrying the demo-generated marker
func (r *userRepository) ListDemo(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Where("is_demo = ?", true).Find(&users).Error
	return users, err
}
