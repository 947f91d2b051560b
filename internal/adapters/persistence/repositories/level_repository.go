package repositories

import (
	"context"

	"kencana-crm/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// levelRepository implements LevelRepository interface
type levelRepository struct {
	db *gorm.DB
}

// NewLevelRepository creates a new level repository
func NewLevelRepository(db *gorm.DB) LevelRepository {
	return &levelRepository{db: db}
}

// CreateLevel creates a membership level. A caller-set ID forces that key.
func (r *levelRepository) CreateLevel(ctx context.Context, level *models.MembershipLevel) error {
	if err := clearForcedID(r.db.WithContext(ctx), &models.MembershipLevel{}, level.ID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(level).Error
}

// GetLevelByID gets a level by ID
func (r *levelRepository) GetLevelByID(ctx context.Context, id uint) (*models.MembershipLevel, error) {
	var level models.MembershipLevel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&level).Error
	if err != nil {
		return nil, err
	}
	return &level, nil
}

// GetLevelBySlug gets a level by slug
func (r *levelRepository) GetLevelBySlug(ctx context.Context, slug string) (*models.MembershipLevel, error) {
	var level models.MembershipLevel
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&level).Error
	if err != nil {
		return nil, err
	}
	return &level, nil
}

// ListLevels lists levels ordered by sort order
func (r *levelRepository) ListLevels(ctx context.Context) ([]*models.MembershipLevel, error) {
	var levels []*models.MembershipLevel
	err := r.db.WithContext(ctx).Order("sort_order").Find(&levels).Error
	return levels, err
}

// UpdateLevel updates a level
func (r *levelRepository) UpdateLevel(ctx context.Context, level *models.MembershipLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

// HardDeleteLevel removes a level permanently
func (r *levelRepository) HardDeleteLevel(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.MembershipLevel{}, id).Error
}

// CreateGroup creates a feature group. A caller-set ID forces that key.
func (r *levelRepository) CreateGroup(ctx context.Context, group *models.MembershipFeatureGroup) error {
	if err := clearForcedID(r.db.WithContext(ctx), &models.MembershipFeatureGroup{}, group.ID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(group).Error
}

// GetGroupBySlug gets a feature group by slug
func (r *levelRepository) GetGroupBySlug(ctx context.Context, slug string) (*models.MembershipFeatureGroup, error) {
	var group models.MembershipFeatureGroup
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// ListGroups lists feature groups ordered by sort order
func (r *levelRepository) ListGroups(ctx context.Context) ([]*models.MembershipFeatureGroup, error) {
	var groups []*models.MembershipFeatureGroup
	err := r.db.WithContext(ctx).Order("sort_order").Find(&groups).Error
	return groups, err
}

// HardDeleteGroup removes a feature group permanently
func (r *levelRepository) HardDeleteGroup(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.MembershipFeatureGroup{}, id).Error
}

// CreateFeature creates a feature. A caller-set ID forces that key.
func (r *levelRepository) CreateFeature(ctx context.Context, feature *models.MembershipFeature) error {
	if err := clearForcedID(r.db.WithContext(ctx), &models.MembershipFeature{}, feature.ID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(feature).Error
}

// GetFeatureBySlug gets a feature by slug
func (r *levelRepository) GetFeatureBySlug(ctx context.Context, slug string) (*models.MembershipFeature, error) {
	var feature models.MembershipFeature
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&feature).Error
	if err != nil {
		return nil, err
	}
	return &feature, nil
}

// ListFeatures lists features ordered by sort order
func (r *levelRepository) ListFeatures(ctx context.Context) ([]*models.MembershipFeature, error) {
	var features []*models.MembershipFeature
	err := r.db.WithContext(ctx).Order("sort_order").Find(&features).Error
	return features, err
}

// HardDeleteFeature removes a feature permanently
func (r *levelRepository) HardDeleteFeature(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.MembershipFeature{}, id).Error
}
