package repositories

import (
	"context"

	"kencana-crm/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// employeeRepository implements EmployeeRepository interface
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create creates a new employee
func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	if err := clearForcedID(r.db.WithContext(ctx), &models.Employee{}, employee.ID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(employee).Error
}

// CreateBatch inserts a slice of employees in one statement
func (r *employeeRepository) CreateBatch(ctx context.Context, employees []*models.Employee) error {
	if len(employees) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&employees).Error
}

// GetByID gets an employee by ID
func (r *employeeRepository) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// ListByBranch lists employees of a branch
func (r *employeeRepository) ListByBranch(ctx context.Context, branchID uint) ([]*models.Employee, error) {
	var employees []*models.Employee
	err := r.db.WithContext(ctx).Where("branch_id = ?", branchID).Order("id").Find(&employees).Error
	return employees, err
}

// HardDeleteByBranch removes all employees of a branch permanently
func (r *employeeRepository) HardDeleteByBranch(ctx context.Context, branchID uint) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("branch_id = ?", branchID).
		Delete(&models.Employee{}).Error
}

// Count counts employees
func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error
	return count, err
}

// CountByBranch counts employees of a branch
func (r *employeeRepository) CountByBranch(ctx context.Context, branchID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).
		Where("branch_id = ?", branchID).Count(&count).Error
	return count, err
}
