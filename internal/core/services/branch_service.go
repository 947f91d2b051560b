package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Branch service errors
var (
	ErrBranchNotFoundSvc = errors.New("branch not found")
	ErrPusatAlreadyExist = errors.New("customer already has a head-office branch")
)

// BranchService handles branch business logic
type BranchService struct {
	branchRepo   repositories.BranchRepository
	employeeRepo repositories.EmployeeRepository
	regionRepo   repositories.RegionRepository
}

// NewBranchService creates a new branch service
func NewBranchService(
	branchRepo repositories.BranchRepository,
	employeeRepo repositories.EmployeeRepository,
	regionRepo repositories.RegionRepository,
) *BranchService {
	return &BranchService{
		branchRepo:   branchRepo,
		employeeRepo: employeeRepo,
		regionRepo:   regionRepo,
	}
}

// CreateBranchInput represents create branch input.
// ForceID pins the primary key; nil means auto-increment.
type CreateBranchInput struct {
	CustomerID  uint   `json:"customer_id" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	NITKU       string `json:"nitku,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	ProvinceID  uint   `json:"province_id" validate:"required"`
	RegencyID   uint   `json:"regency_id" validate:"required"`
	AgencyID    *uint  `json:"agency_id,omitempty"`
	InspectorID *uint  `json:"inspector_id,omitempty"`
	UserID      uint   `json:"user_id" validate:"required"`

	ForceID *uint `json:"-"`
}

// Validate checks every branch precondition and collects the reasons
func (s *BranchService) Validate(ctx context.Context, input *CreateBranchInput) error {
	var reasons []string

	if len(strings.TrimSpace(input.Name)) < 3 {
		reasons = append(reasons, "name must be at least 3 characters")
	}
	if input.Type != models.BranchTypePusat && input.Type != models.BranchTypeCabang {
		reasons = append(reasons, fmt.Sprintf("type %q must be pusat or cabang", input.Type))
	}
	if input.Phone != "" && !ValidPhone(input.Phone) {
		reasons = append(reasons, fmt.Sprintf("phone %q is not a valid mobile number", input.Phone))
	}
	if input.Email != "" && !ValidEmail(input.Email) {
		reasons = append(reasons, fmt.Sprintf("email %q is not valid", input.Email))
	}

	// Only one pusat per customer
	if input.Type == models.BranchTypePusat {
		if existing, err := s.branchRepo.GetPusat(ctx, input.CustomerID); err == nil && existing != nil {
			// A forced key re-pointing at the same row is a reseed, not a duplicate
			if input.ForceID == nil || existing.ID != *input.ForceID {
				reasons = append(reasons, ErrPusatAlreadyExist.Error())
			}
		}
	}

	regency, err := s.regionRepo.GetRegency(ctx, input.RegencyID)
	if err != nil {
		reasons = append(reasons, fmt.Sprintf("regency %d not found", input.RegencyID))
	} else if regency.ProvinceID != input.ProvinceID {
		reasons = append(reasons, fmt.Sprintf("regency %d does not belong to province %d", input.RegencyID, input.ProvinceID))
	}

	// Agency must sit in the branch province and be active
	if input.AgencyID != nil {
		agency, err := s.regionRepo.GetAgency(ctx, *input.AgencyID)
		switch {
		case err != nil:
			reasons = append(reasons, fmt.Sprintf("agency %d not found", *input.AgencyID))
		case !agency.IsActive:
			reasons = append(reasons, fmt.Sprintf("agency %d is inactive", *input.AgencyID))
		case agency.ProvinceID != input.ProvinceID:
			reasons = append(reasons, fmt.Sprintf("agency %d does not operate in province %d", *input.AgencyID, input.ProvinceID))
		}
	}

	// Inspector must belong to the assigned agency and carry the inspector flag
	if input.InspectorID != nil {
		if input.AgencyID == nil {
			reasons = append(reasons, "inspector assigned without an agency")
		} else {
			inspector, err := s.regionRepo.GetAgencyEmployee(ctx, *input.InspectorID)
			switch {
			case err != nil:
				reasons = append(reasons, fmt.Sprintf("inspector %d not found", *input.InspectorID))
			case inspector.AgencyID != *input.AgencyID:
				reasons = append(reasons, fmt.Sprintf("inspector %d does not belong to agency %d", *input.InspectorID, *input.AgencyID))
			case !inspector.IsInspector:
				reasons = append(reasons, fmt.Sprintf("agency employee %d is not an inspector", *input.InspectorID))
			case !inspector.IsActive:
				reasons = append(reasons, fmt.Sprintf("inspector %d is inactive", *input.InspectorID))
			}
		}
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	return nil
}

// Create validates and persists a branch
func (s *BranchService) Create(ctx context.Context, input *CreateBranchInput) (*models.Branch, error) {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := s.Validate(ctx, input); err != nil {
		return nil, err
	}

	branch := &models.Branch{
		CustomerID:  input.CustomerID,
		Code:        input.Code,
		Name:        input.Name,
		Type:        input.Type,
		NITKU:       input.NITKU,
		Address:     input.Address,
		Phone:       input.Phone,
		Email:       input.Email,
		ProvinceID:  input.ProvinceID,
		RegencyID:   input.RegencyID,
		AgencyID:    input.AgencyID,
		InspectorID: input.InspectorID,
		UserID:      input.UserID,
		Status:      "active",
	}
	if input.ForceID != nil {
		branch.ID = *input.ForceID
	}

	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, fmt.Errorf("create branch %q: %w", input.Name, err)
	}
	return branch, nil
}

// GetByID gets a branch by ID
func (s *BranchService) GetByID(ctx context.Context, id uint) (*models.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFoundSvc
		}
		return nil, err
	}
	return branch, nil
}

// ListByCustomer lists all branches of a customer
func (s *BranchService) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Branch, error) {
	return s.branchRepo.ListByCustomer(ctx, customerID)
}

// GetPusat returns the head-office branch of a customer
func (s *BranchService) GetPusat(ctx context.Context, customerID uint) (*models.Branch, error) {
	branch, err := s.branchRepo.GetPusat(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFoundSvc
		}
		return nil, err
	}
	return branch, nil
}

// Delete removes a branch and its employees
func (s *BranchService) Delete(ctx context.Context, id uint) error {
	if _, err := s.branchRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBranchNotFoundSvc
		}
		return err
	}
	if err := s.employeeRepo.HardDeleteByBranch(ctx, id); err != nil {
		return fmt.Errorf("delete employees of branch %d: %w", id, err)
	}
	return s.branchRepo.HardDelete(ctx, id)
}
