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

// Customer service errors
var (
	ErrCustomerNotFoundSvc = errors.New("customer not found")
	ErrNPWPAlreadyExists   = errors.New("npwp already registered")
	ErrNIBAlreadyExists    = errors.New("nib already registered")
)

// CustomerService handles customer business logic. Creating a customer
// cascades into creating its head-office (pusat) branch; deleting a
// customer cascades through the same branch service, so branches and
// their employees are removed symmetrically.
type CustomerService struct {
	customerRepo   repositories.CustomerRepository
	regionRepo     repositories.RegionRepository
	userRepo       repositories.UserRepository
	membershipRepo repositories.MembershipRepository
	invoiceRepo    repositories.InvoiceRepository
	branchService  *BranchService
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repositories.CustomerRepository,
	regionRepo repositories.RegionRepository,
	userRepo repositories.UserRepository,
	membershipRepo repositories.MembershipRepository,
	invoiceRepo repositories.InvoiceRepository,
	branchService *BranchService,
) *CustomerService {
	return &CustomerService{
		customerRepo:   customerRepo,
		regionRepo:     regionRepo,
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		invoiceRepo:    invoiceRepo,
		branchService:  branchService,
	}
}

// CreateCustomerInput represents create customer input.
// ForceID/ForcePusatID pin the primary keys of the customer and its
// auto-created head-office branch; both are nil on the live path and
// set only by fixture tooling.
type CreateCustomerInput struct {
	Code       string `json:"code" validate:"required"`
	Name       string `json:"name" validate:"required"`
	NPWP       string `json:"npwp" validate:"required"`
	NIB        string `json:"nib" validate:"required"`
	ProvinceID uint   `json:"province_id" validate:"required"`
	RegencyID  uint   `json:"regency_id" validate:"required"`
	UserID     uint   `json:"user_id" validate:"required"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`

	ForceID      *uint `json:"-"`
	ForcePusatID *uint `json:"-"`
}

// Sanitize normalizes the input the same way for live and seeded data
func (in *CreateCustomerInput) Sanitize() {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Name = strings.TrimSpace(in.Name)
	in.NPWP = strings.TrimSpace(in.NPWP)
	in.NIB = strings.TrimSpace(in.NIB)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// Validate runs every precondition check and collects all rejection reasons
func (s *CustomerService) Validate(ctx context.Context, input *CreateCustomerInput) error {
	var reasons []string

	if len(input.Name) < 3 {
		reasons = append(reasons, "name must be at least 3 characters")
	}
	if input.Code == "" {
		reasons = append(reasons, "code is required")
	}
	if !ValidNPWP(input.NPWP) {
		reasons = append(reasons, fmt.Sprintf("npwp %q does not match DD.DDD.DDD.D-DDD.DDD", input.NPWP))
	}
	if !ValidNIB(input.NIB) {
		reasons = append(reasons, fmt.Sprintf("nib %q must be exactly 13 digits", input.NIB))
	}
	if input.Phone != "" && !ValidPhone(input.Phone) {
		reasons = append(reasons, fmt.Sprintf("phone %q is not a valid mobile number", input.Phone))
	}
	if input.Email != "" && !ValidEmail(input.Email) {
		reasons = append(reasons, fmt.Sprintf("email %q is not valid", input.Email))
	}

	// Region consistency: regency must belong to the given province
	regency, err := s.regionRepo.GetRegency(ctx, input.RegencyID)
	if err != nil {
		reasons = append(reasons, fmt.Sprintf("regency %d not found", input.RegencyID))
	} else if regency.ProvinceID != input.ProvinceID {
		reasons = append(reasons, fmt.Sprintf("regency %d does not belong to province %d", input.RegencyID, input.ProvinceID))
	}

	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		reasons = append(reasons, fmt.Sprintf("owner user %d not found", input.UserID))
	}

	// Uniqueness checks hit storage directly
	if input.NPWP != "" {
		if exists, _ := s.customerRepo.ExistsByNPWP(ctx, input.NPWP); exists {
			reasons = append(reasons, ErrNPWPAlreadyExists.Error())
		}
	}
	if input.NIB != "" {
		if exists, _ := s.customerRepo.ExistsByNIB(ctx, input.NIB); exists {
			reasons = append(reasons, ErrNIBAlreadyExists.Error())
		}
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	return nil
}

// Create validates and persists a customer, then auto-creates its
// head-office branch through the branch service so the cascade fires
// exactly as it does for live requests.
func (s *CustomerService) Create(ctx context.Context, input *CreateCustomerInput) (*models.Customer, error) {
	input.Sanitize()

	if err := s.Validate(ctx, input); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Code:       input.Code,
		Name:       input.Name,
		NPWP:       input.NPWP,
		NIB:        input.NIB,
		Status:     models.CustomerStatusActive,
		ProvinceID: input.ProvinceID,
		RegencyID:  input.RegencyID,
		UserID:     input.UserID,
	}
	if input.ForceID != nil {
		customer.ID = *input.ForceID
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer %q: %w", input.Name, err)
	}

	// Cascade: every customer owns exactly one pusat branch
	branchInput := &CreateBranchInput{
		CustomerID: customer.ID,
		Code:       customer.Code + "-01",
		Name:       customer.Name + " Kantor Pusat",
		Type:       models.BranchTypePusat,
		Address:    input.Address,
		Phone:      input.Phone,
		Email:      input.Email,
		ProvinceID: input.ProvinceID,
		RegencyID:  input.RegencyID,
		UserID:     input.UserID,
		ForceID:    input.ForcePusatID,
	}
	if _, err := s.branchService.Create(ctx, branchInput); err != nil {
		return nil, fmt.Errorf("create pusat branch for customer %q: %w", input.Name, err)
	}

	return customer, nil
}

// GetByID gets a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFoundSvc
		}
		return nil, err
	}
	return customer, nil
}

// ListCustomersInput represents list customers input
type ListCustomersInput struct {
	Page  int
	Limit int
}

// ListCustomersOutput represents list customers output
type ListCustomersOutput struct {
	Customers  []*models.CustomerResponse `json:"customers"`
	Total      int64                      `json:"total"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
	TotalPages int                        `json:"total_pages"`
}

// List lists customers with pagination
func (s *CustomerService) List(ctx context.Context, input *ListCustomersInput) (*ListCustomersOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit

	customers, total, err := s.customerRepo.List(ctx, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.CustomerResponse, len(customers))
	for i, c := range customers {
		responses[i] = c.ToResponse()
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListCustomersOutput{
		Customers:  responses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// Delete removes a customer and cascades through its branches,
// employees, memberships and invoices. Branch removal goes through the
// branch service so the same hooks run as on single-branch deletion.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFoundSvc
		}
		return err
	}

	branches, err := s.branchService.ListByCustomer(ctx, id)
	if err != nil {
		return err
	}
	for _, branch := range branches {
		if err := s.branchService.Delete(ctx, branch.ID); err != nil {
			return fmt.Errorf("delete branch %d of customer %d: %w", branch.ID, id, err)
		}
	}

	if err := s.invoiceRepo.HardDeleteByCustomer(ctx, id); err != nil {
		return fmt.Errorf("delete invoices of customer %d: %w", id, err)
	}
	if err := s.membershipRepo.HardDeleteByCustomer(ctx, id); err != nil {
		return fmt.Errorf("delete memberships of customer %d: %w", id, err)
	}

	return s.customerRepo.HardDelete(ctx, id)
}
