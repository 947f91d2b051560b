package demo

import (
	"context"
	"errors"
	"fmt"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/adapters/persistence/repositories"
	"kencana-crm/internal/core/services"

	"gorm.io/gorm"
)

// Replayer creates customers and branches by driving the same
// service-layer validate+create paths the live HTTP handlers use.
// Seeded rows therefore pass every validation rule real input would
// face, and creation side-effects (a customer auto-provisioning its
// head-office branch) fire exactly as in production. A validation
// rejection is a generator bug and is surfaced, never swallowed.
type Replayer struct {
	customerService *services.CustomerService
	branchService   *services.BranchService
}

// NewReplayer wires the production services over the given handle,
// which is expected to be the enclosing unit transaction.
func NewReplayer(db *gorm.DB) *Replayer {
	branchService := services.NewBranchService(
		repositories.NewBranchRepository(db),
		repositories.NewEmployeeRepository(db),
		repositories.NewRegionRepository(db),
	)
	customerService := services.NewCustomerService(
		repositories.NewCustomerRepository(db),
		repositories.NewRegionRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewMembershipRepository(db),
		repositories.NewInvoiceRepository(db),
		branchService,
	)
	return &Replayer{
		customerService: customerService,
		branchService:   branchService,
	}
}

// CreateCustomer replays the live customer-creation flow with forced
// keys for the customer and its cascaded head-office branch. Returns
// the forced customer key.
func (r *Replayer) CreateCustomer(ctx context.Context, input *services.CreateCustomerInput, customerID, pusatID uint) (uint, error) {
	input.ForceID = &customerID
	input.ForcePusatID = &pusatID

	customer, err := r.customerService.Create(ctx, input)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return 0, fmt.Errorf("customer %q rejected by live validation: %s", input.Name, verr.First())
		}
		return 0, err
	}
	return customer.ID, nil
}

// CreateBranch replays the live branch-creation flow. A nil forcedID
// means this branch carries no static-key requirement and the
// auto-increment key is accepted as-is.
func (r *Replayer) CreateBranch(ctx context.Context, input *services.CreateBranchInput, forcedID *uint) (*models.Branch, error) {
	input.ForceID = forcedID

	branch, err := r.branchService.Create(ctx, input)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return nil, fmt.Errorf("branch %q rejected by live validation: %s", input.Name, verr.First())
		}
		return nil, err
	}
	return branch, nil
}
