package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Membership service errors
var (
	ErrMembershipNotFoundSvc  = errors.New("membership not found")
	ErrLevelNotFoundSvc       = errors.New("membership level not found")
	ErrInvoiceNotFoundSvc     = errors.New("invoice not found")
	ErrInvoiceTerminal        = errors.New("invoice is already in a terminal status")
	ErrInvalidStatusTransit   = errors.New("invalid invoice status transition")
	ErrBranchAlreadyMember    = errors.New("branch already has a membership")
	ErrInvoiceNumberTaken     = errors.New("invoice number already in use")
	ErrPaymentNumberTaken     = errors.New("payment number already in use")
	ErrInvoiceAlreadyHasPayme = errors.New("invoice already has a payment")
)

// MembershipService handles membership, invoice and payment business
// logic. Invoices walk a fixed state machine:
//
//	pending -> pending_payment -> paid
//	pending -> cancelled
//
// paid and cancelled are terminal. A paid invoice carries exactly one
// payment record.
type MembershipService struct {
	membershipRepo repositories.MembershipRepository
	levelRepo      repositories.LevelRepository
	invoiceRepo    repositories.InvoiceRepository
	branchRepo     repositories.BranchRepository
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	membershipRepo repositories.MembershipRepository,
	levelRepo repositories.LevelRepository,
	invoiceRepo repositories.InvoiceRepository,
	branchRepo repositories.BranchRepository,
) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		levelRepo:      levelRepo,
		invoiceRepo:    invoiceRepo,
		branchRepo:     branchRepo,
	}
}

// ActivateInput represents membership activation input
type ActivateInput struct {
	CustomerID  uint      `json:"customer_id" validate:"required"`
	BranchID    uint      `json:"branch_id" validate:"required"`
	LevelID     uint      `json:"level_id" validate:"required"`
	PeriodStart time.Time `json:"period_start"`
	UseTrial    bool      `json:"use_trial"`
}

// Activate creates an active membership for a branch
func (s *MembershipService) Activate(ctx context.Context, input *ActivateInput) (*models.Membership, error) {
	branch, err := s.branchRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFoundSvc
		}
		return nil, err
	}
	if branch.CustomerID != input.CustomerID {
		return nil, &ValidationError{Reasons: []string{
			fmt.Sprintf("branch %d does not belong to customer %d", input.BranchID, input.CustomerID),
		}}
	}

	if existing, err := s.membershipRepo.GetByBranch(ctx, input.BranchID); err == nil && existing != nil {
		return nil, ErrBranchAlreadyMember
	}

	level, err := s.levelRepo.GetLevelByID(ctx, input.LevelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFoundSvc
		}
		return nil, err
	}

	start := input.PeriodStart
	if start.IsZero() {
		start = time.Now()
	}
	end := start.AddDate(1, 0, 0)
	if input.UseTrial && level.TrialDays > 0 {
		end = start.AddDate(0, 0, level.TrialDays)
	}

	membership := &models.Membership{
		CustomerID:  input.CustomerID,
		BranchID:    input.BranchID,
		LevelID:     level.ID,
		Status:      models.MembershipStatusActive,
		PeriodStart: start,
		PeriodEnd:   end,
		TrialUsed:   input.UseTrial && level.TrialDays > 0,
	}
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, fmt.Errorf("activate membership for branch %d: %w", input.BranchID, err)
	}
	return membership, nil
}

// IssueInvoiceInput represents invoice issuance input. ToLevelID is
// the level being billed for; FromLevelID records the level the
// membership held when the invoice was raised (nil for a first
// subscription). Both are snapshots so later level edits do not
// rewrite billing history.
type IssueInvoiceInput struct {
	InvoiceNumber string    `json:"invoice_number" validate:"required"`
	MembershipID  uint      `json:"membership_id" validate:"required"`
	ToLevelID     uint      `json:"to_level_id" validate:"required"`
	DueDate       time.Time `json:"due_date"`
	IssuedAt      time.Time `json:"issued_at"`
}

// IssueInvoice raises a pending invoice against a membership
func (s *MembershipService) IssueInvoice(ctx context.Context, input *IssueInvoiceInput) (*models.Invoice, error) {
	if !ValidInvoiceNumber(input.InvoiceNumber) {
		return nil, &ValidationError{Reasons: []string{
			fmt.Sprintf("invoice number %q does not match INV-YYYYMMDD-XXXXX", input.InvoiceNumber),
		}}
	}
	if taken, err := s.invoiceRepo.ExistsByNumber(ctx, input.InvoiceNumber); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrInvoiceNumberTaken
	}

	membership, err := s.membershipRepo.GetByID(ctx, input.MembershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFoundSvc
		}
		return nil, err
	}

	toLevel, err := s.levelRepo.GetLevelByID(ctx, input.ToLevelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFoundSvc
		}
		return nil, err
	}

	var fromLevelID *uint
	if membership.LevelID != toLevel.ID {
		id := membership.LevelID
		fromLevelID = &id
	}

	due := input.DueDate
	if due.IsZero() {
		due = time.Now().AddDate(0, 0, 14)
	}

	invoice := &models.Invoice{
		InvoiceNumber: input.InvoiceNumber,
		CustomerID:    membership.CustomerID,
		BranchID:      membership.BranchID,
		MembershipID:  membership.ID,
		FromLevelID:   fromLevelID,
		ToLevelID:     toLevel.ID,
		Amount:        toLevel.PricePerUnit,
		Status:        models.InvoiceStatusPending,
		DueDate:       due,
	}
	if !input.IssuedAt.IsZero() {
		invoice.CreatedAt = input.IssuedAt
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("issue invoice %s: %w", input.InvoiceNumber, err)
	}
	return invoice, nil
}

// RequestPayment moves a pending invoice into pending_payment
func (s *MembershipService) RequestPayment(ctx context.Context, invoiceID uint) (*models.Invoice, error) {
	invoice, err := s.getInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != models.InvoiceStatusPending {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransit, invoice.Status, models.InvoiceStatusPendingPayment)
	}
	invoice.Status = models.InvoiceStatusPendingPayment
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// PayInput represents invoice settlement input
type PayInput struct {
	InvoiceID     uint      `json:"invoice_id" validate:"required"`
	PaymentNumber string    `json:"payment_number" validate:"required"`
	Method        string    `json:"method" validate:"required"`
	PaidAt        time.Time `json:"paid_at"`
}

// Pay settles a pending_payment invoice, writes the single payment
// record and extends the membership period by one year from its
// current end.
func (s *MembershipService) Pay(ctx context.Context, input *PayInput) (*models.Payment, error) {
	invoice, err := s.getInvoice(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.IsTerminal() {
		return nil, ErrInvoiceTerminal
	}
	if invoice.Status != models.InvoiceStatusPendingPayment {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransit, invoice.Status, models.InvoiceStatusPaid)
	}

	if !ValidPaymentNumber(input.PaymentNumber) {
		return nil, &ValidationError{Reasons: []string{
			fmt.Sprintf("payment number %q does not match PAY-YYYYMMDD-XXXXX", input.PaymentNumber),
		}}
	}
	if taken, err := s.invoiceRepo.ExistsPaymentByNumber(ctx, input.PaymentNumber); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrPaymentNumberTaken
	}
	if _, err := s.invoiceRepo.GetPaymentByInvoice(ctx, invoice.ID); err == nil {
		return nil, ErrInvoiceAlreadyHasPayme
	}

	method := input.Method
	switch method {
	case models.PaymentMethodTransfer, models.PaymentMethodVirtualAcct, models.PaymentMethodCard:
	default:
		return nil, &ValidationError{Reasons: []string{fmt.Sprintf("unknown payment method %q", method)}}
	}

	paidAt := input.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	payment := &models.Payment{
		InvoiceID:     invoice.ID,
		PaymentNumber: input.PaymentNumber,
		Amount:        invoice.Amount,
		Method:        method,
		Reference:     uuid.NewString(),
		PaidAt:        paidAt,
	}
	if err := s.invoiceRepo.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("record payment %s: %w", input.PaymentNumber, err)
	}

	invoice.Status = models.InvoiceStatusPaid
	invoice.PaidAt = &paidAt
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	// Settlement applies the billed level and extends the period
	membership, err := s.membershipRepo.GetByID(ctx, invoice.MembershipID)
	if err == nil {
		membership.LevelID = invoice.ToLevelID
		membership.Status = models.MembershipStatusActive
		membership.PeriodEnd = membership.PeriodEnd.AddDate(1, 0, 0)
		if err := s.membershipRepo.Update(ctx, membership); err != nil {
			return nil, err
		}
	}

	return payment, nil
}

// Cancel voids a pending invoice
func (s *MembershipService) Cancel(ctx context.Context, invoiceID uint) (*models.Invoice, error) {
	invoice, err := s.getInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.IsTerminal() {
		return nil, ErrInvoiceTerminal
	}
	if invoice.Status != models.InvoiceStatusPending {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransit, invoice.Status, models.InvoiceStatusCancelled)
	}
	invoice.Status = models.InvoiceStatusCancelled
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ExpireOverdue cancels pending invoices past their due date and moves
// expired active memberships into grace or expired. Called from the
// daily cron job.
func (s *MembershipService) ExpireOverdue(ctx context.Context) (int, error) {
	now := time.Now()
	changed := 0

	overdue, err := s.invoiceRepo.ListOverduePending(ctx, now)
	if err != nil {
		return 0, err
	}
	for _, invoice := range overdue {
		invoice.Status = models.InvoiceStatusCancelled
		if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
			return changed, fmt.Errorf("cancel overdue invoice %s: %w", invoice.InvoiceNumber, err)
		}
		changed++
	}

	expired, err := s.membershipRepo.ListExpiredActive(ctx)
	if err != nil {
		return changed, err
	}
	for _, membership := range expired {
		level, err := s.levelRepo.GetLevelByID(ctx, membership.LevelID)
		grace := 7
		if err == nil {
			grace = level.GraceDays
		}
		if now.After(membership.PeriodEnd.AddDate(0, 0, grace)) {
			membership.Status = models.MembershipStatusExpired
		} else {
			membership.Status = models.MembershipStatusGrace
		}
		if err := s.membershipRepo.Update(ctx, membership); err != nil {
			return changed, fmt.Errorf("expire membership %d: %w", membership.ID, err)
		}
		changed++
	}

	return changed, nil
}

// GetByID gets a membership by ID
func (s *MembershipService) GetByID(ctx context.Context, id uint) (*models.Membership, error) {
	membership, err := s.membershipRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFoundSvc
		}
		return nil, err
	}
	return membership, nil
}

// ListByCustomer lists memberships of a customer
func (s *MembershipService) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Membership, error) {
	return s.membershipRepo.ListByCustomer(ctx, customerID)
}

// ListInvoicesByCustomer lists invoices of a customer
func (s *MembershipService) ListInvoicesByCustomer(ctx context.Context, customerID uint) ([]*models.Invoice, error) {
	return s.invoiceRepo.ListByCustomer(ctx, customerID)
}

func (s *MembershipService) getInvoice(ctx context.Context, id uint) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFoundSvc
		}
		return nil, err
	}
	return invoice, nil
}
