package services

import (
	"context"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/adapters/persistence/repositories"
)

// DashboardService aggregates entity counts for the admin dashboard
type DashboardService struct {
	customerRepo   repositories.CustomerRepository
	branchRepo     repositories.BranchRepository
	employeeRepo   repositories.EmployeeRepository
	membershipRepo repositories.MembershipRepository
	invoiceRepo    repositories.InvoiceRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	customerRepo repositories.CustomerRepository,
	branchRepo repositories.BranchRepository,
	employeeRepo repositories.EmployeeRepository,
	membershipRepo repositories.MembershipRepository,
	invoiceRepo repositories.InvoiceRepository,
) *DashboardService {
	return &DashboardService{
		customerRepo:   customerRepo,
		branchRepo:     branchRepo,
		employeeRepo:   employeeRepo,
		membershipRepo: membershipRepo,
		invoiceRepo:    invoiceRepo,
	}
}

// DashboardSummary represents the dashboard counters
type DashboardSummary struct {
	Customers       int64 `json:"customers"`
	Branches        int64 `json:"branches"`
	Employees       int64 `json:"employees"`
	Memberships     int64 `json:"memberships"`
	Invoices        int64 `json:"invoices"`
	PendingInvoices int64 `json:"pending_invoices"`
	PaidInvoices    int64 `json:"paid_invoices"`
	Payments        int64 `json:"payments"`
}

// GetSummary collects the entity counts in one pass
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}
	var err error

	if summary.Customers, err = s.customerRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.Branches, err = s.branchRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.Employees, err = s.employeeRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.Memberships, err = s.membershipRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.Invoices, err = s.invoiceRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.PendingInvoices, err = s.invoiceRepo.CountByStatus(ctx, models.InvoiceStatusPending); err != nil {
		return nil, err
	}
	if summary.PaidInvoices, err = s.invoiceRepo.CountByStatus(ctx, models.InvoiceStatusPaid); err != nil {
		return nil, err
	}
	if summary.Payments, err = s.invoiceRepo.CountPayments(ctx); err != nil {
		return nil, err
	}

	return summary, nil
}
