package repositories

import (
	"context"
	"time"

	"kencana-crm/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// invoiceRepository implements InvoiceRepository interface
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Create creates a new invoice
func (r *invoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if err := clearForcedID(r.db.WithContext(ctx), &models.Invoice{}, invoice.ID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(invoice).Error
}

// GetByID gets an invoice by ID
func (r *invoiceRepository) GetByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Preload("FromLevel").
		Preload("ToLevel").
		Where("id = ?", id).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetByNumber gets an invoice by its unique number
func (r *invoiceRepository) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).Where("invoice_number = ?", number).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListByCustomer lists invoices of a customer
func (r *invoiceRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Invoice, error) {
	var invoices []*models.Invoice
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&invoices).Error
	return invoices, err
}

// Update updates an invoice
func (r *invoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// HardDeleteByCustomer removes all invoices and their payments of a customer
func (r *invoiceRepository) HardDeleteByCustomer(ctx context.Context, customerID uint) error {
	sub := r.db.WithContext(ctx).Model(&models.Invoice{}).Select("id").Where("customer_id = ?", customerID)
	if err := r.db.WithContext(ctx).Unscoped().
		Where("invoice_id IN (?)", sub).
		Delete(&models.Payment{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Unscoped().Where("customer_id = ?", customerID).Delete(&models.Invoice{}).Error
}

// ExistsByNumber checks if an invoice number is taken (direct read)
func (r *invoiceRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("invoice_number = ?", number).Count(&count).Error
	return count > 0, err
}

// Count counts invoices
func (r *invoiceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).Count(&count).Error
	return count, err
}

// CountByStatus counts invoices in a given status
func (r *invoiceRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

// ListOverduePending lists pending invoices whose due date passed before the given time
func (r *invoiceRepository) ListOverduePending(ctx context.Context, before time.Time) ([]*models.Invoice, error) {
	var invoices []*models.Invoice
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", models.InvoiceStatusPending, before).
		Find(&invoices).Error
	return invoices, err
}

// CreatePayment creates a payment record
func (r *invoiceRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// GetPaymentByInvoice gets the payment of an invoice
func (r *invoiceRepository) GetPaymentByInvoice(ctx context.Context, invoiceID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// CountPayments counts payment records
func (r *invoiceRepository) CountPayments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).Count(&count).Error
	return count, err
}

// ExistsPaymentByNumber checks if a payment number is taken (direct read)
func (r *invoiceRepository) ExistsPaymentByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("payment_number = ?", number).Count(&count).Error
	return count > 0, err
}
