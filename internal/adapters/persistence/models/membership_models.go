package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Membership Master Tables
// ============================================================

// MembershipLevel jenjang keanggotaan (Master)
type MembershipLevel struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Slug         string         `gorm:"size:30;uniqueIndex;not null" json:"slug"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	PricePerUnit float64        `gorm:"type:decimal(15,2);not null" json:"price_per_unit"`
	MaxBranches  int            `gorm:"default:1" json:"max_branches"`
	MaxEmployees int            `gorm:"default:5" json:"max_employees"`
	TrialDays    int            `gorm:"default:0" json:"trial_days"`
	GraceDays    int            `gorm:"default:7" json:"grace_days"`
	SortOrder    int            `gorm:"default:0" json:"sort_order"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MembershipLevel) TableName() string {
	return "membership_levels"
}

// MembershipFeatureGroup kelompok fitur (Master)
type MembershipFeatureGroup struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Slug      string         `gorm:"size:30;uniqueIndex;not null" json:"slug"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MembershipFeatureGroup) TableName() string {
	return "membership_feature_groups"
}

// MembershipFeature fitur dalam satu kelompok (Master)
type MembershipFeature struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	GroupID   uint           `gorm:"not null;index" json:"group_id"`
	Slug      string         `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Metadata  string         `gorm:"type:text" json:"metadata"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Group *MembershipFeatureGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

func (MembershipFeature) TableName() string {
	return "membership_features"
}

// ============================================================
// Membership / Invoice / Payment Tables
// ============================================================

// Membership keanggotaan aktif per cabang
type Membership struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CustomerID  uint           `gorm:"not null;index" json:"customer_id"`
	BranchID    uint           `gorm:"not null;index" json:"branch_id"`
	LevelID     uint           `gorm:"not null;index" json:"level_id"`
	Status      string         `gorm:"size:20;default:'active'" json:"status"`
	PeriodStart time.Time      `gorm:"not null" json:"period_start"`
	PeriodEnd   time.Time      `gorm:"not null" json:"period_end"`
	TrialUsed   bool           `gorm:"default:false" json:"trial_used"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Customer *Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Branch   *Branch          `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Level    *MembershipLevel `gorm:"foreignKey:LevelID" json:"level,omitempty"`
}

func (Membership) TableName() string {
	return "memberships"
}

// Membership statuses
const (
	MembershipStatusActive  = "active"
	MembershipStatusGrace   = "grace"
	MembershipStatusExpired = "expired"
)

// Invoice tagihan keanggotaan, menyimpan snapshot level asal/tujuan
type Invoice struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	InvoiceNumber string         `gorm:"size:30;uniqueIndex;not null" json:"invoice_number"`
	CustomerID    uint           `gorm:"not null;index" json:"customer_id"`
	BranchID      uint           `gorm:"not null;index" json:"branch_id"`
	MembershipID  uint           `gorm:"not null;index" json:"membership_id"`
	FromLevelID   *uint          `json:"from_level_id"`
	ToLevelID     uint           `gorm:"not null" json:"to_level_id"`
	Amount        float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status        string         `gorm:"size:20;not null;default:'pending'" json:"status"`
	DueDate       time.Time      `gorm:"not null" json:"due_date"`
	PaidAt        *time.Time     `json:"paid_at"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Customer   *Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Membership *Membership      `gorm:"foreignKey:MembershipID" json:"membership,omitempty"`
	FromLevel  *MembershipLevel `gorm:"foreignKey:FromLevelID" json:"from_level,omitempty"`
	ToLevel    *MembershipLevel `gorm:"foreignKey:ToLevelID" json:"to_level,omitempty"`
	Payments   []Payment        `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// Invoice statuses.
// pending -> pending_payment -> paid, or pending -> cancelled.
// paid and cancelled are terminal.
const (
	InvoiceStatusPending        = "pending"
	InvoiceStatusPendingPayment = "pending_payment"
	InvoiceStatusPaid           = "paid"
	InvoiceStatusCancelled      = "cancelled"
)

// IsTerminal reports whether the invoice can no longer change status
func (i *Invoice) IsTerminal() bool {
	return i.Status == InvoiceStatusPaid || i.Status == InvoiceStatusCancelled
}

// IsUpgrade reports whether the invoice records a level upgrade
func (i *Invoice) IsUpgrade() bool {
	return i.FromLevelID != nil && *i.FromLevelID != i.ToLevelID
}

// InvoiceResponse DTO
type InvoiceResponse struct {
	ID            uint       `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	CustomerID    uint       `json:"customer_id"`
	CustomerName  string     `json:"customer_name,omitempty"`
	MembershipID  uint       `json:"membership_id"`
	FromLevelName string     `json:"from_level_name,omitempty"`
	ToLevelName   string     `json:"to_level_name,omitempty"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	DueDate       time.Time  `json:"due_date"`
	PaidAt        *time.Time `json:"paid_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (i *Invoice) ToResponse() *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:            i.ID,
		InvoiceNumber: i.InvoiceNumber,
		CustomerID:    i.CustomerID,
		MembershipID:  i.MembershipID,
		Amount:        i.Amount,
		Status:        i.Status,
		DueDate:       i.DueDate,
		PaidAt:        i.PaidAt,
		CreatedAt:     i.CreatedAt,
	}

	if i.Customer != nil {
		resp.CustomerName = i.Customer.Name
	}
	if i.FromLevel != nil {
		resp.FromLevelName = i.FromLevel.Name
	}
	if i.ToLevel != nil {
		resp.ToLevelName = i.ToLevel.Name
	}

	return resp
}

// Payment pembayaran tagihan (satu per invoice lunas)
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	InvoiceID     uint      `gorm:"not null;uniqueIndex" json:"invoice_id"`
	PaymentNumber string    `gorm:"size:30;uniqueIndex;not null" json:"payment_number"`
	Amount        float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Method        string    `gorm:"size:30;not null" json:"method"`
	Reference     string    `gorm:"size:50" json:"reference"`
	PaidAt        time.Time `gorm:"not null" json:"paid_at"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	Invoice *Invoice `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// Payment methods
const (
	PaymentMethodTransfer    = "transfer"
	PaymentMethodVirtualAcct = "virtual_account"
	PaymentMethodCard        = "card"
)
