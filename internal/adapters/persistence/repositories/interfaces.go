package repositories

import (
	"context"
	"time"

	"kencana-crm/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	HardDelete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ReassignID(ctx context.Context, fromID, toID uint) error
	ListDemo(ctx context.Context) ([]*models.User, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// RegionRepository defines read access to region and agency master data
type RegionRepository interface {
	ListProvinces(ctx context.Context) ([]*models.Province, error)
	GetProvince(ctx context.Context, id uint) (*models.Province, error)
	ListRegenciesByProvince(ctx context.Context, provinceID uint) ([]*models.Regency, error)
	GetRegency(ctx context.Context, id uint) (*models.Regency, error)
	ListAgenciesByProvince(ctx context.Context, provinceID uint) ([]*models.Agency, error)
	GetAgency(ctx context.Context, id uint) (*models.Agency, error)
	ListInspectorsByAgency(ctx context.Context, agencyID uint) ([]*models.AgencyEmployee, error)
	GetAgencyEmployee(ctx context.Context, id uint) (*models.AgencyEmployee, error)
}

// CustomerRepository defines customer repository interface.
// Create honors a caller-set primary key: any existing row already
// holding that key is hard-deleted first so fixture inserts are
// repeatable.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByCode(ctx context.Context, code string) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	HardDelete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Customer, int64, error)
	ListByUserIDs(ctx context.Context, userIDs []uint) ([]*models.Customer, error)
	ExistsByNPWP(ctx context.Context, npwp string) (bool, error)
	ExistsByNIB(ctx context.Context, nib string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// BranchRepository defines branch repository interface
type BranchRepository interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetByID(ctx context.Context, id uint) (*models.Branch, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Branch, error)
	GetPusat(ctx context.Context, customerID uint) (*models.Branch, error)
	Update(ctx context.Context, branch *models.Branch) error
	HardDelete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByCustomer(ctx context.Context, customerID uint) (int64, error)
}

// EmployeeRepository defines employee repository interface
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	CreateBatch(ctx context.Context, employees []*models.Employee) error
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	ListByBranch(ctx context.Context, branchID uint) ([]*models.Employee, error)
	HardDeleteByBranch(ctx context.Context, branchID uint) error
	Count(ctx context.Context) (int64, error)
	CountByBranch(ctx context.Context, branchID uint) (int64, error)
}

// MembershipRepository defines membership repository interface
type MembershipRepository interface {
	Create(ctx context.Context, membership *models.Membership) error
	GetByID(ctx context.Context, id uint) (*models.Membership, error)
	GetByBranch(ctx context.Context, branchID uint) (*models.Membership, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Membership, error)
	List(ctx context.Context) ([]*models.Membership, error)
	Update(ctx context.Context, membership *models.Membership) error
	HardDeleteByCustomer(ctx context.Context, customerID uint) error
	Count(ctx context.Context) (int64, error)
	ListExpiredActive(ctx context.Context) ([]*models.Membership, error)
}

// LevelRepository defines membership level/feature master repository interface
type LevelRepository interface {
	CreateLevel(ctx context.Context, level *models.MembershipLevel) error
	GetLevelByID(ctx context.Context, id uint) (*models.MembershipLevel, error)
	GetLevelBySlug(ctx context.Context, slug string) (*models.MembershipLevel, error)
	ListLevels(ctx context.Context) ([]*models.MembershipLevel, error)
	UpdateLevel(ctx context.Context, level *models.MembershipLevel) error
	HardDeleteLevel(ctx context.Context, id uint) error
	CreateGroup(ctx context.Context, group *models.MembershipFeatureGroup) error
	GetGroupBySlug(ctx context.Context, slug string) (*models.MembershipFeatureGroup, error)
	ListGroups(ctx context.Context) ([]*models.MembershipFeatureGroup, error)
	HardDeleteGroup(ctx context.Context, id uint) error
	CreateFeature(ctx context.Context, feature *models.MembershipFeature) error
	GetFeatureBySlug(ctx context.Context, slug string) (*models.MembershipFeature, error)
	ListFeatures(ctx context.Context) ([]*models.MembershipFeature, error)
	HardDeleteFeature(ctx context.Context, id uint) error
}

// InvoiceRepository defines invoice/payment repository interface
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id uint) (*models.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*models.Invoice, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	HardDeleteByCustomer(ctx context.Context, customerID uint) error
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	ListOverduePending(ctx context.Context, before time.Time) ([]*models.Invoice, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByInvoice(ctx context.Context, invoiceID uint) (*models.Payment, error)
	CountPayments(ctx context.Context) (int64, error)
	ExistsPaymentByNumber(ctx context.Context, number string) (bool, error)
}
