package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table (admin/owner/staff accounts)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	FullName  string         `gorm:"size:100" json:"full_name"`
	Role      string         `gorm:"size:20;default:'STAFF'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	IsDemo    bool           `gorm:"default:false;index" json:"is_demo"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// User roles
const (
	RoleAdmin = "ADMIN"
	RoleOwner = "OWNER"
	RoleStaff = "STAFF"
)

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Region & Agency Master Tables (read-mostly)
// ============================================================

// Province wilayah tingkat provinsi (Master)
type Province struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:10;uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Province) TableName() string {
	return "provinces"
}

// Regency kabupaten/kota, milik satu provinsi (Master)
type Regency struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProvinceID uint      `gorm:"not null;index" json:"province_id"`
	Code       string    `gorm:"size:10;uniqueIndex;not null" json:"code"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Province *Province `gorm:"foreignKey:ProvinceID" json:"province,omitempty"`
}

func (Regency) TableName() string {
	return "regencies"
}

// Agency instansi pengawas per provinsi (Master)
type Agency struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProvinceID uint      `gorm:"not null;index" json:"province_id"`
	Code       string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name       string    `gorm:"size:150;not null" json:"name"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Province *Province `gorm:"foreignKey:ProvinceID" json:"province,omitempty"`
}

func (Agency) TableName() string {
	return "agencies"
}

// AgencyEmployee staf instansi; inspektur dapat ditugaskan ke cabang
type AgencyEmployee struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AgencyID    uint      `gorm:"not null;index" json:"agency_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	NIP         string    `gorm:"column:nip;size:30;uniqueIndex" json:"nip"`
	IsInspector bool      `gorm:"default:false" json:"is_inspector"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Agency *Agency `gorm:"foreignKey:AgencyID" json:"agency,omitempty"`
}

func (AgencyEmployee) TableName() string {
	return "agency_employees"
}

// ============================================================
// Customer / Branch / Employee Tables
// ============================================================

// Customer perusahaan pelanggan (tabel utama)
type Customer struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Code       string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name       string         `gorm:"size:150;not null" json:"name"`
	NPWP       string         `gorm:"size:25;uniqueIndex;not null" json:"npwp"`
	NIB        string         `gorm:"size:13;uniqueIndex;not null" json:"nib"`
	Status     string         `gorm:"size:20;default:'active'" json:"status"`
	ProvinceID uint           `gorm:"not null;index" json:"province_id"`
	RegencyID  uint           `gorm:"not null;index" json:"regency_id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner    *User     `gorm:"foreignKey:UserID" json:"owner,omitempty"`
	Province *Province `gorm:"foreignKey:ProvinceID" json:"province,omitempty"`
	Regency  *Regency  `gorm:"foreignKey:RegencyID" json:"regency,omitempty"`
	Branches []Branch  `gorm:"foreignKey:CustomerID" json:"branches,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}

// Customer statuses
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
)

// CustomerResponse DTO
type CustomerResponse struct {
	ID           uint      `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	NPWP         string    `json:"npwp"`
	NIB          string    `json:"nib"`
	Status       string    `json:"status"`
	ProvinceID   uint      `json:"province_id"`
	ProvinceName string    `json:"province_name,omitempty"`
	RegencyID    uint      `json:"regency_id"`
	RegencyName  string    `json:"regency_name,omitempty"`
	OwnerID      uint      `json:"owner_id"`
	OwnerName    string    `json:"owner_name,omitempty"`
	BranchCount  int       `json:"branch_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *Customer) ToResponse() *CustomerResponse {
	resp := &CustomerResponse{
		ID:         c.ID,
		Code:       c.Code,
		Name:       c.Name,
		NPWP:       c.NPWP,
		NIB:        c.NIB,
		Status:     c.Status,
		ProvinceID: c.ProvinceID,
		RegencyID:  c.RegencyID,
		OwnerID:    c.UserID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}

	if c.Owner != nil {
		resp.OwnerName = c.Owner.Username
	}
	if c.Province != nil {
		resp.ProvinceName = c.Province.Name
	}
	if c.Regency != nil {
		resp.RegencyName = c.Regency.Name
	}
	if len(c.Branches) > 0 {
		resp.BranchCount = len(c.Branches)
	}

	return resp
}

// Branch kantor pusat/cabang milik customer
type Branch struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CustomerID  uint           `gorm:"not null;index" json:"customer_id"`
	Code        string         `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	Type        string         `gorm:"size:10;not null" json:"type"`
	NITKU       string         `gorm:"size:30" json:"nitku"`
	Address     string         `gorm:"type:text" json:"address"`
	Phone       string         `gorm:"size:20" json:"phone"`
	Email       string         `gorm:"size:100" json:"email"`
	ProvinceID  uint           `gorm:"not null;index" json:"province_id"`
	RegencyID   uint           `gorm:"not null;index" json:"regency_id"`
	AgencyID    *uint          `gorm:"index" json:"agency_id"`
	InspectorID *uint          `gorm:"index" json:"inspector_id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Status      string         `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Customer  *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Province  *Province       `gorm:"foreignKey:ProvinceID" json:"province,omitempty"`
	Regency   *Regency        `gorm:"foreignKey:RegencyID" json:"regency,omitempty"`
	Agency    *Agency         `gorm:"foreignKey:AgencyID" json:"agency,omitempty"`
	Inspector *AgencyEmployee `gorm:"foreignKey:InspectorID" json:"inspector,omitempty"`
	Employees []Employee      `gorm:"foreignKey:BranchID" json:"employees,omitempty"`
}

func (Branch) TableName() string {
	return "branches"
}

// Branch types
const (
	BranchTypePusat  = "pusat"
	BranchTypeCabang = "cabang"
)

// BranchResponse DTO
type BranchResponse struct {
	ID            uint      `json:"id"`
	CustomerID    uint      `json:"customer_id"`
	CustomerName  string    `json:"customer_name,omitempty"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	NITKU         string    `json:"nitku"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	ProvinceID    uint      `json:"province_id"`
	RegencyID     uint      `json:"regency_id"`
	AgencyID      *uint     `json:"agency_id"`
	AgencyName    string    `json:"agency_name,omitempty"`
	InspectorID   *uint     `json:"inspector_id"`
	InspectorName string    `json:"inspector_name,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (b *Branch) ToResponse() *BranchResponse {
	resp := &BranchResponse{
		ID:          b.ID,
		CustomerID:  b.CustomerID,
		Code:        b.Code,
		Name:        b.Name,
		Type:        b.Type,
		NITKU:       b.NITKU,
		Address:     b.Address,
		Phone:       b.Phone,
		Email:       b.Email,
		ProvinceID:  b.ProvinceID,
		RegencyID:   b.RegencyID,
		AgencyID:    b.AgencyID,
		InspectorID: b.InspectorID,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}

	if b.Customer != nil {
		resp.CustomerName = b.Customer.Name
	}
	if b.Agency != nil {
		resp.AgencyName = b.Agency.Name
	}
	if b.Inspector != nil {
		resp.InspectorName = b.Inspector.Name
	}

	return resp
}

// Employee karyawan pada satu cabang
type Employee struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CustomerID uint           `gorm:"not null;index" json:"customer_id"`
	BranchID   uint           `gorm:"not null;index" json:"branch_id"`
	UserID     *uint          `gorm:"index" json:"user_id"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	Email      string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone      string         `gorm:"size:20" json:"phone"`
	Position   string         `gorm:"size:50" json:"position"`
	Finance    bool           `gorm:"default:false" json:"finance"`
	Operation  bool           `gorm:"default:false" json:"operation"`
	Legal      bool           `gorm:"default:false" json:"legal"`
	Purchase   bool           `gorm:"default:false" json:"purchase"`
	Status     string         `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Branch   *Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (Employee) TableName() string {
	return "employees"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&User{},
		&RefreshToken{},
		// Region & agency master
		&Province{},
		&Regency{},
		&Agency{},
		&AgencyEmployee{},
		// Membership master
		&MembershipLevel{},
		&MembershipFeatureGroup{},
		&MembershipFeature{},
		// Business tables
		&Customer{},
		&Branch{},
		&Employee{},
		&Membership{},
		&Invoice{},
		&Payment{},
	)
}
