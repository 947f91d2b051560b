package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/adapters/persistence/repositories"
	"kencana-crm/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrUserNotFoundSvc    = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidRole        = errors.New("invalid role")
	ErrIDReassignConflict = errors.New("target user id already in use")
)

// UserService handles user account business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents create user input.
// IsDemo marks accounts created by fixture tooling so bulk cleanup can
// tell them apart from live accounts.
type CreateUserInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsDemo   bool   `json:"-"`
}

// CreateUser creates a new user account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	input.Username = strings.ToLower(strings.TrimSpace(input.Username))
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if len(input.Username) < 3 {
		return nil, &ValidationError{Reasons: []string{"username must be at least 3 characters"}}
	}
	if !ValidEmail(input.Email) {
		return nil, &ValidationError{Reasons: []string{fmt.Sprintf("email %q is not valid", input.Email)}}
	}
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}

	role := input.Role
	if role == "" {
		role = models.RoleStaff
	}
	switch role {
	case models.RoleAdmin, models.RoleOwner, models.RoleStaff:
	default:
		return nil, ErrInvalidRole
	}

	if taken, err := s.userRepo.ExistsByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.userRepo.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
		FullName: input.FullName,
		Role:     role,
		IsActive: true,
		IsDemo:   input.IsDemo,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user %q: %w", input.Username, err)
	}
	return user, nil
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFoundSvc
		}
		return nil, err
	}
	return user, nil
}

// GetByUsername gets a user by username
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFoundSvc
		}
		return nil, err
	}
	return user, nil
}

// ReassignID moves a user to a new primary key, rewriting every
// back-reference. Fails when the target key is already held by a
// different account.
func (s *UserService) ReassignID(ctx context.Context, fromID, toID uint) error {
	if fromID == toID {
		return nil
	}
	if _, err := s.userRepo.GetByID(ctx, fromID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFoundSvc
		}
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, toID); err == nil {
		return ErrIDReassignConflict
	}
	return s.userRepo.ReassignID(ctx, fromID, toID)
}

// Deactivate soft-disables a user account
func (s *UserService) Deactivate(ctx context.Context, id uint) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.IsActive = false
	return s.userRepo.Update(ctx, user)
}
