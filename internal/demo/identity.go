package demo

import (
	"context"
	"errors"
	"fmt"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/adapters/persistence/repositories"
	"kencana-crm/internal/core/services"
	"kencana-crm/internal/pkg/password"

	"gorm.io/gorm"
)

// IdentityEnsurer materializes owner accounts at exact primary keys.
// Accounts go through the standard user-creation path (password policy,
// default attributes) and are then moved to the desired key, never raw
// inserted. Every lookup is a direct storage read; nothing here may sit
// behind a cache that could report absence as existence or vice versa.
type IdentityEnsurer struct {
	db *gorm.DB
}

// NewIdentityEnsurer creates an ensurer over the given handle, which
// is expected to be the enclosing unit transaction.
func NewIdentityEnsurer(db *gorm.DB) *IdentityEnsurer {
	return &IdentityEnsurer{db: db}
}

// Ensure guarantees a demo owner account exists with exactly the
// desired key, username and display name.
//
//  1. Direct read by the desired key. If the row exists, reconcile the
//     display name and return it unchanged (idempotent rerun path).
//  2. If a different account occupies the desired username, delete it:
//     username uniqueness is enforced by the store independently of key
//     uniqueness, so the conflicting row blocks re-creation.
//  3. Create through the standard path (auto key), then reassign the
//     auto key to the desired one, rewriting back-references inside a
//     window with referential-integrity checks suspended.
//
// Created rows carry the demo marker so bulk cleanup can tell them
// apart from real accounts.
func (e *IdentityEnsurer) Ensure(ctx context.Context, desiredID uint, username, fullName string) (*models.User, error) {
	userRepo := repositories.NewUserRepository(e.db)

	// Step 1: already-correct path
	var existing models.User
	err := e.db.WithContext(ctx).Where("id = ?", desiredID).First(&existing).Error
	switch {
	case err == nil:
		if existing.FullName != fullName {
			existing.FullName = fullName
			if err := userRepo.Update(ctx, &existing); err != nil {
				return nil, fmt.Errorf("reconcile user id=%d name=%q: %w", desiredID, username, err)
			}
		}
		return &existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("look up user id=%d: %w", desiredID, err)
	}

	// Step 2: username held under a different key
	var conflict models.User
	err = e.db.WithContext(ctx).Where("username = ?", username).First(&conflict).Error
	switch {
	case err == nil:
		if err := userRepo.HardDelete(ctx, conflict.ID); err != nil {
			return nil, fmt.Errorf("remove conflicting user id=%d name=%q: %w", conflict.ID, username, err)
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("look up username %q: %w", username, err)
	}

	// Step 3: standard creation, then key reassignment
	pass, err := password.Random(16)
	if err != nil {
		return nil, fmt.Errorf("generate password for user id=%d name=%q: %w", desiredID, username, err)
	}

	userService := services.NewUserService(userRepo)
	user, err := userService.CreateUser(ctx, &services.CreateUserInput{
		Username: username,
		Email:    username + "@demo.kencana.co.id",
		Password: pass,
		FullName: fullName,
		Role:     models.RoleOwner,
		IsDemo:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("create user id=%d name=%q: %w", desiredID, username, err)
	}

	if user.ID != desiredID {
		if err := userRepo.ReassignID(ctx, user.ID, desiredID); err != nil {
			return nil, fmt.Errorf("reassign user %d -> %d name=%q: %w", user.ID, desiredID, username, err)
		}
		user.ID = desiredID
	}

	return user, nil
}
