package demo

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// unitTimeout bounds one unit's validate+generate pass. Generous on
// purpose: the employee fan-out is the only unit that comes anywhere
// near it.
const unitTimeout = 5 * time.Minute

// Unit is the per-entity-family generator contract.
//
// Validate is a read-only precondition check: required upstream rows
// present, configuration sane. It must query storage directly, never
// in-memory caches, so a fresh process facing a half-seeded database
// fails with an attributable reason. Failing validation is expected
// when units run out of order, not exceptional.
//
// Generate is the sole mutator. It must be safe to invoke again on a
// partially-seeded database: statically-keyed rows are detected as
// already correct or deleted and recreated, never silently duplicated.
type Unit interface {
	Name() string
	Validate(ctx context.Context, db *gorm.DB) error
	Generate(ctx context.Context, tx *gorm.DB) error
}

// Runner executes one unit inside a single transaction. This is the
// only place a unit failure turns into a rollback; callers treat the
// returned error as "stop the sequence".
type Runner struct {
	db *gorm.DB
}

// NewRunner creates a runner over the shared handle
func NewRunner(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

// Run validates and generates one unit transactionally. Any error
// rolls the transaction back and comes back tagged with the unit name.
func (r *Runner) Run(ctx context.Context, unit Unit) error {
	ctx, cancel := context.WithTimeout(ctx, unitTimeout)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := unit.Validate(ctx, tx); err != nil {
			return fmt.Errorf("precondition: %w", err)
		}
		return unit.Generate(ctx, tx)
	})
	if err != nil {
		log.Printf("❌ [%s] %v", unit.Name(), err)
		return fmt.Errorf("unit %s: %w", unit.Name(), err)
	}

	log.Printf("✅ [%s] generated", unit.Name())
	return nil
}
