package demo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"kencana-crm/internal/config"

	"gorm.io/gorm"
)

// Orchestrator errors
var (
	ErrDemoDisabled = errors.New("demo generation is disabled")
	ErrUnknownUnit  = errors.New("unknown generator unit")
)

// State accumulates the primary keys each unit produced during one
// run. It is owned by the orchestrator and handed to units at
// construction; nothing here is global, so concurrent test runs with
// separate orchestrators cannot contaminate each other.
type State struct {
	CustomerIDs   []uint
	BranchIDs     []uint
	EmployeeIDs   []uint
	MembershipIDs []uint
	InvoiceIDs    []uint
}

// Orchestrator sequences the generator units in their fixed dependency
// order and owns every piece of cross-unit state: the uniqueness
// tracker, the run-scoped random source, the static identity map and
// the produced-key lists.
//
// The pipeline is a one-at-a-time administrative operation. Nothing
// here is safe to run concurrently with itself.
type Orchestrator struct {
	db      *gorm.DB
	cfg     config.DemoConfig
	runner  *Runner
	tracker *Tracker
	gen     *DataGen
	ids     *StaticIDs
	state   *State
}

// NewOrchestrator builds a pipeline over the given handle and config
func NewOrchestrator(db *gorm.DB, cfg config.DemoConfig) *Orchestrator {
	return &Orchestrator{
		db:      db,
		cfg:     cfg,
		runner:  NewRunner(db),
		tracker: NewTracker(),
		gen:     NewDataGen(cfg.Seed),
		ids:     NewStaticIDs(cfg.CustomerCount),
		state:   &State{},
	}
}

// Units returns the generator units in their fixed dependency order
func (o *Orchestrator) Units() []Unit {
	return []Unit{
		&LevelUnit{},
		&FeatureGroupUnit{},
		&FeatureUnit{},
		&CustomerUnit{ids: o.ids, tracker: o.tracker, gen: o.gen, state: o.state},
		&BranchUnit{gen: o.gen, tracker: o.tracker, state: o.state},
		&EmployeeUnit{
			gen:        o.gen,
			tracker:    o.tracker,
			state:      o.state,
			batchSize:  o.cfg.BatchSize,
			batchPause: time.Duration(o.cfg.BatchPauseMs) * time.Millisecond,
		},
		&MembershipUnit{gen: o.gen, state: o.state},
		&InvoiceUnit{
			gen:           o.gen,
			tracker:       o.tracker,
			state:         o.state,
			upgradeChance: o.cfg.UpgradeChance,
			paidChance:    o.cfg.PaidChance,
		},
	}
}

// RunAll executes the whole pipeline. When ClearFirst is set, cleanup
// runs and commits in its own transaction before any generation
// transaction opens, so a later rollback cannot resurrect deleted
// data. The first failing unit aborts the remaining sequence; already
// committed units stay committed.
func (o *Orchestrator) RunAll(ctx context.Context) error {
	if !o.cfg.Enabled {
		return ErrDemoDisabled
	}

	log.Printf("🌱 Demo pipeline starting (%d customers, clear=%v)", o.cfg.CustomerCount, o.cfg.ClearFirst)

	if o.cfg.ClearFirst {
		if err := NewCleanup(o.db).Run(ctx); err != nil {
			return fmt.Errorf("cleanup phase: %w", err)
		}
	}

	for _, unit := range o.Units() {
		if err := o.runner.Run(ctx, unit); err != nil {
			return err
		}
	}

	log.Println("✅ Demo pipeline finished")
	return nil
}

// RunUnit executes a single unit by name, for the administrative
// one-unit-at-a-time trigger. Cleanup is not run.
func (o *Orchestrator) RunUnit(ctx context.Context, name string) error {
	if !o.cfg.Enabled {
		return ErrDemoDisabled
	}

	for _, unit := range o.Units() {
		if unit.Name() == name {
			return o.runner.Run(ctx, unit)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}

// State exposes the produced-key lists of the current run
func (o *Orchestrator) State() *State {
	return o.state
}

// StaticIDs exposes the identity map for callers that need the forced
// keys (exported fixtures, tests)
func (o *Orchestrator) StaticIDs() *StaticIDs {
	return o.ids
}
