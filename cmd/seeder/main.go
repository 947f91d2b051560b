package main

import (
	"context"
	"flag"
	"log"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/config"
	"kencana-crm/internal/demo"
)

// CLI entry for the demo-data pipeline. Runs the whole pipeline once,
// or a single named unit with -unit.
func main() {
	unit := flag.String("unit", "", "run only the named generator unit")
	clear := flag.Bool("clear", false, "remove existing demo data before generating")
	count := flag.Int("count", 0, "override DEMO_CUSTOMER_COUNT")
	seed := flag.Int64("seed", 0, "override DEMO_SEED (0 = from clock)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	if err := config.SeedMasterData(db); err != nil {
		log.Fatalf("❌ Failed to seed master data: %v", err)
	}

	demoCfg := cfg.Demo
	if *clear {
		demoCfg.ClearFirst = true
	}
	if *count > 0 {
		demoCfg.CustomerCount = *count
	}
	if *seed != 0 {
		demoCfg.Seed = *seed
	}

	orchestrator := demo.NewOrchestrator(db, demoCfg)

	ctx := context.Background()
	if *unit != "" {
		if err := orchestrator.RunUnit(ctx, *unit); err != nil {
			log.Fatalf("❌ %v", err)
		}
		return
	}

	if err := orchestrator.RunAll(ctx); err != nil {
		log.Fatalf("❌ %v", err)
	}

	state := orchestrator.State()
	log.Printf("🌱 Seeded %d customers, %d branches, %d employees, %d memberships, %d invoices",
		len(state.CustomerIDs),
		len(state.BranchIDs),
		len(state.EmployeeIDs),
		len(state.MembershipIDs),
		len(state.InvoiceIDs),
	)
}
