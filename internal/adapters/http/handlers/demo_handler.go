package handlers

import (
	"errors"

	"kencana-crm/internal/config"
	"kencana-crm/internal/demo"
	"kencana-crm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DemoHandler exposes the demo-data pipeline as an administrative
// trigger. Failures come back as a boolean plus a message, never a
// stack trace.
type DemoHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewDemoHandler creates a new demo handler
func NewDemoHandler(db *gorm.DB, cfg *config.Config) *DemoHandler {
	return &DemoHandler{db: db, cfg: cfg}
}

// Run executes the full pipeline. A fresh orchestrator per request
// keeps all run state request-scoped.
func (h *DemoHandler) Run(c *fiber.Ctx) error {
	orchestrator := demo.NewOrchestrator(h.db, h.cfg.Demo)

	if err := orchestrator.RunAll(c.Context()); err != nil {
		if errors.Is(err, demo.ErrDemoDisabled) {
			return response.Forbidden(c, "Demo generation is disabled")
		}
		// Operator sees a message, not a stack trace
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	state := orchestrator.State()
	return response.Success(c, "Demo data generated", fiber.Map{
		"success":     true,
		"customers":   len(state.CustomerIDs),
		"branches":    len(state.BranchIDs),
		"employees":   len(state.EmployeeIDs),
		"memberships": len(state.MembershipIDs),
		"invoices":    len(state.InvoiceIDs),
	})
}

// RunUnit executes a single named unit
func (h *DemoHandler) RunUnit(c *fiber.Ctx) error {
	name := c.Params("unit")

	orchestrator := demo.NewOrchestrator(h.db, h.cfg.Demo)
	if err := orchestrator.RunUnit(c.Context(), name); err != nil {
		switch {
		case errors.Is(err, demo.ErrDemoDisabled):
			return response.Forbidden(c, "Demo generation is disabled")
		case errors.Is(err, demo.ErrUnknownUnit):
			return response.NotFound(c, "Unknown generator unit: "+name)
		default:
			return response.Error(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	return response.Success(c, "Unit generated", fiber.Map{
		"success": true,
		"unit":    name,
	})
}
