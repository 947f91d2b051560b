package handlers

import (
	"kencana-crm/internal/core/services"
	"kencana-crm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves aggregated dashboard counters
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary returns entity counts for the admin dashboard
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.dashboardService.GetSummary(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard summary")
	}
	return response.Success(c, "", summary)
}
