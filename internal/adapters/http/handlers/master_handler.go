package handlers

import (
	"strconv"

	"kencana-crm/internal/adapters/persistence/repositories"
	"kencana-crm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MasterHandler serves region/agency/level master data lookups
type MasterHandler struct {
	regionRepo repositories.RegionRepository
	levelRepo  repositories.LevelRepository
}

// NewMasterHandler creates a new master data handler
func NewMasterHandler(regionRepo repositories.RegionRepository, levelRepo repositories.LevelRepository) *MasterHandler {
	return &MasterHandler{regionRepo: regionRepo, levelRepo: levelRepo}
}

// ListProvinces lists all provinces
func (h *MasterHandler) ListProvinces(c *fiber.Ctx) error {
	provinces, err := h.regionRepo.ListProvinces(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list provinces")
	}
	return response.Success(c, "", provinces)
}

// ListRegencies lists regencies of a province
func (h *MasterHandler) ListRegencies(c *fiber.Ctx) error {
	provinceID, err := strconv.ParseUint(c.Params("provinceId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid province id")
	}

	regencies, err := h.regionRepo.ListRegenciesByProvince(c.Context(), uint(provinceID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list regencies")
	}
	return response.Success(c, "", regencies)
}

// ListAgencies lists agencies of a province
func (h *MasterHandler) ListAgencies(c *fiber.Ctx) error {
	provinceID, err := strconv.ParseUint(c.Params("provinceId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid province id")
	}

	agencies, err := h.regionRepo.ListAgenciesByProvince(c.Context(), uint(provinceID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list agencies")
	}
	return response.Success(c, "", agencies)
}

// ListInspectors lists inspectors of an agency
func (h *MasterHandler) ListInspectors(c *fiber.Ctx) error {
	agencyID, err := strconv.ParseUint(c.Params("agencyId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid agency id")
	}

	inspectors, err := h.regionRepo.ListInspectorsByAgency(c.Context(), uint(agencyID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list inspectors")
	}
	return response.Success(c, "", inspectors)
}

// ListLevels lists membership levels
func (h *MasterHandler) ListLevels(c *fiber.Ctx) error {
	levels, err := h.levelRepo.ListLevels(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list membership levels")
	}
	return response.Success(c, "", levels)
}
