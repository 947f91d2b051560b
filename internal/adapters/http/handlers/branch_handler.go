package handlers

import (
	"errors"
	"strconv"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/core/services"
	"kencana-crm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BranchHandler handles branch endpoints
type BranchHandler struct {
	branchService *services.BranchService
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService *services.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// CreateBranchRequest represents create branch request body
type CreateBranchRequest struct {
	CustomerID  uint   `json:"customer_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	NITKU       string `json:"nitku"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	ProvinceID  uint   `json:"province_id"`
	RegencyID   uint   `json:"regency_id"`
	AgencyID    *uint  `json:"agency_id"`
	InspectorID *uint  `json:"inspector_id"`
}

// Create handles cabang branch creation. Pusat branches are only ever
// created through the customer cascade.
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var req CreateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	input := &services.CreateBranchInput{
		CustomerID:  req.CustomerID,
		Code:        req.Code,
		Name:        req.Name,
		Type:        models.BranchTypeCabang,
		NITKU:       req.NITKU,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		ProvinceID:  req.ProvinceID,
		RegencyID:   req.RegencyID,
		AgencyID:    req.AgencyID,
		InspectorID: req.InspectorID,
		UserID:      userID,
	}

	branch, err := h.branchService.Create(c.Context(), input)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return response.ValidationFailed(c, verr.Reasons)
		}
		return response.InternalServerError(c, "Failed to create branch")
	}

	return response.Created(c, "Branch created", branch.ToResponse())
}

// ListByCustomer lists all branches of a customer
func (h *BranchHandler) ListByCustomer(c *fiber.Ctx) error {
	customerID, err := strconv.ParseUint(c.Params("customerId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid customer id")
	}

	branches, err := h.branchService.ListByCustomer(c.Context(), uint(customerID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list branches")
	}

	out := make([]*models.BranchResponse, len(branches))
	for i, b := range branches {
		out[i] = b.ToResponse()
	}
	return response.Success(c, "", out)
}

// Delete removes a branch and its employees
func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid branch id")
	}

	if err := h.branchService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrBranchNotFoundSvc) {
			return response.NotFound(c, "Branch not found")
		}
		return response.InternalServerError(c, "Failed to delete branch")
	}
	return response.Success(c, "Branch deleted", nil)
}
