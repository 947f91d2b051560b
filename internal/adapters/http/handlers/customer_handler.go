package handlers

import (
	"errors"
	"strconv"

	"kencana-crm/internal/core/services"
	"kencana-crm/internal/pkg/pagination"
	"kencana-crm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	customerService *services.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest represents create customer request body
type CreateCustomerRequest struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NPWP       string `json:"npwp"`
	NIB        string `json:"nib"`
	ProvinceID uint   `json:"province_id"`
	RegencyID  uint   `json:"regency_id"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// Create handles customer creation
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var req CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	input := &services.CreateCustomerInput{
		Code:       req.Code,
		Name:       req.Name,
		NPWP:       req.NPWP,
		NIB:        req.NIB,
		ProvinceID: req.ProvinceID,
		RegencyID:  req.RegencyID,
		UserID:     userID,
		Address:    req.Address,
		Phone:      req.Phone,
		Email:      req.Email,
	}

	customer, err := h.customerService.Create(c.Context(), input)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return response.ValidationFailed(c, verr.Reasons)
		}
		return response.InternalServerError(c, "Failed to create customer")
	}

	return response.Created(c, "Customer created", customer.ToResponse())
}

// Get handles fetching one customer
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid customer id")
	}

	customer, err := h.customerService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFoundSvc) {
			return response.NotFound(c, "Customer not found")
		}
		return response.InternalServerError(c, "Failed to fetch customer")
	}
	return response.Success(c, "", customer.ToResponse())
}

// List handles listing customers with pagination
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.customerService.List(c.Context(), &services.ListCustomersInput{
		Page:  params.Page,
		Limit: params.Limit,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to list customers")
	}

	return c.JSON(pagination.NewResponse(result.Customers, params, result.Total))
}

// Delete handles cascading customer deletion
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid customer id")
	}

	if err := h.customerService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrCustomerNotFoundSvc) {
			return response.NotFound(c, "Customer not found")
		}
		return response.InternalServerError(c, "Failed to delete customer")
	}
	return response.Success(c, "Customer deleted", nil)
}
