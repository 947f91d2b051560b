package handlers

import (
	"errors"
	"strconv"
	"time"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/core/services"
	"kencana-crm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MembershipHandler handles membership and invoice endpoints
type MembershipHandler struct {
	membershipService *services.MembershipService
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(membershipService *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// ActivateRequest represents membership activation request body
type ActivateRequest struct {
	CustomerID uint `json:"customer_id"`
	BranchID   uint `json:"branch_id"`
	LevelID    uint `json:"level_id"`
	UseTrial   bool `json:"use_trial"`
}

// Activate handles membership activation
func (h *MembershipHandler) Activate(c *fiber.Ctx) error {
	var req ActivateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	membership, err := h.membershipService.Activate(c.Context(), &services.ActivateInput{
		CustomerID: req.CustomerID,
		BranchID:   req.BranchID,
		LevelID:    req.LevelID,
		UseTrial:   req.UseTrial,
	})
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			return response.ValidationFailed(c, verr.Reasons)
		case errors.Is(err, services.ErrBranchAlreadyMember):
			return response.Conflict(c, "Branch already has a membership")
		case errors.Is(err, services.ErrLevelNotFoundSvc):
			return response.NotFound(c, "Membership level not found")
		case errors.Is(err, services.ErrBranchNotFoundSvc):
			return response.NotFound(c, "Branch not found")
		default:
			return response.InternalServerError(c, "Failed to activate membership")
		}
	}

	return response.Created(c, "Membership activated", membership)
}

// IssueInvoiceRequest represents invoice issuance request body
type IssueInvoiceRequest struct {
	InvoiceNumber string `json:"invoice_number"`
	MembershipID  uint   `json:"membership_id"`
	ToLevelID     uint   `json:"to_level_id"`
	DueDate       string `json:"due_date"`
}

// IssueInvoice handles invoice issuance
func (h *MembershipHandler) IssueInvoice(c *fiber.Ctx) error {
	var req IssueInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.IssueInvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		MembershipID:  req.MembershipID,
		ToLevelID:     req.ToLevelID,
	}
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return response.BadRequest(c, "Invalid due_date, use YYYY-MM-DD")
		}
		input.DueDate = due
	}

	invoice, err := h.membershipService.IssueInvoice(c.Context(), input)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			return response.ValidationFailed(c, verr.Reasons)
		case errors.Is(err, services.ErrInvoiceNumberTaken):
			return response.Conflict(c, "Invoice number already in use")
		case errors.Is(err, services.ErrMembershipNotFoundSvc):
			return response.NotFound(c, "Membership not found")
		case errors.Is(err, services.ErrLevelNotFoundSvc):
			return response.NotFound(c, "Membership level not found")
		default:
			return response.InternalServerError(c, "Failed to issue invoice")
		}
	}

	return response.Created(c, "Invoice issued", invoice.ToResponse())
}

// RequestPayment moves an invoice into pending_payment
func (h *MembershipHandler) RequestPayment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid invoice id")
	}

	invoice, err := h.membershipService.RequestPayment(c.Context(), uint(id))
	if err != nil {
		return h.invoiceError(c, err)
	}
	return response.Success(c, "Payment requested", invoice.ToResponse())
}

// PayRequest represents invoice settlement request body
type PayRequest struct {
	PaymentNumber string `json:"payment_number"`
	Method        string `json:"method"`
}

// Pay settles an invoice
func (h *MembershipHandler) Pay(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid invoice id")
	}

	var req PayRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Method == "" {
		req.Method = models.PaymentMethodTransfer
	}

	payment, err := h.membershipService.Pay(c.Context(), &services.PayInput{
		InvoiceID:     uint(id),
		PaymentNumber: req.PaymentNumber,
		Method:        req.Method,
	})
	if err != nil {
		return h.invoiceError(c, err)
	}
	return response.Success(c, "Invoice paid", payment)
}

// Cancel voids a pending invoice
func (h *MembershipHandler) Cancel(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid invoice id")
	}

	invoice, err := h.membershipService.Cancel(c.Context(), uint(id))
	if err != nil {
		return h.invoiceError(c, err)
	}
	return response.Success(c, "Invoice cancelled", invoice.ToResponse())
}

// ListInvoices lists invoices of a customer
func (h *MembershipHandler) ListInvoices(c *fiber.Ctx) error {
	customerID, err := strconv.ParseUint(c.Params("customerId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid customer id")
	}

	invoices, err := h.membershipService.ListInvoicesByCustomer(c.Context(), uint(customerID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list invoices")
	}

	out := make([]*models.InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		out[i] = inv.ToResponse()
	}
	return response.Success(c, "", out)
}

func (h *MembershipHandler) invoiceError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return response.ValidationFailed(c, verr.Reasons)
	case errors.Is(err, services.ErrInvoiceNotFoundSvc):
		return response.NotFound(c, "Invoice not found")
	case errors.Is(err, services.ErrInvoiceTerminal),
		errors.Is(err, services.ErrInvalidStatusTransit):
		return response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPaymentNumberTaken),
		errors.Is(err, services.ErrInvoiceAlreadyHasPayme):
		return response.Conflict(c, err.Error())
	default:
		return response.InternalServerError(c, "Invoice operation failed")
	}
}
