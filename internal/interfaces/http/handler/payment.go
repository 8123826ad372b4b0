package handler

import (
	billingapp "github.com/billcraft/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment-related API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Apply records a payment against an invoice
func (h *PaymentHandler) Apply(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseUUIDParam(c, "invoice_id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req billingapp.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	payment, err := h.paymentService.Apply(c.Request.Context(), companyID, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// List lists the payments recorded against an invoice
func (h *PaymentHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseUUIDParam(c, "invoice_id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	payments, err := h.paymentService.List(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}
