package handler

import (
	"context"

	billingapp "github.com/billcraft/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuoteHandler handles quote-related API endpoints
type QuoteHandler struct {
	BaseHandler
	quoteService *billingapp.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *billingapp.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// Create creates a new quote with an allocated number
func (h *QuoteHandler) Create(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, quote)
}

// List lists quotes, optionally filtered by status
func (h *QuoteHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter billingapp.QuoteListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	quotes, err := h.quoteService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quotes)
}

// Get retrieves a single quote
func (h *QuoteHandler) Get(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	quoteID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetByID(c.Request.Context(), companyID, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}

// Send transitions a quote from draft to sent
func (h *QuoteHandler) Send(c *gin.Context) {
	h.transition(c, h.quoteService.Send)
}

// Accept transitions a quote from sent to accepted
func (h *QuoteHandler) Accept(c *gin.Context) {
	h.transition(c, h.quoteService.Accept)
}

// Reject transitions a quote from sent to rejected
func (h *QuoteHandler) Reject(c *gin.Context) {
	h.transition(c, h.quoteService.Reject)
}

func (h *QuoteHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID, uuid.UUID) (*billingapp.QuoteResponse, error)) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	quoteID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := fn(c.Request.Context(), companyID, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}

// Delete deletes a quote still in draft or sent
func (h *QuoteHandler) Delete(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	quoteID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	if err := h.quoteService.Delete(c.Request.Context(), companyID, quoteID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
