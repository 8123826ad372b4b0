package handler

import (
	billingapp "github.com/billcraft/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// Create creates a new invoice with an allocated number
func (h *InvoiceHandler) Create(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// CreateFromQuote converts an accepted quote into a draft invoice
func (h *InvoiceHandler) CreateFromQuote(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	quoteID, err := parseUUIDParam(c, "quote_id")
	if err != nil {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	invoice, err := h.invoiceService.CreateFromQuote(c.Request.Context(), companyID, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// List lists invoices with derived statuses
func (h *InvoiceHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	invoices, err := h.invoiceService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoices)
}

// Get retrieves a single invoice with its derived status
func (h *InvoiceHandler) Get(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Send transitions an invoice from draft to sent
func (h *InvoiceHandler) Send(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Send(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Cancel voids an unpaid invoice
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Cancel(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Delete deletes a draft invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), companyID, invoiceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Lines lists the lines of an invoice
func (h *InvoiceHandler) Lines(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	lines, err := h.invoiceService.Lines(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lines)
}

// AddLine appends a line to an invoice and recalculates its total
func (h *InvoiceHandler) AddLine(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req billingapp.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	line, err := h.invoiceService.AddLine(c.Request.Context(), companyID, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, line)
}

// RemoveLine deletes a line from an invoice and recalculates its total
func (h *InvoiceHandler) RemoveLine(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	lineID, err := parseUUIDParam(c, "line_id")
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	if err := h.invoiceService.RemoveLine(c.Request.Context(), companyID, invoiceID, lineID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Recalc recomputes the invoice total from its stored lines
func (h *InvoiceHandler) Recalc(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Recalc(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// SignedLink mints a time-limited public download link for an invoice
func (h *InvoiceHandler) SignedLink(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req billingapp.SignedLinkRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindingError(c, err)
			return
		}
	}

	link, err := h.invoiceService.IssueSignedLink(c.Request.Context(), companyID, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, link)
}
