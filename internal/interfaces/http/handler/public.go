package handler

import (
	"fmt"
	"net/http"

	billingapp "github.com/billcraft/backend/internal/application/billing"
	"github.com/billcraft/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated signed-link surface. The token is
// the only credential; identity middleware never runs here.
type PublicHandler struct {
	BaseHandler
	links          *auth.SignedLinkService
	invoiceService *billingapp.InvoiceService
	renderer       billingapp.DocumentRenderer
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(links *auth.SignedLinkService, invoiceService *billingapp.InvoiceService, renderer billingapp.DocumentRenderer) *PublicHandler {
	return &PublicHandler{
		links:          links,
		invoiceService: invoiceService,
		renderer:       renderer,
	}
}

// Download verifies a signed link and streams the rendered invoice document.
// Verification failures and expiry are both 401; an invoice deleted after
// the link was minted is 404.
func (h *PublicHandler) Download(c *gin.Context) {
	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	token := c.Query("token")
	if token == "" {
		h.Unauthorized(c, "Missing token")
		return
	}

	claims, err := h.links.Verify(invoiceID, token)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	companyID, err := claims.CompanyUUID()
	if err != nil {
		h.Unauthorized(c, "Invalid token")
		return
	}

	doc, err := h.invoiceService.Document(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	payload, contentType, err := h.renderer.Render(doc)
	if err != nil {
		h.InternalError(c, "Failed to render invoice")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Invoice.Number+".html"))
	c.Data(http.StatusOK, contentType, payload)
}
