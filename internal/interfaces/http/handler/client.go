package handler

import (
	billingapp "github.com/billcraft/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// ClientHandler handles client-related API endpoints
type ClientHandler struct {
	BaseHandler
	clientService *billingapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *billingapp.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// Create creates a new client
func (h *ClientHandler) Create(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, client)
}

// List lists the company's clients
func (h *ClientHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var pag paginationQuery
	if err := c.ShouldBindQuery(&pag); err != nil {
		h.BindingError(c, err)
		return
	}

	clients, err := h.clientService.List(c.Request.Context(), companyID, pag.Page, pag.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, clients)
}

// Get retrieves a single client
func (h *ClientHandler) Get(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), companyID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Delete deletes a client with no documents
func (h *ClientHandler) Delete(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), companyID, clientID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// paginationQuery holds common page/page_size query parameters
type paginationQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}
