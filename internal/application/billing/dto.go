package billing

import (
	"time"

	"github.com/billcraft/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Client DTOs
// =============================================================================

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
	Phone string `json:"phone" binding:"max=50"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToClientResponse converts a domain client to a response DTO
func ToClientResponse(c *billing.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

// =============================================================================
// Quote DTOs
// =============================================================================

// CreateQuoteRequest represents a request to create a new quote.
// Status is optional; when set, the quote is created in draft and then
// walked through the regular transitions until it reaches that status.
type CreateQuoteRequest struct {
	ClientID    uuid.UUID `json:"client_id" binding:"required"`
	Title       string    `json:"title" binding:"required,min=1,max=500"`
	AmountCents int64     `json:"amount_cents" binding:"min=0"`
	Status      string    `json:"status" binding:"omitempty,oneof=draft sent accepted rejected"`
}

// QuoteListFilter represents filter options for the quote list
type QuoteListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=draft sent accepted rejected"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// QuoteResponse represents a quote in API responses
type QuoteResponse struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	ClientID    uuid.UUID `json:"client_id"`
	Number      string    `json:"number"`
	Title       string    `json:"title"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToQuoteResponse converts a domain quote to a response DTO
func ToQuoteResponse(q *billing.Quote) QuoteResponse {
	return QuoteResponse{
		ID:          q.ID,
		CompanyID:   q.CompanyID,
		ClientID:    q.ClientID,
		Number:      q.Number,
		Title:       q.Title,
		AmountCents: q.AmountCents,
		Status:      q.Status.String(),
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

// =============================================================================
// Invoice DTOs
// =============================================================================

// CreateInvoiceRequest represents a request to create a new invoice.
// Dates are calendar dates in YYYY-MM-DD form.
type CreateInvoiceRequest struct {
	ClientID   uuid.UUID `json:"client_id" binding:"required"`
	Title      string    `json:"title" binding:"required,min=1,max=500"`
	Currency   string    `json:"currency" binding:"omitempty,len=3"`
	IssuedDate string    `json:"issued_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate    string    `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// InvoiceResponse represents an invoice in API responses.
// Status is the derived status, never the raw stored one.
type InvoiceResponse struct {
	ID            uuid.UUID  `json:"id"`
	CompanyID     uuid.UUID  `json:"company_id"`
	ClientID      uuid.UUID  `json:"client_id"`
	Number        string     `json:"number"`
	Title         string     `json:"title"`
	Currency      string     `json:"currency"`
	IssuedDate    *string    `json:"issued_date,omitempty"`
	DueDate       *string    `json:"due_date,omitempty"`
	Status        string     `json:"status"`
	TotalCents    int64      `json:"total_cents"`
	PaidCents     int64      `json:"paid_cents"`
	SourceQuoteID *uuid.UUID `json:"source_quote_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice plus payment facts to a
// response DTO with the derived status
func ToInvoiceResponse(inv *billing.Invoice, paidCents int64, now time.Time) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		ClientID:      inv.ClientID,
		Number:        inv.Number,
		Title:         inv.Title,
		Currency:      inv.Currency,
		IssuedDate:    formatDate(inv.IssuedDate),
		DueDate:       formatDate(inv.DueDate),
		Status:        billing.DeriveStatus(inv.Status, inv.TotalCents, paidCents, inv.DueDate, now).String(),
		TotalCents:    inv.TotalCents,
		PaidCents:     paidCents,
		SourceQuoteID: inv.SourceQuoteID,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// =============================================================================
// Invoice line DTOs
// =============================================================================

// AddLineRequest represents a request to add a line to an invoice
type AddLineRequest struct {
	Description    string          `json:"description" binding:"required,min=1,max=500"`
	Qty            decimal.Decimal `json:"qty"`
	UnitPriceCents int64           `json:"unit_price_cents" binding:"min=0"`
}

// InvoiceLineResponse represents an invoice line in API responses
type InvoiceLineResponse struct {
	ID             uuid.UUID       `json:"id"`
	InvoiceID      uuid.UUID       `json:"invoice_id"`
	Description    string          `json:"description"`
	Qty            decimal.Decimal `json:"qty"`
	UnitPriceCents int64           `json:"unit_price_cents"`
	LineTotalCents int64           `json:"line_total_cents"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToInvoiceLineResponse converts a domain line to a response DTO
func ToInvoiceLineResponse(l *billing.InvoiceLine) InvoiceLineResponse {
	return InvoiceLineResponse{
		ID:             l.ID,
		InvoiceID:      l.InvoiceID,
		Description:    l.Description,
		Qty:            l.Qty,
		UnitPriceCents: l.UnitPriceCents,
		LineTotalCents: l.LineTotalCents,
		CreatedAt:      l.CreatedAt,
	}
}

// =============================================================================
// Payment DTOs
// =============================================================================

// ApplyPaymentRequest represents a request to record a payment
type ApplyPaymentRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Method      string `json:"method" binding:"max=50"`
	PaidAt      string `json:"paid_at" binding:"omitempty,datetime=2006-01-02"`
	Note        string `json:"note" binding:"max=500"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          uuid.UUID `json:"id"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method,omitempty"`
	PaidAt      *string   `json:"paid_at,omitempty"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		InvoiceID:   p.InvoiceID,
		AmountCents: p.AmountCents,
		Method:      p.Method,
		PaidAt:      formatDate(p.PaidAt),
		Note:        p.Note,
		CreatedAt:   p.CreatedAt,
	}
}

// =============================================================================
// Signed link DTOs
// =============================================================================

// SignedLinkRequest represents a request for a time-limited download link
type SignedLinkRequest struct {
	TTLSeconds int `json:"ttl_seconds" binding:"omitempty,min=1"`
}

// SignedLinkResponse carries the issued link
type SignedLinkResponse struct {
	URL       string    `json:"url"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
