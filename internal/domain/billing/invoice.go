package billing

import (
	"fmt"
	"time"

	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle state of an invoice.
// Only draft, sent, partially_paid, paid and cancelled are ever persisted;
// overdue exists purely as a read-time derivation (see DeriveStatus).
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPartiallyPaid,
		InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanApplyPayment returns true if payments can be applied in this stored status
func (s InvoiceStatus) CanApplyPayment() bool {
	return s == InvoiceStatusSent || s == InvoiceStatusPartiallyPaid
}

// CanMutateLines returns true if invoice lines may be added or removed
func (s InvoiceStatus) CanMutateLines() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusSent
}

// Invoice represents a billable document derived from its lines.
// TotalCents is always the recalculated sum of line totals, never set by a caller.
type Invoice struct {
	shared.CompanyEntity
	ClientID      uuid.UUID     `json:"client_id"`
	Seq           int64         `json:"seq"`
	Number        string        `json:"number"`
	Title         string        `json:"title"`
	Currency      string        `json:"currency"`
	IssuedDate    *time.Time    `json:"issued_date,omitempty"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	Status        InvoiceStatus `json:"status"`
	TotalCents    int64         `json:"total_cents"`
	SourceQuoteID *uuid.UUID    `json:"source_quote_id,omitempty"`
}

// NewInvoice creates a new invoice in draft with an allocated number
func NewInvoice(companyID, clientID uuid.UUID, seq int64, number, title, currency string, issuedDate, dueDate *time.Time) (*Invoice, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "Company ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "Client ID cannot be empty")
	}
	if seq <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "Invoice sequence must be positive")
	}
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION", "Invoice number cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("VALIDATION", "Invoice title cannot be empty")
	}
	if currency == "" {
		currency = "EUR"
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("VALIDATION", "Currency must be a 3-letter code")
	}
	if issuedDate != nil && dueDate != nil && dueDate.Before(*issuedDate) {
		return nil, shared.NewDomainError("VALIDATION", "Due date cannot precede issued date")
	}
	return &Invoice{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		ClientID:      clientID,
		Seq:           seq,
		Number:        number,
		Title:         title,
		Currency:      currency,
		IssuedDate:    issuedDate,
		DueDate:       dueDate,
		Status:        InvoiceStatusDraft,
		TotalCents:    0,
	}, nil
}

// Send transitions the invoice from draft to sent
func (inv *Invoice) Send() error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send invoice in %s status", inv.Status))
	}
	inv.Status = InvoiceStatusSent
	return nil
}

// Cancel voids an unpaid invoice. Allowed from draft or sent with no payments applied.
func (inv *Invoice) Cancel(paidCents int64) error {
	if inv.Status != InvoiceStatusDraft && inv.Status != InvoiceStatusSent {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel invoice in %s status", inv.Status))
	}
	if paidCents > 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel an invoice with payments applied")
	}
	inv.Status = InvoiceStatusCancelled
	return nil
}

// MarkConverted stamps the quote this invoice was created from
func (inv *Invoice) MarkConverted(quoteID uuid.UUID) {
	inv.SourceQuoteID = &quoteID
}

// InvoiceLine represents one billed position on an invoice.
// LineTotalCents is computed once, at creation, with round-half-to-even;
// the invoice total is the plain sum of line totals and is never re-rounded.
type InvoiceLine struct {
	shared.BaseEntity
	InvoiceID      uuid.UUID       `json:"invoice_id"`
	Description    string          `json:"description"`
	Qty            decimal.Decimal `json:"qty"`
	UnitPriceCents int64           `json:"unit_price_cents"`
	LineTotalCents int64           `json:"line_total_cents"`
}

// NewInvoiceLine creates a new line with its total computed from qty and unit price
func NewInvoiceLine(invoiceID uuid.UUID, description string, qty decimal.Decimal, unitPriceCents int64) (*InvoiceLine, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "Invoice ID cannot be empty")
	}
	if description == "" {
		return nil, shared.NewDomainError("VALIDATION", "Line description cannot be empty")
	}
	if qty.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION", "Line quantity must be positive")
	}
	if unitPriceCents < 0 {
		return nil, shared.NewDomainError("VALIDATION", "Unit price cannot be negative")
	}
	return &InvoiceLine{
		BaseEntity:     shared.NewBaseEntity(),
		InvoiceID:      invoiceID,
		Description:    description,
		Qty:            qty,
		UnitPriceCents: unitPriceCents,
		LineTotalCents: LineTotal(qty, unitPriceCents),
	}, nil
}

// LineTotal computes qty x unit price in integer cents.
// Rounding is half-to-even, applied exactly once per line.
func LineTotal(qty decimal.Decimal, unitPriceCents int64) int64 {
	return qty.Mul(decimal.NewFromInt(unitPriceCents)).RoundBank(0).IntPart()
}

// Payment represents money received against an invoice. Immutable once created.
type Payment struct {
	shared.BaseEntity
	InvoiceID   uuid.UUID  `json:"invoice_id"`
	AmountCents int64      `json:"amount_cents"`
	Method      string     `json:"method,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	Note        string     `json:"note,omitempty"`
}

// NewPayment creates a new payment record
func NewPayment(invoiceID uuid.UUID, amountCents int64, method string, paidAt *time.Time, note string) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "Invoice ID cannot be empty")
	}
	if amountCents <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "Payment amount must be positive")
	}
	return &Payment{
		BaseEntity:  shared.NewBaseEntity(),
		InvoiceID:   invoiceID,
		AmountCents: amountCents,
		Method:      method,
		PaidAt:      paidAt,
		Note:        note,
	}, nil
}
