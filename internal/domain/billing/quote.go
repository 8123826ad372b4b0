package billing

import (
	"fmt"

	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// QuoteStatus represents the lifecycle state of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// IsValid checks if the status is a valid QuoteStatus
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of QuoteStatus
func (s QuoteStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are allowed
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusAccepted || s == QuoteStatusRejected
}

// CanDelete returns true if a quote in this status may be deleted
func (s QuoteStatus) CanDelete() bool {
	return s == QuoteStatusDraft || s == QuoteStatusSent
}

// Quote represents a priced proposal sent to a client.
// The sequential number is assigned once at creation and never changes.
type Quote struct {
	shared.CompanyEntity
	ClientID    uuid.UUID   `json:"client_id"`
	Seq         int64       `json:"seq"`
	Number      string      `json:"number"`
	Title       string      `json:"title"`
	AmountCents int64       `json:"amount_cents"`
	Status      QuoteStatus `json:"status"`
}

// NewQuote creates a new quote in draft with an allocated number
func NewQuote(companyID, clientID uuid.UUID, seq int64, number, title string, amountCents int64) (*Quote, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "Company ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "Client ID cannot be empty")
	}
	if seq <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "Quote sequence must be positive")
	}
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION", "Quote number cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("VALIDATION", "Quote title cannot be empty")
	}
	if amountCents < 0 {
		return nil, shared.NewDomainError("VALIDATION", "Quote amount cannot be negative")
	}
	return &Quote{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		ClientID:      clientID,
		Seq:           seq,
		Number:        number,
		Title:         title,
		AmountCents:   amountCents,
		Status:        QuoteStatusDraft,
	}, nil
}

// Send transitions the quote from draft to sent
func (q *Quote) Send() error {
	if q.Status != QuoteStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send quote in %s status", q.Status))
	}
	q.Status = QuoteStatusSent
	return nil
}

// Accept transitions the quote from sent to accepted
func (q *Quote) Accept() error {
	if q.Status != QuoteStatusSent {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot accept quote in %s status", q.Status))
	}
	q.Status = QuoteStatusAccepted
	return nil
}

// Reject transitions the quote from sent to rejected
func (q *Quote) Reject() error {
	if q.Status != QuoteStatusSent {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject quote in %s status", q.Status))
	}
	q.Status = QuoteStatusRejected
	return nil
}

// CanConvert returns true if the quote may be converted into an invoice
func (q *Quote) CanConvert() bool {
	return q.Status == QuoteStatusAccepted
}
