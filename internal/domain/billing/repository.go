package billing

import (
	"context"

	"github.com/google/uuid"
)

// ClientRepository defines persistence operations for clients.
// Every lookup is company-scoped; a cross-company miss is shared.ErrNotFound.
type ClientRepository interface {
	Save(ctx context.Context, client *Client) error
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Client, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]Client, error)
	// HasDocuments reports whether any quote or invoice references the client.
	HasDocuments(ctx context.Context, companyID, clientID uuid.UUID) (bool, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

// QuoteRepository defines persistence operations for quotes
type QuoteRepository interface {
	Save(ctx context.Context, quote *Quote) error
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Quote, error)
	// FindByIDForCompanyLocked loads the quote with a row lock so that the
	// deletability check and the delete commit against the same status.
	FindByIDForCompanyLocked(ctx context.Context, companyID, id uuid.UUID) (*Quote, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, status *QuoteStatus, limit, offset int) ([]Quote, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

// InvoiceRepository defines persistence operations for invoices, their lines
// and payments. Lines and payments are children of the invoice aggregate and
// are only reached through a company-scoped invoice.
type InvoiceRepository interface {
	Save(ctx context.Context, invoice *Invoice) error
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Invoice, error)
	// FindByIDForCompanyLocked loads the invoice with a row lock so that
	// concurrent payment application and recalculation serialize.
	FindByIDForCompanyLocked(ctx context.Context, companyID, id uuid.UUID) (*Invoice, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]Invoice, error)
	// FindBySourceQuote returns the invoice converted from the given quote,
	// or shared.ErrNotFound if the quote has not been converted.
	FindBySourceQuote(ctx context.Context, companyID, quoteID uuid.UUID) (*Invoice, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error

	Lines(ctx context.Context, invoiceID uuid.UUID) ([]InvoiceLine, error)
	AddLine(ctx context.Context, line *InvoiceLine) error
	RemoveLine(ctx context.Context, invoiceID, lineID uuid.UUID) error

	Payments(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)
	AddPayment(ctx context.Context, payment *Payment) error
	PaymentSum(ctx context.Context, invoiceID uuid.UUID) (int64, error)
}

// SequenceRepository allocates strictly increasing per-company document
// numbers. Next is atomic: two concurrent calls for the same (company, kind)
// never return the same value.
type SequenceRepository interface {
	Next(ctx context.Context, companyID uuid.UUID, kind SequenceKind) (int64, error)
}
