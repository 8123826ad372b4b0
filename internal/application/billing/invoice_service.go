package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/billcraft/backend/internal/domain/billing"
	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/billcraft/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SignedLinkIssuer mints time-limited download tokens for invoices
type SignedLinkIssuer interface {
	Issue(invoiceID, companyID uuid.UUID, ttl time.Duration) (*auth.SignedLink, error)
	DefaultTTL() time.Duration
}

// InvoiceService handles invoice-related business operations: creation,
// lifecycle transitions, line mutation, total recalculation, quote conversion
// and signed download links.
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	clientRepo  billing.ClientRepository
	txScope     TransactionScope
	links       SignedLinkIssuer
	now         func() time.Time
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, clientRepo billing.ClientRepository, txScope TransactionScope, links SignedLinkIssuer) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		txScope:     txScope,
		links:       links,
		now:         time.Now,
	}
}

// Create creates a new invoice with a freshly allocated document number
func (s *InvoiceService) Create(ctx context.Context, companyID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if _, err := s.clientRepo.FindByIDForCompany(ctx, companyID, req.ClientID); err != nil {
		return nil, err
	}

	issuedDate, err := parseDate(req.IssuedDate, "issued_date")
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(req.DueDate, "due_date")
	if err != nil {
		return nil, err
	}

	var invoice *billing.Invoice
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		seq, err := repos.Sequences().Next(ctx, companyID, billing.SequenceKindInvoice)
		if err != nil {
			return fmt.Errorf("failed to allocate invoice number: %w", err)
		}

		number := billing.RenderNumber(billing.SequenceKindInvoice, s.now().UTC().Year(), seq)
		invoice, err = billing.NewInvoice(companyID, req.ClientID, seq, number, req.Title, req.Currency, issuedDate, dueDate)
		if err != nil {
			return err
		}

		return repos.Invoices().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice, 0, s.now())
	return &response, nil
}

// GetByID retrieves an invoice with its derived status
func (s *InvoiceService) GetByID(ctx context.Context, companyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForCompany(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	paid, err := s.invoiceRepo.PaymentSum(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice, paid, s.now())
	return &response, nil
}

// List retrieves invoices for a company with derived statuses
func (s *InvoiceService) List(ctx context.Context, companyID uuid.UUID, filter InvoiceListFilter) ([]InvoiceResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	invoices, err := s.invoiceRepo.FindAllForCompany(ctx, companyID, filter.PageSize, (filter.Page-1)*filter.PageSize)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		paid, err := s.invoiceRepo.PaymentSum(ctx, invoices[i].ID)
		if err != nil {
			return nil, err
		}
		responses[i] = ToInvoiceResponse(&invoices[i], paid, now)
	}
	return responses, nil
}

// Send transitions an invoice from draft to sent
func (s *InvoiceService) Send(ctx context.Context, companyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForCompany(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.Send(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	paid, err := s.invoiceRepo.PaymentSum(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice, paid, s.now())
	return &response, nil
}

// Cancel voids an unpaid invoice. The payment check and the status write
// happen under a row lock so a concurrent payment cannot slip in between.
func (s *InvoiceService) Cancel(ctx context.Context, companyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	var invoice *billing.Invoice
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		invoice, err = repos.Invoices().FindByIDForCompanyLocked(ctx, companyID, invoiceID)
		if err != nil {
			return err
		}

		paid, err := repos.Invoices().PaymentSum(ctx, invoice.ID)
		if err != nil {
			return err
		}

		if err := invoice.Cancel(paid); err != nil {
			return err
		}

		return repos.Invoices().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice, 0, s.now())
	return &response, nil
}

// Delete deletes an invoice still in draft. Runs under a row lock in one
// transaction so the status check holds through the delete and the invoice
// row and its lines go together or not at all.
func (s *InvoiceService) Delete(ctx context.Context, companyID, invoiceID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.Invoices().FindByIDForCompanyLocked(ctx, companyID, invoiceID)
		if err != nil {
			return err
		}

		if invoice.Status != billing.InvoiceStatusDraft {
			return shared.NewDomainErrorf("INVALID_STATE", "Cannot delete invoice in %s status", invoice.Status)
		}

		return repos.Invoices().Delete(ctx, companyID, invoiceID)
	})
}

// Lines retrieves the lines of an invoice
func (s *InvoiceService) Lines(ctx context.Context, companyID, invoiceID uuid.UUID) ([]InvoiceLineResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForCompany(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	lines, err := s.invoiceRepo.Lines(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToInvoiceLineResponse(&lines[i])
	}
	return responses, nil
}

// AddLine appends a line to an invoice and recalculates its total
func (s *InvoiceService) AddLine(ctx context.Context, companyID, invoiceID uuid.UUID, req AddLineRequest) (*InvoiceLineResponse, error) {
	var line *billing.InvoiceLine
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.Invoices().FindByIDForCompanyLocked(ctx, companyID, invoiceID)
		if err != nil {
			return err
		}

		if !invoice.Status.CanMutateLines() {
			return shared.NewDomainErrorf("INVALID_STATE", "Cannot modify lines of invoice in %s status", invoice.Status)
		}

		line, err = billing.NewInvoiceLine(invoice.ID, req.Description, req.Qty, req.UnitPriceCents)
		if err != nil {
			return err
		}

		if err := repos.Invoices().AddLine(ctx, line); err != nil {
			return err
		}

		return s.recalcLocked(ctx, repos, invoice)
	})
	if err != nil {
		return nil, err
	}

	response := ToInvoiceLineResponse(line)
	return &response, nil
}

// RemoveLine deletes a line from an invoice and recalculates its total
func (s *InvoiceService) RemoveLine(ctx context.Context, companyID, invoiceID, lineID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.Invoices().FindByIDForCompanyLocked(ctx, companyID, invoiceID)
		if err != nil {
			return err
		}

		if !invoice.Status.CanMutateLines() {
			return shared.NewDomainErrorf("INVALID_STATE", "Cannot modify lines of invoice in %s status", invoice.Status)
		}

		if err := repos.Invoices().RemoveLine(ctx, invoice.ID, lineID); err != nil {
			return err
		}

		return s.recalcLocked(ctx, repos, invoice)
	})
}

// Recalc recomputes the invoice total from its stored line totals and
// re-derives the stored status. Idempotent.
func (s *InvoiceService) Recalc(ctx context.Context, companyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	var invoice *billing.Invoice
	var paid int64
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		invoice, err = repos.Invoices().FindByIDForCompanyLocked(ctx, companyID, invoiceID)
		if err != nil {
			return err
		}

		if err := s.recalcLocked(ctx, repos, invoice); err != nil {
			return err
		}

		paid, err = repos.Invoices().PaymentSum(ctx, invoice.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice, paid, s.now())
	return &response, nil
}

// recalcLocked recomputes the total and stored status of an already locked
// invoice. Line totals are summed as stored; no re-rounding happens here.
func (s *InvoiceService) recalcLocked(ctx context.Context, repos TransactionalRepositories, invoice *billing.Invoice) error {
	lines, err := repos.Invoices().Lines(ctx, invoice.ID)
	if err != nil {
		return err
	}

	var total int64
	for i := range lines {
		total += lines[i].LineTotalCents
	}
	invoice.TotalCents = total

	paid, err := repos.Invoices().PaymentSum(ctx, invoice.ID)
	if err != nil {
		return err
	}

	invoice.Status = billing.StoredStatus(
		billing.DeriveStatus(invoice.Status, invoice.TotalCents, paid, invoice.DueDate, s.now()))

	return repos.Invoices().Save(ctx, invoice)
}

// CreateFromQuote converts an accepted quote into a draft invoice carrying a
// single line priced at the quote amount. A quote converts at most once.
func (s *InvoiceService) CreateFromQuote(ctx context.Context, companyID, quoteID uuid.UUID) (*InvoiceResponse, error) {
	var invoice *billing.Invoice
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		quote, err := repos.Quotes().FindByIDForCompany(ctx, companyID, quoteID)
		if err != nil {
			return err
		}

		if !quote.CanConvert() {
			return shared.NewDomainErrorf("INVALID_STATE", "Cannot convert quote in %s status", quote.Status)
		}

		if _, err := repos.Invoices().FindBySourceQuote(ctx, companyID, quote.ID); err == nil {
			return shared.NewDomainError("INVALID_STATE", "Quote has already been converted")
		} else if !shared.IsNotFound(err) {
			return err
		}

		seq, err := repos.Sequences().Next(ctx, companyID, billing.SequenceKindInvoice)
		if err != nil {
			return fmt.Errorf("failed to allocate invoice number: %w", err)
		}

		number := billing.RenderNumber(billing.SequenceKindInvoice, s.now().UTC().Year(), seq)
		invoice, err = billing.NewInvoice(companyID, quote.ClientID, seq, number, quote.Title, "", nil, nil)
		if err != nil {
			return err
		}
		invoice.MarkConverted(quote.ID)

		// The unique index on source_quote_id backs this up under races.
		if err := repos.Invoices().Save(ctx, invoice); err != nil {
			return err
		}

		line, err := billing.NewInvoiceLine(invoice.ID, quote.Title, decimal.NewFromInt(1), quote.AmountCents)
		if err != nil {
			return err
		}
		if err := repos.Invoices().AddLine(ctx, line); err != nil {
			return err
		}

		return s.recalcLocked(ctx, repos, invoice)
	})
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice, 0, s.now())
	return &response, nil
}

// IssueSignedLink mints a time-limited public download link for an invoice
func (s *InvoiceService) IssueSignedLink(ctx context.Context, companyID, invoiceID uuid.UUID, req SignedLinkRequest) (*SignedLinkResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForCompany(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	ttl := s.links.DefaultTTL()
	if req.TTLSeconds > 0 {
		ttl = time.Duration(req.TTLSeconds) * time.Second
	}

	link, err := s.links.Issue(invoice.ID, companyID, ttl)
	if err != nil {
		return nil, err
	}

	return &SignedLinkResponse{
		URL:       fmt.Sprintf("/api/v1/invoices/public/%s/download.pdf?token=%s", invoice.ID, link.Token),
		Token:     link.Token,
		ExpiresAt: link.ExpiresAt,
	}, nil
}

func parseDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, shared.NewDomainErrorf("VALIDATION", "Invalid %s, expected YYYY-MM-DD", field)
	}
	return &t, nil
}
