package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/billcraft/backend/internal/domain/billing"
	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// QuoteService handles quote-related business operations
type QuoteService struct {
	quoteRepo  billing.QuoteRepository
	clientRepo billing.ClientRepository
	txScope    TransactionScope
	now        func() time.Time
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(quoteRepo billing.QuoteRepository, clientRepo billing.ClientRepository, txScope TransactionScope) *QuoteService {
	return &QuoteService{
		quoteRepo:  quoteRepo,
		clientRepo: clientRepo,
		txScope:    txScope,
		now:        time.Now,
	}
}

// Create creates a new quote with a freshly allocated document number.
// Number allocation and the insert commit together.
func (s *QuoteService) Create(ctx context.Context, companyID uuid.UUID, req CreateQuoteRequest) (*QuoteResponse, error) {
	if _, err := s.clientRepo.FindByIDForCompany(ctx, companyID, req.ClientID); err != nil {
		return nil, err
	}

	var quote *billing.Quote
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		seq, err := repos.Sequences().Next(ctx, companyID, billing.SequenceKindQuote)
		if err != nil {
			return fmt.Errorf("failed to allocate quote number: %w", err)
		}

		number := billing.RenderNumber(billing.SequenceKindQuote, s.now().UTC().Year(), seq)
		quote, err = billing.NewQuote(companyID, req.ClientID, seq, number, req.Title, req.AmountCents)
		if err != nil {
			return err
		}

		if req.Status != "" {
			if err := advanceQuote(quote, billing.QuoteStatus(req.Status)); err != nil {
				return err
			}
		}

		return repos.Quotes().Save(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// advanceQuote walks a fresh draft through the regular transitions until it
// reaches target, so a quote created directly as accepted or rejected still
// passes through sent.
func advanceQuote(quote *billing.Quote, target billing.QuoteStatus) error {
	switch target {
	case billing.QuoteStatusDraft:
		return nil
	case billing.QuoteStatusSent:
		return quote.Send()
	case billing.QuoteStatusAccepted:
		if err := quote.Send(); err != nil {
			return err
		}
		return quote.Accept()
	case billing.QuoteStatusRejected:
		if err := quote.Send(); err != nil {
			return err
		}
		return quote.Reject()
	default:
		return shared.NewDomainErrorf("VALIDATION", "Invalid quote status %q", target)
	}
}

// GetByID retrieves a quote by ID
func (s *QuoteService) GetByID(ctx context.Context, companyID, quoteID uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// List retrieves quotes for a company, optionally filtered by status
func (s *QuoteService) List(ctx context.Context, companyID uuid.UUID, filter QuoteListFilter) ([]QuoteResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	var status *billing.QuoteStatus
	if filter.Status != "" {
		st := billing.QuoteStatus(filter.Status)
		if !st.IsValid() {
			return nil, shared.NewDomainErrorf("VALIDATION", "Invalid quote status %q", filter.Status)
		}
		status = &st
	}

	quotes, err := s.quoteRepo.FindAllForCompany(ctx, companyID, status, filter.PageSize, (filter.Page-1)*filter.PageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		responses[i] = ToQuoteResponse(&quotes[i])
	}
	return responses, nil
}

// Send transitions a quote from draft to sent
func (s *QuoteService) Send(ctx context.Context, companyID, quoteID uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, companyID, quoteID, (*billing.Quote).Send)
}

// Accept transitions a quote from sent to accepted
func (s *QuoteService) Accept(ctx context.Context, companyID, quoteID uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, companyID, quoteID, (*billing.Quote).Accept)
}

// Reject transitions a quote from sent to rejected
func (s *QuoteService) Reject(ctx context.Context, companyID, quoteID uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, companyID, quoteID, (*billing.Quote).Reject)
}

func (s *QuoteService) transition(ctx context.Context, companyID, quoteID uuid.UUID, fn func(*billing.Quote) error) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}

	if err := fn(quote); err != nil {
		return nil, err
	}

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Delete deletes a quote still in draft or sent. The status check and the
// delete share a transaction with the row locked, so a transition committing
// in between cannot slip a no-longer-deletable quote past the check.
func (s *QuoteService) Delete(ctx context.Context, companyID, quoteID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		quote, err := repos.Quotes().FindByIDForCompanyLocked(ctx, companyID, quoteID)
		if err != nil {
			return err
		}

		if !quote.Status.CanDelete() {
			return shared.NewDomainErrorf("INVALID_STATE", "Cannot delete quote in %s status", quote.Status)
		}

		return repos.Quotes().Delete(ctx, companyID, quoteID)
	})
}
