package billing

import (
	"context"
	"sync"
	"time"

	"github.com/billcraft/backend/internal/domain/billing"
	"github.com/billcraft/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockClientRepository is a mock implementation of billing.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Save(ctx context.Context, client *billing.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.Client, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]billing.Client, error) {
	args := m.Called(ctx, companyID, limit, offset)
	return args.Get(0).([]billing.Client), args.Error(1)
}

func (m *MockClientRepository) HasDocuments(ctx context.Context, companyID, clientID uuid.UUID) (bool, error) {
	args := m.Called(ctx, companyID, clientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

// MockQuoteRepository is a mock implementation of billing.QuoteRepository
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Save(ctx context.Context, quote *billing.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.Quote, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindByIDForCompanyLocked(ctx context.Context, companyID, id uuid.UUID) (*billing.Quote, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, status *billing.QuoteStatus, limit, offset int) ([]billing.Quote, error) {
	args := m.Called(ctx, companyID, status, limit, offset)
	return args.Get(0).([]billing.Quote), args.Error(1)
}

func (m *MockQuoteRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForCompanyLocked(ctx context.Context, companyID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]billing.Invoice, error) {
	args := m.Called(ctx, companyID, limit, offset)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindBySourceQuote(ctx context.Context, companyID, quoteID uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, companyID, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Lines(ctx context.Context, invoiceID uuid.UUID) ([]billing.InvoiceLine, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]billing.InvoiceLine), args.Error(1)
}

func (m *MockInvoiceRepository) AddLine(ctx context.Context, line *billing.InvoiceLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockInvoiceRepository) RemoveLine(ctx context.Context, invoiceID, lineID uuid.UUID) error {
	args := m.Called(ctx, invoiceID, lineID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Payments(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockInvoiceRepository) AddPayment(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockInvoiceRepository) PaymentSum(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSequenceRepository is a mock implementation of billing.SequenceRepository
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) Next(ctx context.Context, companyID uuid.UUID, kind billing.SequenceKind) (int64, error) {
	args := m.Called(ctx, companyID, kind)
	return args.Get(0).(int64), args.Error(1)
}

// countingSequenceRepository hands out strictly increasing values per
// (company, kind), mimicking the atomic upsert.
type countingSequenceRepository struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newCountingSequenceRepository() *countingSequenceRepository {
	return &countingSequenceRepository{counts: make(map[string]int64)}
}

func (r *countingSequenceRepository) Next(ctx context.Context, companyID uuid.UUID, kind billing.SequenceKind) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := companyID.String() + ":" + string(kind)
	r.counts[key]++
	return r.counts[key], nil
}

// fakeTxScope passes the configured repositories straight through without a
// real transaction.
type fakeTxScope struct {
	clients   billing.ClientRepository
	quotes    billing.QuoteRepository
	invoices  billing.InvoiceRepository
	sequences billing.SequenceRepository
}

func (s *fakeTxScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *fakeTxScope) Clients() billing.ClientRepository      { return s.clients }
func (s *fakeTxScope) Quotes() billing.QuoteRepository        { return s.quotes }
func (s *fakeTxScope) Invoices() billing.InvoiceRepository    { return s.invoices }
func (s *fakeTxScope) Sequences() billing.SequenceRepository  { return s.sequences }

// stubLinkIssuer is a deterministic SignedLinkIssuer for service tests
type stubLinkIssuer struct {
	token      string
	defaultTTL time.Duration
	issuedTTL  time.Duration
}

func (s *stubLinkIssuer) Issue(invoiceID, companyID uuid.UUID, ttl time.Duration) (*auth.SignedLink, error) {
	s.issuedTTL = ttl
	return &auth.SignedLink{Token: s.token, ExpiresAt: time.Now().Add(ttl)}, nil
}

func (s *stubLinkIssuer) DefaultTTL() time.Duration {
	return s.defaultTTL
}
