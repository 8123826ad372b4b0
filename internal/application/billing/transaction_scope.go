package billing

import (
	"context"

	"github.com/billcraft/backend/internal/domain/billing"
)

// TransactionalRepositories provides repositories bound to one transaction.
// Everything obtained from it sees and writes the same uncommitted state.
type TransactionalRepositories interface {
	Clients() billing.ClientRepository
	Quotes() billing.QuoteRepository
	Invoices() billing.InvoiceRepository
	Sequences() billing.SequenceRepository
}

// TransactionScope executes a function atomically. Number allocation,
// conversion and payment application run inside a scope so their reads and
// writes commit or roll back together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}
