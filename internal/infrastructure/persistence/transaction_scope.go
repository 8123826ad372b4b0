package persistence

import (
	"context"

	appbilling "github.com/billcraft/backend/internal/application/billing"
	"github.com/billcraft/backend/internal/domain/billing"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Clients returns the client repository scoped to the current transaction
func (r *gormTransactionalRepositories) Clients() billing.ClientRepository {
	return NewGormClientRepository(r.tx)
}

// Quotes returns the quote repository scoped to the current transaction
func (r *gormTransactionalRepositories) Quotes() billing.QuoteRepository {
	return NewGormQuoteRepository(r.tx)
}

// Invoices returns the invoice repository scoped to the current transaction
func (r *gormTransactionalRepositories) Invoices() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// Sequences returns the sequence repository scoped to the current transaction
func (r *gormTransactionalRepositories) Sequences() billing.SequenceRepository {
	return NewGormSequenceRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appbilling.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appbilling.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
