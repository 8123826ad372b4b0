package persistence

import (
	"context"
	"errors"

	"github.com/billcraft/backend/internal/domain/billing"
	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/billcraft/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(invoice)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByIDForCompany finds an invoice by ID within a company
func (r *GormInvoiceRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.Invoice, error) {
	return r.findOne(ctx, companyID, id, false)
}

// FindByIDForCompanyLocked finds an invoice by ID within a company and takes
// a row lock for the duration of the surrounding transaction. Payment
// application and total recalculation go through this so they serialize.
func (r *GormInvoiceRepository) FindByIDForCompanyLocked(ctx context.Context, companyID, id uuid.UUID) (*billing.Invoice, error) {
	return r.findOne(ctx, companyID, id, true)
}

func (r *GormInvoiceRepository) findOne(ctx context.Context, companyID, id uuid.UUID, locked bool) (*billing.Invoice, error) {
	var model models.InvoiceModel
	query := r.db.WithContext(ctx)
	if locked {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany finds invoices for a company, newest first
func (r *GormInvoiceRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("seq DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// FindBySourceQuote returns the invoice converted from the given quote
func (r *GormInvoiceRepository) FindBySourceQuote(ctx context.Context, companyID, quoteID uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND source_quote_id = ?", companyID, quoteID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Delete deletes an invoice within a company along with its lines. Callers
// run this inside a transaction scope so the two statements commit together.
// Payments block deletion at the service layer before this is reached.
func (r *GormInvoiceRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return r.db.WithContext(ctx).Delete(&models.InvoiceLineModel{}, "invoice_id = ?", id).Error
}

// Lines returns the invoice lines in insertion order
func (r *GormInvoiceRepository) Lines(ctx context.Context, invoiceID uuid.UUID) ([]billing.InvoiceLine, error) {
	var lineModels []models.InvoiceLineModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&lineModels).Error; err != nil {
		return nil, err
	}

	lines := make([]billing.InvoiceLine, len(lineModels))
	for i, model := range lineModels {
		lines[i] = *model.ToDomain()
	}
	return lines, nil
}

// AddLine persists a new invoice line
func (r *GormInvoiceRepository) AddLine(ctx context.Context, line *billing.InvoiceLine) error {
	var model models.InvoiceLineModel
	model.FromDomain(line)
	return r.db.WithContext(ctx).Create(&model).Error
}

// RemoveLine deletes an invoice line
func (r *GormInvoiceRepository) RemoveLine(ctx context.Context, invoiceID, lineID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceLineModel{}, "invoice_id = ? AND id = ?", invoiceID, lineID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Payments returns the payments recorded against an invoice, oldest first
func (r *GormInvoiceRepository) Payments(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]billing.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// AddPayment persists a new payment
func (r *GormInvoiceRepository) AddPayment(ctx context.Context, payment *billing.Payment) error {
	var model models.PaymentModel
	model.FromDomain(payment)
	return r.db.WithContext(ctx).Create(&model).Error
}

// PaymentSum returns the total paid amount for an invoice in cents
func (r *GormInvoiceRepository) PaymentSum(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	var sum int64
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
