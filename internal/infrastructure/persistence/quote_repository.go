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

// GormQuoteRepository implements QuoteRepository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// Save creates or updates a quote
func (r *GormQuoteRepository) Save(ctx context.Context, quote *billing.Quote) error {
	var model models.QuoteModel
	model.FromDomain(quote)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByIDForCompany finds a quote by ID within a company
func (r *GormQuoteRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.Quote, error) {
	return r.findOne(ctx, companyID, id, false)
}

// FindByIDForCompanyLocked finds a quote by ID within a company and takes a
// row lock for the duration of the surrounding transaction
func (r *GormQuoteRepository) FindByIDForCompanyLocked(ctx context.Context, companyID, id uuid.UUID) (*billing.Quote, error) {
	return r.findOne(ctx, companyID, id, true)
}

func (r *GormQuoteRepository) findOne(ctx context.Context, companyID, id uuid.UUID, locked bool) (*billing.Quote, error) {
	var model models.QuoteModel
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

// FindAllForCompany finds quotes for a company, newest first, optionally
// filtered by status
func (r *GormQuoteRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, status *billing.QuoteStatus, limit, offset int) ([]billing.Quote, error) {
	var quoteModels []models.QuoteModel
	query := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("seq DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&quoteModels).Error; err != nil {
		return nil, err
	}

	quotes := make([]billing.Quote, len(quoteModels))
	for i, model := range quoteModels {
		quotes[i] = *model.ToDomain()
	}
	return quotes, nil
}

// Delete deletes a quote within a company
func (r *GormQuoteRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.QuoteModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormQuoteRepository implements QuoteRepository
var _ billing.QuoteRepository = (*GormQuoteRepository)(nil)
