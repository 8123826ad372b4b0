package persistence

import (
	"context"
	"errors"

	"github.com/billcraft/backend/internal/domain/billing"
	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/billcraft/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *billing.Client) error {
	var model models.ClientModel
	model.FromDomain(client)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByIDForCompany finds a client by ID within a company
func (r *GormClientRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany finds all clients for a company ordered by name
func (r *GormClientRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]billing.Client, error) {
	var clientModels []models.ClientModel
	query := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]billing.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return clients, nil
}

// HasDocuments reports whether any quote or invoice references the client
func (r *GormClientRepository) HasDocuments(ctx context.Context, companyID, clientID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.QuoteModel{}).
		Where("company_id = ? AND client_id = ?", companyID, clientID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("company_id = ? AND client_id = ?", companyID, clientID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete deletes a client within a company
func (r *GormClientRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormClientRepository implements ClientRepository
var _ billing.ClientRepository = (*GormClientRepository)(nil)
