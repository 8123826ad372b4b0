package models

import (
	"time"

	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// CompanyModelBase provides common persistence fields for company-scoped models
type CompanyModelBase struct {
	BaseModel
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// ToDomainCompanyEntity converts to domain CompanyEntity
func (m *CompanyModelBase) ToDomainCompanyEntity() shared.CompanyEntity {
	return shared.CompanyEntity{
		BaseEntity: m.BaseModel.ToDomain(),
		CompanyID:  m.CompanyID,
	}
}

// FromDomainCompanyEntity populates from domain CompanyEntity
func (m *CompanyModelBase) FromDomainCompanyEntity(e shared.CompanyEntity) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.CompanyID = e.CompanyID
}
