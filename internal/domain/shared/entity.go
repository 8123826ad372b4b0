package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CompanyEntity extends BaseEntity with company (tenant) scoping.
// Every query and mutation touching a CompanyEntity must filter by CompanyID.
type CompanyEntity struct {
	BaseEntity
	CompanyID uuid.UUID
}

// NewCompanyEntity creates a new company-scoped entity
func NewCompanyEntity(companyID uuid.UUID) CompanyEntity {
	return CompanyEntity{
		BaseEntity: NewBaseEntity(),
		CompanyID:  companyID,
	}
}
