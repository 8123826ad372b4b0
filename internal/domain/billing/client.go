package billing

import (
	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Company represents a tenant. It owns every other entity in the ledger.
type Company struct {
	shared.BaseEntity
	Name string `json:"name"`
}

// NewCompany creates a new company
func NewCompany(name string) (*Company, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION", "Company name cannot be empty")
	}
	return &Company{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// Client represents a billable counterparty, scoped to one company.
// A client with existing quotes or invoices cannot be deleted.
type Client struct {
	shared.CompanyEntity
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// NewClient creates a new client for the given company
func NewClient(companyID uuid.UUID, name, email, phone string) (*Client, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "Company ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("VALIDATION", "Client name cannot exceed 200 characters")
	}
	return &Client{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Name:          name,
		Email:         email,
		Phone:         phone,
	}, nil
}
