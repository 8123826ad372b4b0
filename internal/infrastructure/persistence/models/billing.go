package models

import (
	"time"

	"github.com/billcraft/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompanyModel is the persistence model for Company
type CompanyModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company
func (m *CompanyModel) ToDomain() *billing.Company {
	return &billing.Company{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// ClientModel is the persistence model for Client
type ClientModel struct {
	CompanyModelBase
	Name  string `gorm:"type:varchar(200);not null;index"`
	Email string `gorm:"type:varchar(200)"`
	Phone string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client
func (m *ClientModel) ToDomain() *billing.Client {
	return &billing.Client{
		CompanyEntity: m.ToDomainCompanyEntity(),
		Name:          m.Name,
		Email:         m.Email,
		Phone:         m.Phone,
	}
}

// FromDomain populates the persistence model from a domain Client
func (m *ClientModel) FromDomain(c *billing.Client) {
	m.FromDomainCompanyEntity(c.CompanyEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
}

// QuoteModel is the persistence model for Quote
type QuoteModel struct {
	CompanyModelBase
	ClientID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	Seq         int64               `gorm:"not null"`
	Number      string              `gorm:"type:varchar(50);not null"`
	Title       string              `gorm:"type:varchar(500);not null"`
	AmountCents int64               `gorm:"not null;default:0"`
	Status      billing.QuoteStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
}

// TableName returns the table name for GORM
func (QuoteModel) TableName() string {
	return "quotes"
}

// ToDomain converts the persistence model to a domain Quote
func (m *QuoteModel) ToDomain() *billing.Quote {
	return &billing.Quote{
		CompanyEntity: m.ToDomainCompanyEntity(),
		ClientID:      m.ClientID,
		Seq:           m.Seq,
		Number:        m.Number,
		Title:         m.Title,
		AmountCents:   m.AmountCents,
		Status:        m.Status,
	}
}

// FromDomain populates the persistence model from a domain Quote
func (m *QuoteModel) FromDomain(q *billing.Quote) {
	m.FromDomainCompanyEntity(q.CompanyEntity)
	m.ClientID = q.ClientID
	m.Seq = q.Seq
	m.Number = q.Number
	m.Title = q.Title
	m.AmountCents = q.AmountCents
	m.Status = q.Status
}

// InvoiceModel is the persistence model for Invoice.
// SourceQuoteID carries a unique index so a quote converts at most once even
// under concurrent conversion attempts.
type InvoiceModel struct {
	CompanyModelBase
	ClientID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	Seq           int64                 `gorm:"not null"`
	Number        string                `gorm:"type:varchar(50);not null"`
	Title         string                `gorm:"type:varchar(500);not null"`
	Currency      string                `gorm:"type:varchar(3);not null;default:'EUR'"`
	IssuedDate    *time.Time            `gorm:"type:date"`
	DueDate       *time.Time            `gorm:"type:date;index"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	TotalCents    int64                 `gorm:"not null;default:0"`
	SourceQuoteID *uuid.UUID            `gorm:"type:uuid;uniqueIndex"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		CompanyEntity: m.ToDomainCompanyEntity(),
		ClientID:      m.ClientID,
		Seq:           m.Seq,
		Number:        m.Number,
		Title:         m.Title,
		Currency:      m.Currency,
		IssuedDate:    m.IssuedDate,
		DueDate:       m.DueDate,
		Status:        m.Status,
		TotalCents:    m.TotalCents,
		SourceQuoteID: m.SourceQuoteID,
	}
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainCompanyEntity(inv.CompanyEntity)
	m.ClientID = inv.ClientID
	m.Seq = inv.Seq
	m.Number = inv.Number
	m.Title = inv.Title
	m.Currency = inv.Currency
	m.IssuedDate = inv.IssuedDate
	m.DueDate = inv.DueDate
	m.Status = inv.Status
	m.TotalCents = inv.TotalCents
	m.SourceQuoteID = inv.SourceQuoteID
}

// InvoiceLineModel is the persistence model for InvoiceLine
type InvoiceLineModel struct {
	BaseModel
	InvoiceID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description    string          `gorm:"type:varchar(500);not null"`
	Qty            decimal.Decimal `gorm:"type:decimal(20,4);not null;default:1"`
	UnitPriceCents int64           `gorm:"not null;default:0"`
	LineTotalCents int64           `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the persistence model to a domain InvoiceLine
func (m *InvoiceLineModel) ToDomain() *billing.InvoiceLine {
	return &billing.InvoiceLine{
		BaseEntity:     m.BaseModel.ToDomain(),
		InvoiceID:      m.InvoiceID,
		Description:    m.Description,
		Qty:            m.Qty,
		UnitPriceCents: m.UnitPriceCents,
		LineTotalCents: m.LineTotalCents,
	}
}

// FromDomain populates the persistence model from a domain InvoiceLine
func (m *InvoiceLineModel) FromDomain(l *billing.InvoiceLine) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.InvoiceID = l.InvoiceID
	m.Description = l.Description
	m.Qty = l.Qty
	m.UnitPriceCents = l.UnitPriceCents
	m.LineTotalCents = l.LineTotalCents
}

// PaymentModel is the persistence model for Payment
type PaymentModel struct {
	BaseModel
	InvoiceID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	AmountCents int64      `gorm:"not null"`
	Method      string     `gorm:"type:varchar(50)"`
	PaidAt      *time.Time `gorm:"type:date"`
	Note        string     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity:  m.BaseModel.ToDomain(),
		InvoiceID:   m.InvoiceID,
		AmountCents: m.AmountCents,
		Method:      m.Method,
		PaidAt:      m.PaidAt,
		Note:        m.Note,
	}
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.InvoiceID = p.InvoiceID
	m.AmountCents = p.AmountCents
	m.Method = p.Method
	m.PaidAt = p.PaidAt
	m.Note = p.Note
}

// CompanySequenceModel is the persistence model for per-company document
// number counters. NextValue is only ever advanced through the atomic
// upsert in SequenceRepository.
type CompanySequenceModel struct {
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind      string    `gorm:"type:varchar(20);primaryKey"`
	NextValue int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CompanySequenceModel) TableName() string {
	return "company_sequences"
}
