package billing

import (
	"context"
	"time"

	"github.com/billcraft/backend/internal/domain/billing"
	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentService records payments against invoices and keeps the stored
// invoice status consistent with the payment facts.
type PaymentService struct {
	invoiceRepo billing.InvoiceRepository
	txScope     TransactionScope
	now         func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(invoiceRepo billing.InvoiceRepository, txScope TransactionScope) *PaymentService {
	return &PaymentService{
		invoiceRepo: invoiceRepo,
		txScope:     txScope,
		now:         time.Now,
	}
}

// Apply records a payment against an invoice. The invoice row is locked for
// the duration so two concurrent payments serialize and each sees the sum
// including the other once committed.
func (s *PaymentService) Apply(ctx context.Context, companyID, invoiceID uuid.UUID, req ApplyPaymentRequest) (*PaymentResponse, error) {
	paidAt, err := parseDate(req.PaidAt, "paid_at")
	if err != nil {
		return nil, err
	}

	var payment *billing.Payment
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.Invoices().FindByIDForCompanyLocked(ctx, companyID, invoiceID)
		if err != nil {
			return err
		}

		if !invoice.Status.CanApplyPayment() {
			return shared.NewDomainErrorf("INVALID_STATE", "Cannot apply payment to invoice in %s status", invoice.Status)
		}

		payment, err = billing.NewPayment(invoice.ID, req.AmountCents, req.Method, paidAt, req.Note)
		if err != nil {
			return err
		}

		if err := repos.Invoices().AddPayment(ctx, payment); err != nil {
			return err
		}

		paid, err := repos.Invoices().PaymentSum(ctx, invoice.ID)
		if err != nil {
			return err
		}

		invoice.Status = billing.StoredStatus(
			billing.DeriveStatus(invoice.Status, invoice.TotalCents, paid, invoice.DueDate, s.now()))

		return repos.Invoices().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves the payments recorded against an invoice
func (s *PaymentService) List(ctx context.Context, companyID, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForCompany(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	payments, err := s.invoiceRepo.Payments(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses, nil
}
