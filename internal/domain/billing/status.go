package billing

import "time"

// DeriveStatus computes the effective invoice status from facts.
// The stored status is authoritative for draft and cancelled; for sent and
// partially_paid invoices the effective status is a pure function of
// {total, payment sum, due date, now}:
//
//	sum(payments) >= total            -> paid
//	0 < sum(payments) < total         -> partially_paid
//	no payments, past due date        -> overdue
//	otherwise                         -> sent
//
// overdue is not a stored transition: a later payment moves an overdue
// invoice directly to paid or partially_paid.
func DeriveStatus(stored InvoiceStatus, totalCents, paidCents int64, dueDate *time.Time, now time.Time) InvoiceStatus {
	switch stored {
	case InvoiceStatusSent, InvoiceStatusPartiallyPaid, InvoiceStatusOverdue, InvoiceStatusPaid:
	default:
		return stored
	}

	if totalCents > 0 && paidCents >= totalCents {
		return InvoiceStatusPaid
	}
	if paidCents > 0 {
		return InvoiceStatusPartiallyPaid
	}
	if dueDate != nil && totalCents > 0 && pastDue(*dueDate, now) {
		return InvoiceStatusOverdue
	}
	return InvoiceStatusSent
}

// StoredStatus reduces a derived status to the persistable one.
// overdue is never written back; it collapses to sent.
func StoredStatus(derived InvoiceStatus) InvoiceStatus {
	if derived == InvoiceStatusOverdue {
		return InvoiceStatusSent
	}
	return derived
}

// pastDue compares calendar dates, not instants: an invoice due today is not
// overdue until tomorrow.
func pastDue(dueDate, now time.Time) bool {
	y1, m1, d1 := dueDate.UTC().Date()
	y2, m2, d2 := now.UTC().Date()
	due := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	cur := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return cur.After(due)
}
