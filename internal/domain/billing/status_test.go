package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	pastDue := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
	dueToday := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	futureDue := time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		stored  InvoiceStatus
		total   int64
		paid    int64
		dueDate *time.Time
		want    InvoiceStatus
	}{
		{"draft is never derived", InvoiceStatusDraft, 1000, 1000, &pastDue, InvoiceStatusDraft},
		{"cancelled is never derived", InvoiceStatusCancelled, 1000, 1000, &pastDue, InvoiceStatusCancelled},
		{"fully paid", InvoiceStatusSent, 1000, 1000, nil, InvoiceStatusPaid},
		{"overpaid is paid", InvoiceStatusSent, 1000, 1500, nil, InvoiceStatusPaid},
		{"partial payment", InvoiceStatusSent, 1000, 400, nil, InvoiceStatusPartiallyPaid},
		{"partial payment past due stays partially paid", InvoiceStatusSent, 1000, 400, &pastDue, InvoiceStatusPartiallyPaid},
		{"no payments past due is overdue", InvoiceStatusSent, 1000, 0, &pastDue, InvoiceStatusOverdue},
		{"due today is not overdue", InvoiceStatusSent, 1000, 0, &dueToday, InvoiceStatusSent},
		{"due in the future", InvoiceStatusSent, 1000, 0, &futureDue, InvoiceStatusSent},
		{"no due date never overdue", InvoiceStatusSent, 1000, 0, nil, InvoiceStatusSent},
		{"zero total past due is not overdue", InvoiceStatusSent, 0, 0, &pastDue, InvoiceStatusSent},
		{"zero total is never paid", InvoiceStatusSent, 0, 0, nil, InvoiceStatusSent},
		{"stored partially paid rederives to paid", InvoiceStatusPartiallyPaid, 1000, 1000, nil, InvoiceStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.stored, tt.total, tt.paid, tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveStatusDateBoundary(t *testing.T) {
	due := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("not overdue at end of due day", func(t *testing.T) {
		now := time.Date(2026, time.June, 15, 23, 59, 59, 0, time.UTC)
		assert.Equal(t, InvoiceStatusSent, DeriveStatus(InvoiceStatusSent, 1000, 0, &due, now))
	})

	t.Run("overdue the next calendar day", func(t *testing.T) {
		now := time.Date(2026, time.June, 16, 0, 0, 1, 0, time.UTC)
		assert.Equal(t, InvoiceStatusOverdue, DeriveStatus(InvoiceStatusSent, 1000, 0, &due, now))
	})

	t.Run("comparison uses UTC calendar dates", func(t *testing.T) {
		loc := time.FixedZone("UTC+10", 10*3600)
		// 2026-06-16 08:00 +10:00 is 2026-06-15 22:00 UTC, still the due day.
		now := time.Date(2026, time.June, 16, 8, 0, 0, 0, loc)
		assert.Equal(t, InvoiceStatusSent, DeriveStatus(InvoiceStatusSent, 1000, 0, &due, now))
	})
}

func TestStoredStatus(t *testing.T) {
	assert.Equal(t, InvoiceStatusSent, StoredStatus(InvoiceStatusOverdue))
	assert.Equal(t, InvoiceStatusPaid, StoredStatus(InvoiceStatusPaid))
	assert.Equal(t, InvoiceStatusPartiallyPaid, StoredStatus(InvoiceStatusPartiallyPaid))
	assert.Equal(t, InvoiceStatusDraft, StoredStatus(InvoiceStatusDraft))
	assert.Equal(t, InvoiceStatusCancelled, StoredStatus(InvoiceStatusCancelled))
}
