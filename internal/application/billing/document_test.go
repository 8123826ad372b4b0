package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLRendererRender(t *testing.T) {
	doc := &InvoiceDocument{
		Invoice: InvoiceResponse{
			ID:         uuid.New(),
			Number:     "INV-2026-0042",
			Title:      "April retainer",
			Currency:   "EUR",
			Status:     "partially_paid",
			TotalCents: 123456,
			PaidCents:  50000,
		},
		Lines: []InvoiceLineResponse{
			{
				Description:    "Consulting <days>",
				Qty:            decimal.NewFromInt(3),
				UnitPriceCents: 41152,
				LineTotalCents: 123456,
			},
		},
	}

	payload, contentType, err := (&HTMLRenderer{}).Render(doc)
	require.NoError(t, err)

	html := string(payload)
	assert.Equal(t, "text/html; charset=utf-8", contentType)
	assert.Contains(t, html, "INV-2026-0042")
	assert.Contains(t, html, "April retainer")
	assert.Contains(t, html, "1234.56")
	assert.Contains(t, html, "500.00")
	assert.Contains(t, html, "411.52")

	// markup in user data is escaped
	assert.NotContains(t, html, "<days>")
	assert.Contains(t, html, "&lt;days&gt;")
}

func TestMoneyFormatting(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"sub-unit amount keeps the leading zero", 5, "0.05"},
		{"negative amount carries a single sign", -150, "-1.50"},
		{"negative sub-unit amount", -5, "-0.05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &InvoiceDocument{
				Invoice: InvoiceResponse{
					Number:     "INV-2026-0001",
					Title:      "Title",
					Currency:   "EUR",
					Status:     "draft",
					TotalCents: tt.cents,
				},
			}

			payload, _, err := (&HTMLRenderer{}).Render(doc)
			require.NoError(t, err)
			assert.Contains(t, string(payload), tt.want)
			assert.NotContains(t, string(payload), ".-")
		})
	}
}
