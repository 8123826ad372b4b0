package billing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/google/uuid"
)

// InvoiceDocument is the full printable view of an invoice
type InvoiceDocument struct {
	Invoice  InvoiceResponse
	Lines    []InvoiceLineResponse
	Payments []PaymentResponse
}

// DocumentRenderer renders an invoice document into a downloadable payload.
// Render returns the payload and its content type.
type DocumentRenderer interface {
	Render(doc *InvoiceDocument) ([]byte, string, error)
}

// Document assembles the printable view of an invoice
func (s *InvoiceService) Document(ctx context.Context, companyID, invoiceID uuid.UUID) (*InvoiceDocument, error) {
	invoice, err := s.GetByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	lines, err := s.Lines(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	payments, err := s.invoiceRepo.Payments(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	doc := &InvoiceDocument{
		Invoice:  *invoice,
		Lines:    lines,
		Payments: make([]PaymentResponse, len(payments)),
	}
	for i := range payments {
		doc.Payments[i] = ToPaymentResponse(&payments[i])
	}
	return doc, nil
}

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(cents int64) string {
		sign := ""
		if cents < 0 {
			sign = "-"
			cents = -cents
		}
		return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.Invoice.Number}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; margin-top: 1em; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
.amount { text-align: right; }
.total { font-weight: bold; }
</style>
</head>
<body>
<h1>Invoice {{.Invoice.Number}}</h1>
<p>{{.Invoice.Title}}</p>
<p>Status: {{.Invoice.Status}}{{if .Invoice.IssuedDate}} &middot; Issued: {{.Invoice.IssuedDate}}{{end}}{{if .Invoice.DueDate}} &middot; Due: {{.Invoice.DueDate}}{{end}}</p>
<table>
<tr><th>Description</th><th class="amount">Qty</th><th class="amount">Unit price</th><th class="amount">Total</th></tr>
{{range .Lines}}<tr><td>{{.Description}}</td><td class="amount">{{.Qty}}</td><td class="amount">{{money .UnitPriceCents}}</td><td class="amount">{{money .LineTotalCents}}</td></tr>
{{end}}<tr class="total"><td colspan="3">Total ({{.Invoice.Currency}})</td><td class="amount">{{money .Invoice.TotalCents}}</td></tr>
<tr><td colspan="3">Paid</td><td class="amount">{{money .Invoice.PaidCents}}</td></tr>
</table>
</body>
</html>
`))

// HTMLRenderer implements DocumentRenderer with a printable HTML page.
// PDF rasterization stays outside the core; callers print the page.
type HTMLRenderer struct{}

// NewHTMLRenderer creates a new HTMLRenderer
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render renders the invoice document as HTML
func (r *HTMLRenderer) Render(doc *InvoiceDocument) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, doc); err != nil {
		return nil, "", fmt.Errorf("failed to render invoice document: %w", err)
	}
	return buf.Bytes(), "text/html; charset=utf-8", nil
}

// Ensure HTMLRenderer implements DocumentRenderer
var _ DocumentRenderer = (*HTMLRenderer)(nil)
