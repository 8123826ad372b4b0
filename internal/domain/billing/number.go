package billing

import "fmt"

// SequenceKind identifies a per-company document number sequence
type SequenceKind string

const (
	SequenceKindQuote   SequenceKind = "quote"
	SequenceKindInvoice SequenceKind = "invoice"
)

// IsValid checks if the sequence kind is valid
func (k SequenceKind) IsValid() bool {
	return k == SequenceKindQuote || k == SequenceKindInvoice
}

// String returns the string representation of SequenceKind
func (k SequenceKind) String() string {
	return string(k)
}

// Prefix returns the rendered document number prefix for the kind
func (k SequenceKind) Prefix() string {
	if k == SequenceKindInvoice {
		return "INV"
	}
	return "Q"
}

// RenderNumber renders a document number such as "INV-2026-0007".
// Uniqueness and ordering guarantees apply to the numeric part only;
// the prefix and year are presentation.
func RenderNumber(kind SequenceKind, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", kind.Prefix(), year, seq)
}
