// Package report defines the aggregate payloads served by the reporting
// endpoints and the cache contract they are stored under.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind identifies a report family for cache keying
type Kind string

const (
	KindStatusBreakdown Kind = "status"
	KindMonthlyRevenue  Kind = "monthly"
)

// StatusBucket holds the aggregate for one quote status
type StatusBucket struct {
	Status      string `json:"status"`
	Count       int64  `json:"count"`
	AmountCents int64  `json:"amount_cents"`
}

// StatusBreakdown is the per-company quote aggregate grouped by status
type StatusBreakdown struct {
	CompanyID  uuid.UUID      `json:"company_id"`
	Buckets    []StatusBucket `json:"buckets"`
	ComputedAt time.Time      `json:"computed_at"`
}

// MonthBucket holds accepted-quote revenue for one calendar month
type MonthBucket struct {
	Month       string `json:"month"` // YYYY-MM
	AmountCents int64  `json:"amount_cents"`
}

// MonthlyRevenue is the trailing-months revenue aggregate, oldest first,
// zero-filled for months without activity. Revenue is the sum of accepted
// quote amounts.
type MonthlyRevenue struct {
	CompanyID  uuid.UUID     `json:"company_id"`
	Months     int           `json:"months"`
	Buckets    []MonthBucket `json:"buckets"`
	ComputedAt time.Time     `json:"computed_at"`
}

// CacheKey renders the cache key for (company, kind, normalized params).
// Different parameter sets are distinct buckets; params must already be in
// canonical form (e.g. "months=6", "" for no params).
func CacheKey(companyID uuid.UUID, kind Kind, params string) string {
	return fmt.Sprintf("report:%s:%s:%s", companyID, kind, params)
}

// Reader computes report aggregates from the ledger store.
// Scans are bounded to one company's rows.
type Reader interface {
	StatusBreakdown(ctx context.Context, companyID uuid.UUID) ([]StatusBucket, error)
	// MonthlyRevenue sums accepted-quote amounts grouped by calendar month
	// for quotes created at or after from.
	MonthlyRevenue(ctx context.Context, companyID uuid.UUID, from time.Time) (map[string]int64, error)
}
