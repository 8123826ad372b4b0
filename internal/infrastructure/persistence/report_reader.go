package persistence

import (
	"context"
	"time"

	"github.com/billcraft/backend/internal/domain/billing"
	"github.com/billcraft/backend/internal/domain/report"
	"github.com/billcraft/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReportReader computes report aggregates straight from the ledger
// tables. Every scan is bounded to one company's rows.
type GormReportReader struct {
	db *gorm.DB
}

// NewGormReportReader creates a new GormReportReader
func NewGormReportReader(db *gorm.DB) *GormReportReader {
	return &GormReportReader{db: db}
}

// StatusBreakdown aggregates quote count and amount grouped by status
func (r *GormReportReader) StatusBreakdown(ctx context.Context, companyID uuid.UUID) ([]report.StatusBucket, error) {
	var buckets []report.StatusBucket
	err := r.db.WithContext(ctx).
		Model(&models.QuoteModel{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount_cents), 0) AS amount_cents").
		Where("company_id = ?", companyID).
		Group("status").
		Order("status ASC").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	return buckets, nil
}

// MonthlyRevenue sums accepted-quote amounts by creation month. Month
// bucketing happens in Go so the query stays identical across postgres
// and sqlite.
func (r *GormReportReader) MonthlyRevenue(ctx context.Context, companyID uuid.UUID, from time.Time) (map[string]int64, error) {
	type row struct {
		CreatedAt   time.Time
		AmountCents int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.QuoteModel{}).
		Select("created_at, amount_cents").
		Where("company_id = ? AND status = ? AND created_at >= ?",
			companyID, billing.QuoteStatusAccepted, from).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	months := make(map[string]int64, len(rows))
	for _, rw := range rows {
		months[rw.CreatedAt.UTC().Format("2006-01")] += rw.AmountCents
	}
	return months, nil
}

// Ensure GormReportReader implements report.Reader
var _ report.Reader = (*GormReportReader)(nil)
