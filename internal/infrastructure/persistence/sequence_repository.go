package persistence

import (
	"context"

	"github.com/billcraft/backend/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSequenceRepository implements SequenceRepository using GORM.
// Allocation is a single upsert that increments and returns the counter, so
// two concurrent calls for the same (company, kind) serialize on the row and
// never observe the same value. Postgres and SQLite both support this form.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next allocates the next sequence value for a company and document kind
func (r *GormSequenceRepository) Next(ctx context.Context, companyID uuid.UUID, kind billing.SequenceKind) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO company_sequences (company_id, kind, next_value)
		VALUES (?, ?, 1)
		ON CONFLICT (company_id, kind)
		DO UPDATE SET next_value = company_sequences.next_value + 1
		RETURNING next_value`,
		companyID, string(kind),
	).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Ensure GormSequenceRepository implements SequenceRepository
var _ billing.SequenceRepository = (*GormSequenceRepository)(nil)
