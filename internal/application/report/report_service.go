// Package report serves the cached reporting aggregates. Reads go through
// the cache; a computation only happens on a miss or an explicit refresh,
// and each (company, report, params) bucket is cached independently.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/billcraft/backend/internal/domain/report"
	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/billcraft/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultMonths = 6
	maxMonths     = 36
)

// Service computes and caches report aggregates
type Service struct {
	reader report.Reader
	cache  cache.ReportCache
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new report Service. A zero ttl keeps cached reports
// until the next refresh.
func NewService(reader report.Reader, reportCache cache.ReportCache, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		reader: reader,
		cache:  reportCache,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// StatusBreakdown returns the per-status quote aggregate for a company.
// With refresh the aggregate is recomputed and the cached entry replaced;
// otherwise a cached result is served as-is, computed_at included.
func (s *Service) StatusBreakdown(ctx context.Context, companyID uuid.UUID, refresh bool) (*report.StatusBreakdown, error) {
	key := report.CacheKey(companyID, report.KindStatusBreakdown, "")

	if !refresh {
		var cached report.StatusBreakdown
		if ok, err := s.getCached(ctx, key, &cached); err != nil {
			return nil, err
		} else if ok {
			return &cached, nil
		}
	}

	buckets, err := s.reader.StatusBreakdown(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := &report.StatusBreakdown{
		CompanyID:  companyID,
		Buckets:    buckets,
		ComputedAt: s.now().UTC(),
	}
	if err := s.putCached(ctx, key, result); err != nil {
		return nil, err
	}
	return result, nil
}

// MonthlyRevenue returns accepted-quote revenue for the trailing months
// window, oldest month first, zero-filled. Different months values are
// cached as independent buckets.
func (s *Service) MonthlyRevenue(ctx context.Context, companyID uuid.UUID, months int, refresh bool) (*report.MonthlyRevenue, error) {
	if months == 0 {
		months = defaultMonths
	}
	if months < 1 || months > maxMonths {
		return nil, shared.NewDomainErrorf("VALIDATION", "months must be between 1 and %d", maxMonths)
	}

	key := report.CacheKey(companyID, report.KindMonthlyRevenue, fmt.Sprintf("months=%d", months))

	if !refresh {
		var cached report.MonthlyRevenue
		if ok, err := s.getCached(ctx, key, &cached); err != nil {
			return nil, err
		} else if ok {
			return &cached, nil
		}
	}

	now := s.now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	amounts, err := s.reader.MonthlyRevenue(ctx, companyID, first)
	if err != nil {
		return nil, err
	}

	buckets := make([]report.MonthBucket, months)
	for i := 0; i < months; i++ {
		month := first.AddDate(0, i, 0).Format("2006-01")
		buckets[i] = report.MonthBucket{
			Month:       month,
			AmountCents: amounts[month],
		}
	}

	result := &report.MonthlyRevenue{
		CompanyID:  companyID,
		Months:     months,
		Buckets:    buckets,
		ComputedAt: now,
	}
	if err := s.putCached(ctx, key, result); err != nil {
		return nil, err
	}
	return result, nil
}

// getCached loads and decodes a cached payload. A decode failure is treated
// as a miss after logging; the entry gets overwritten by the recompute.
func (s *Service) getCached(ctx context.Context, key string, out any) (bool, error) {
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read report cache: %w", err)
	}
	if payload == nil {
		return false, nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		s.logger.Warn("discarding undecodable cached report",
			zap.String("key", key),
			zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *Service) putCached(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		return fmt.Errorf("failed to write report cache: %w", err)
	}
	return nil
}
