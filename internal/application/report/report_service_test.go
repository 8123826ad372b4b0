package report

import (
	"context"
	"testing"
	"time"

	"github.com/billcraft/backend/internal/domain/report"
	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/billcraft/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader serves canned aggregates and counts invocations
type fakeReader struct {
	statusCalls  int
	monthlyCalls int
	buckets      []report.StatusBucket
	amounts      map[string]int64
	lastFrom     time.Time
}

func (r *fakeReader) StatusBreakdown(ctx context.Context, companyID uuid.UUID) ([]report.StatusBucket, error) {
	r.statusCalls++
	return r.buckets, nil
}

func (r *fakeReader) MonthlyRevenue(ctx context.Context, companyID uuid.UUID, from time.Time) (map[string]int64, error) {
	r.monthlyCalls++
	r.lastFrom = from
	return r.amounts, nil
}

func newTestService(reader *fakeReader, now time.Time) *Service {
	svc := NewService(reader, cache.NewInMemoryReportCache(), 0, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestStatusBreakdown(t *testing.T) {
	companyID := uuid.New()
	ctx := context.Background()
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	t.Run("computes on miss and serves from cache afterwards", func(t *testing.T) {
		reader := &fakeReader{buckets: []report.StatusBucket{
			{Status: "accepted", Count: 3, AmountCents: 90000},
			{Status: "draft", Count: 1, AmountCents: 5000},
		}}
		svc := newTestService(reader, now)

		first, err := svc.StatusBreakdown(ctx, companyID, false)
		require.NoError(t, err)
		assert.Equal(t, 1, reader.statusCalls)
		assert.Len(t, first.Buckets, 2)

		second, err := svc.StatusBreakdown(ctx, companyID, false)
		require.NoError(t, err)
		assert.Equal(t, 1, reader.statusCalls)
		assert.True(t, first.ComputedAt.Equal(second.ComputedAt))
	})

	t.Run("refresh recomputes and replaces the cached entry", func(t *testing.T) {
		reader := &fakeReader{buckets: []report.StatusBucket{{Status: "draft", Count: 1}}}
		svc := newTestService(reader, now)

		_, err := svc.StatusBreakdown(ctx, companyID, false)
		require.NoError(t, err)

		later := now.Add(time.Hour)
		svc.now = func() time.Time { return later }

		refreshed, err := svc.StatusBreakdown(ctx, companyID, true)
		require.NoError(t, err)
		assert.Equal(t, 2, reader.statusCalls)
		assert.Equal(t, later, refreshed.ComputedAt)

		// the refreshed entry is now what cache reads serve
		cached, err := svc.StatusBreakdown(ctx, companyID, false)
		require.NoError(t, err)
		assert.Equal(t, 2, reader.statusCalls)
		assert.True(t, later.Equal(cached.ComputedAt))
	})
}

func TestMonthlyRevenue(t *testing.T) {
	companyID := uuid.New()
	ctx := context.Background()
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	t.Run("zero-fills trailing months oldest first", func(t *testing.T) {
		reader := &fakeReader{amounts: map[string]int64{
			"2026-06": 90000,
			"2026-03": 25000,
		}}
		svc := newTestService(reader, now)

		result, err := svc.MonthlyRevenue(ctx, companyID, 0, false)
		require.NoError(t, err)
		assert.Equal(t, 6, result.Months)
		require.Len(t, result.Buckets, 6)

		assert.Equal(t, report.MonthBucket{Month: "2026-01", AmountCents: 0}, result.Buckets[0])
		assert.Equal(t, report.MonthBucket{Month: "2026-03", AmountCents: 25000}, result.Buckets[2])
		assert.Equal(t, report.MonthBucket{Month: "2026-06", AmountCents: 90000}, result.Buckets[5])

		assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), reader.lastFrom)
	})

	t.Run("different window sizes cache independently", func(t *testing.T) {
		reader := &fakeReader{amounts: map[string]int64{}}
		svc := newTestService(reader, now)

		_, err := svc.MonthlyRevenue(ctx, companyID, 3, false)
		require.NoError(t, err)
		_, err = svc.MonthlyRevenue(ctx, companyID, 12, false)
		require.NoError(t, err)
		assert.Equal(t, 2, reader.monthlyCalls)

		// both windows now hit their own cached bucket
		_, err = svc.MonthlyRevenue(ctx, companyID, 3, false)
		require.NoError(t, err)
		_, err = svc.MonthlyRevenue(ctx, companyID, 12, false)
		require.NoError(t, err)
		assert.Equal(t, 2, reader.monthlyCalls)
	})

	t.Run("rejects out-of-range months", func(t *testing.T) {
		svc := newTestService(&fakeReader{}, now)

		for _, months := range []int{-1, 37, 100} {
			_, err := svc.MonthlyRevenue(ctx, companyID, months, false)
			require.Error(t, err)

			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "VALIDATION", de.Code)
		}
	})

	t.Run("single month window", func(t *testing.T) {
		reader := &fakeReader{amounts: map[string]int64{"2026-06": 500}}
		svc := newTestService(reader, now)

		result, err := svc.MonthlyRevenue(ctx, companyID, 1, false)
		require.NoError(t, err)
		require.Len(t, result.Buckets, 1)
		assert.Equal(t, "2026-06", result.Buckets[0].Month)
		assert.Equal(t, int64(500), result.Buckets[0].AmountCents)
	})

	t.Run("window crossing a year boundary", func(t *testing.T) {
		january := time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC)
		reader := &fakeReader{amounts: map[string]int64{"2025-12": 700}}
		svc := newTestService(reader, january)

		result, err := svc.MonthlyRevenue(ctx, companyID, 3, false)
		require.NoError(t, err)
		require.Len(t, result.Buckets, 3)
		assert.Equal(t, "2025-11", result.Buckets[0].Month)
		assert.Equal(t, "2025-12", result.Buckets[1].Month)
		assert.Equal(t, int64(700), result.Buckets[1].AmountCents)
		assert.Equal(t, "2026-01", result.Buckets[2].Month)
	})
}

func TestUndecodableCacheEntry(t *testing.T) {
	companyID := uuid.New()
	ctx := context.Background()
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	reader := &fakeReader{buckets: []report.StatusBucket{{Status: "draft", Count: 1}}}
	reportCache := cache.NewInMemoryReportCache()
	svc := NewService(reader, reportCache, 0, nil)
	svc.now = func() time.Time { return now }

	key := report.CacheKey(companyID, report.KindStatusBreakdown, "")
	require.NoError(t, reportCache.Set(ctx, key, []byte("not json"), 0))

	// the poisoned entry is treated as a miss and overwritten
	result, err := svc.StatusBreakdown(ctx, companyID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, reader.statusCalls)
	assert.Len(t, result.Buckets, 1)

	_, err = svc.StatusBreakdown(ctx, companyID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, reader.statusCalls)
}
