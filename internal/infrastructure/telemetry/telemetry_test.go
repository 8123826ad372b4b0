package telemetry_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/billcraft/backend/internal/infrastructure/config"
	"github.com/billcraft/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestNewTracerProviderDisabled(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, config.TelemetryConfig{
		Enabled:           false,
		CollectorEndpoint: "localhost:4317",
		SamplingRatio:     1.0,
	}, "billcraft-backend", zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())

	// No-op tracer still hands out usable spans
	_, span := tp.Tracer("test").Start(ctx, "test-span")
	span.End()

	assert.NoError(t, tp.Shutdown(ctx))
}

func TestRegisterGormTracing(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	require.NoError(t, telemetry.RegisterGormTracing(db, "billcraft"))
}
