package cache

import (
	"fmt"

	"github.com/billcraft/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewReportCache creates a report cache backend from configuration.
// The redis backend requires a reachable Redis instance; there is no
// in-memory fallback.
func NewReportCache(cfg config.CacheConfig, redisCfg config.RedisConfig, logger *zap.Logger) (ReportCache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case "memory":
		logger.Info("using in-memory report cache")
		return NewInMemoryReportCache(), nil
	case "redis":
		cache, err := NewRedisReportCache(redisCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis report cache: %w", err)
		}
		logger.Info("using Redis report cache", zap.String("addr", redisCfg.Addr()))
		return cache, nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Backend)
	}
}
