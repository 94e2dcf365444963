package analytics

import (
	"context"
	"fmt"

	"github.com/chrisdamba/menuprofit/internal/models"
	"go.uber.org/zap"
)

// Service binds the engine to its data sources and an optional cache.
type Service struct {
	engine    *Engine
	catalog   CatalogReader
	orders    OrderReader
	versioner Versioner
	cache     *Cache
	logger    *zap.Logger
}

// NewService wires the engine. versioner and cache may be nil; without both every call recomputes.
func NewService(engine *Engine, catalog CatalogReader, orders OrderReader, versioner Versioner, cache *Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		engine:    engine,
		catalog:   catalog,
		orders:    orders,
		versioner: versioner,
		cache:     cache,
		logger:    logger,
	}
}

func (s *Service) MenuAnalytics(ctx context.Context, filter models.Filter) (models.AnalyticsResult, error) {
	filter = filter.Normalize()
	if err := filter.Validate(); err != nil {
		return models.AnalyticsResult{}, err
	}

	if s.cache == nil || s.versioner == nil {
		return s.engine.Run(ctx, s.catalog, s.orders, filter)
	}

	version, err := s.versioner.DataVersion(ctx)
	if err != nil {
		return models.AnalyticsResult{}, fmt.Errorf("data version: %w", err)
	}
	key := cacheKey(filter, version)
	if cached, ok := s.cache.Get(key); ok {
		s.logger.Debug("menu analytics cache hit", zap.String("key", key))
		return cached, nil
	}

	result, err := s.engine.Run(ctx, s.catalog, s.orders, filter)
	if err != nil {
		return models.AnalyticsResult{}, err
	}
	s.cache.Set(key, result)
	return result, nil
}
