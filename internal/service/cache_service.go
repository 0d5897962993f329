package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/course-compass/internal/catalog"
	appErrors "github.com/noah-isme/course-compass/pkg/errors"
)

// CacheService decorates a catalog.Store with hit/miss metrics and fail-soft
// behavior: a broken cache backend is reported as a miss so catalog reads
// fall through to the upstream source instead of failing.
type CacheService struct {
	store   catalog.Store
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCacheService wraps the given store.
func NewCacheService(store catalog.Store, metrics *MetricsService, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{store: store, metrics: metrics, logger: logger}
}

// Get loads a cached value, recording the hit or miss.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	err := s.store.Get(ctx, key, dest)
	switch {
	case err == nil:
		s.metrics.RecordCacheOperation(true)
		return nil
	case appErrors.FromError(err).Code == appErrors.ErrCacheMiss.Code:
		s.metrics.RecordCacheOperation(false)
		return err
	default:
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		s.metrics.RecordCacheOperation(false)
		return appErrors.ErrCacheMiss
	}
}

// Set stores a value. Write failures are logged and swallowed; the entry is
// simply refetched next time.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	if err := s.store.Set(ctx, key, value); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}
