package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-portal-api/internal/repository"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
)

const defaultSnapshotTTL = 5 * time.Minute

// CacheRepository is the snapshot store behind CacheService.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheConfig controls snapshot caching.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	// Namespace prefixes every key so several deployments can share a Redis
	// database with the saved-search store.
	Namespace string
}

// CacheService caches catalog snapshots and records hit ratios. Store
// failures are reported to the caller, which decides whether to fall back.
type CacheService struct {
	repo    CacheRepository
	metrics *MetricsService
	cfg     CacheConfig
	logger  *zap.Logger
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, cfg CacheConfig, logger *zap.Logger) *CacheService {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultSnapshotTTL
	}
	cfg.Namespace = strings.TrimSuffix(cfg.Namespace, ":")
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, cfg: cfg, logger: logger}
}

// Enabled reports whether snapshots are read and written.
func (s *CacheService) Enabled() bool {
	return s != nil && s.cfg.Enabled && s.repo != nil
}

func (s *CacheService) key(key string) string {
	if s.cfg.Namespace == "" {
		return key
	}
	return s.cfg.Namespace + ":" + key
}

// Get loads the snapshot at key into dest and reports whether it was found.
// A snapshot that no longer decodes is evicted and reported as a miss.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	full := s.key(key)
	start := time.Now()
	err := s.repo.Get(ctx, full, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, appErrors.ErrCacheMiss):
		return false, nil
	case errors.Is(err, repository.ErrCacheDecode):
		s.logger.Warn("evicting undecodable snapshot", zap.String("key", full), zap.Error(err))
		if delErr := s.repo.Delete(ctx, full); delErr != nil {
			s.logger.Warn("snapshot eviction failed", zap.String("key", full), zap.Error(delErr))
		}
		return false, nil
	default:
		return false, err
	}
}

// Set stores value under key. A non-positive ttl uses the configured TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = s.cfg.TTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, s.key(key), value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	return err
}

// Invalidate removes every snapshot whose key matches pattern within the
// namespace.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	return s.repo.DeleteByPattern(ctx, s.key(pattern))
}
