package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-portal-api/internal/models"
	"github.com/noah-isme/course-portal-api/internal/repository"
)

func TestCacheServiceDisabled(t *testing.T) {
	svc := NewCacheService(&cacheRepoStub{}, nil, CacheConfig{}, nil)
	assert.False(t, svc.Enabled())

	var dest []models.Course
	hit, err := svc.Get(context.Background(), CatalogCacheKey, &dest)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, svc.Set(context.Background(), CatalogCacheKey, []models.Course{}, 0))
}

func TestCacheServiceNamespacesKeys(t *testing.T) {
	metrics := NewMetricsService()
	repo := &cacheRepoStub{}
	svc := NewCacheService(repo, metrics, CacheConfig{Enabled: true, Namespace: "portal:"}, nil)

	var dest []models.Course
	hit, err := svc.Get(context.Background(), CatalogCacheKey, &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), CatalogCacheKey, []models.Course{{ID: "c1"}}, 0))
	assert.Contains(t, repo.values, "portal:"+CatalogCacheKey)

	hit, err = svc.Get(context.Background(), CatalogCacheKey, &dest)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "c1", dest[0].ID)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.CacheHits)
	assert.Equal(t, uint64(1), snapshot.CacheMisses)
}

func TestCacheServiceEvictsUndecodableSnapshot(t *testing.T) {
	repo := &cacheRepoStub{getErr: fmt.Errorf("%w: catalog:courses: bad json", repository.ErrCacheDecode)}
	svc := NewCacheService(repo, nil, CacheConfig{Enabled: true}, nil)

	var dest []models.Course
	hit, err := svc.Get(context.Background(), CatalogCacheKey, &dest)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []string{CatalogCacheKey}, repo.deleted)
}

func TestCacheServiceGetError(t *testing.T) {
	svc := NewCacheService(&cacheRepoStub{getErr: errors.New("timeout")}, nil, CacheConfig{Enabled: true}, nil)

	var dest []models.Course
	hit, err := svc.Get(context.Background(), CatalogCacheKey, &dest)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestCacheServiceInvalidate(t *testing.T) {
	repo := &cacheRepoStub{values: map[string][]models.Course{CatalogCacheKey: {{ID: "c1"}}}}
	svc := NewCacheService(repo, nil, CacheConfig{Enabled: true}, nil)

	require.NoError(t, svc.Invalidate(context.Background(), "catalog:*"))
	assert.Nil(t, repo.values)
}
