package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
)

type savedSearchStoreStub struct {
	data    map[string][]models.SavedSearch
	loadErr error
	saveErr error
	saves   int
}

func (s *savedSearchStoreStub) Load(ctx context.Context, userID string) ([]models.SavedSearch, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.data[userID], nil
}

func (s *savedSearchStoreStub) Save(ctx context.Context, userID string, searches []models.SavedSearch) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if s.data == nil {
		s.data = make(map[string][]models.SavedSearch)
	}
	s.saves++
	s.data[userID] = searches
	return nil
}

func newSavedSearchService(store SavedSearchStore, limit int) *SavedSearchService {
	svc := NewSavedSearchService(store, nil, limit, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestSavedSearchServiceSaveAppendsDuplicates(t *testing.T) {
	store := &savedSearchStoreStub{}
	svc := newSavedSearchService(store, 10)
	filters := &models.FilterState{Search: "go", SortBy: models.SortByTitle, SortOrder: models.SortAsc}

	_, err := svc.Save(context.Background(), "u1", SaveSearchRequest{Name: "Go", Filters: filters})
	require.NoError(t, err)
	searches, err := svc.Save(context.Background(), "u1", SaveSearchRequest{Name: " Go ", Filters: filters})
	require.NoError(t, err)

	require.Len(t, searches, 2)
	assert.Equal(t, "Go", searches[0].Name)
	assert.Equal(t, "Go", searches[1].Name)
	assert.Equal(t, "go", searches[1].Filters.Search)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), searches[1].CreatedAt)
	assert.Len(t, store.data["u1"], 2)
}

func TestSavedSearchServiceSaveValidation(t *testing.T) {
	svc := newSavedSearchService(&savedSearchStoreStub{}, 10)

	_, err := svc.Save(context.Background(), "u1", SaveSearchRequest{Name: "", Filters: &models.FilterState{}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appCode(t, err))

	_, err = svc.Save(context.Background(), "u1", SaveSearchRequest{Name: "No filters"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appCode(t, err))
	assert.Equal(t, map[string]string{"filters": "required"}, appErrors.FromError(err).Details)

	_, err = svc.Save(context.Background(), "u1", SaveSearchRequest{Name: "   ", Filters: &models.FilterState{}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appCode(t, err))
}

func TestSavedSearchServiceSaveLimit(t *testing.T) {
	store := &savedSearchStoreStub{data: map[string][]models.SavedSearch{"u1": {{Name: "one"}}}}
	svc := newSavedSearchService(store, 1)

	_, err := svc.Save(context.Background(), "u1", SaveSearchRequest{Name: "two", Filters: &models.FilterState{}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrLimitReached.Code, appCode(t, err))
	assert.Equal(t, 0, store.saves)
}

func TestSavedSearchServiceDelete(t *testing.T) {
	store := &savedSearchStoreStub{data: map[string][]models.SavedSearch{"u1": {{Name: "a"}, {Name: "b"}, {Name: "c"}}}}
	svc := newSavedSearchService(store, 10)

	searches, err := svc.Delete(context.Background(), "u1", 1)
	require.NoError(t, err)
	require.Len(t, searches, 2)
	assert.Equal(t, "a", searches[0].Name)
	assert.Equal(t, "c", searches[1].Name)

	searches, err = svc.Delete(context.Background(), "u1", 7)
	require.NoError(t, err)
	assert.Len(t, searches, 2)
	assert.Equal(t, 1, store.saves)
}

func TestSavedSearchServiceStoreErrors(t *testing.T) {
	svc := newSavedSearchService(&savedSearchStoreStub{loadErr: errors.New("redis down")}, 10)
	_, err := svc.List(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appCode(t, err))

	svc = newSavedSearchService(&savedSearchStoreStub{saveErr: errors.New("redis down")}, 10)
	_, err = svc.Save(context.Background(), "u1", SaveSearchRequest{Name: "x", Filters: &models.FilterState{}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appCode(t, err))
}
