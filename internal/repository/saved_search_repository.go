package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/course-portal-api/internal/models"
)

const savedSearchKeyPrefix = "saved_searches:"

// ErrStoreUnavailable is returned when no Redis client is configured.
var ErrStoreUnavailable = errors.New("saved search store unavailable")

// SavedSearchRepository persists each user's saved searches as one JSON list
// in Redis. Writes replace the whole list; the last writer wins.
type SavedSearchRepository struct {
	client *redis.Client
}

// NewSavedSearchRepository constructs the repository.
func NewSavedSearchRepository(client *redis.Client) *SavedSearchRepository {
	return &SavedSearchRepository{client: client}
}

// SavedSearchKey returns the Redis key holding a user's saved searches.
func SavedSearchKey(userID string) string {
	return savedSearchKeyPrefix + userID
}

// Load returns the user's saved searches; a user without any gets an empty
// list.
func (r *SavedSearchRepository) Load(ctx context.Context, userID string) ([]models.SavedSearch, error) {
	if r.client == nil {
		return nil, ErrStoreUnavailable
	}
	raw, err := r.client.Get(ctx, SavedSearchKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.SavedSearch{}, nil
		}
		return nil, fmt.Errorf("redis get saved searches: %w", err)
	}
	var searches []models.SavedSearch
	if err := json.Unmarshal(raw, &searches); err != nil {
		return nil, fmt.Errorf("decode saved searches for %s: %w", userID, err)
	}
	return searches, nil
}

// Save replaces the user's saved searches.
func (r *SavedSearchRepository) Save(ctx context.Context, userID string, searches []models.SavedSearch) error {
	if r.client == nil {
		return ErrStoreUnavailable
	}
	if len(searches) == 0 {
		if err := r.client.Del(ctx, SavedSearchKey(userID)).Err(); err != nil {
			return fmt.Errorf("redis delete saved searches: %w", err)
		}
		return nil
	}
	payload, err := json.Marshal(searches)
	if err != nil {
		return fmt.Errorf("encode saved searches for %s: %w", userID, err)
	}
	if err := r.client.Set(ctx, SavedSearchKey(userID), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set saved searches: %w", err)
	}
	return nil
}
