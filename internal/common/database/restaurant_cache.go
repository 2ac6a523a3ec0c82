package database

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

// RestaurantSource is any store that can look up a restaurant by id.
type RestaurantSource interface {
	GetRestaurant(ctx context.Context, businessID string) (*models.Restaurant, error)
}

// CachedRestaurantStore is a read-through Redis cache in front of a
// RestaurantSource. Cache failures fall back to the source.
type CachedRestaurantStore struct {
	next   RestaurantSource
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedRestaurantStore(next RestaurantSource, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedRestaurantStore {
	return &CachedRestaurantStore{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.ForComponent(log, "restaurant-cache"),
	}
}

func restaurantKey(businessID string) string {
	return "restaurant:" + businessID
}

func (s *CachedRestaurantStore) GetRestaurant(ctx context.Context, businessID string) (*models.Restaurant, error) {
	key := restaurantKey(businessID)

	raw, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var r models.Restaurant
		if jerr := json.Unmarshal(raw, &r); jerr == nil {
			return &r, nil
		}
		s.logger.Warn("discarding corrupt cache entry", map[string]interface{}{"key": key})
	case !stderrors.Is(err, redis.Nil):
		s.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err})
	}

	r, err := s.next.GetRestaurant(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if data, jerr := json.Marshal(r); jerr == nil {
		if serr := s.client.Set(ctx, key, data, s.ttl).Err(); serr != nil {
			s.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": serr})
		}
	}
	return r, nil
}
