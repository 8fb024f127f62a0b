package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore caches cargo snapshots for the public tracking endpoint.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// CargoCacheTTL is short: status and location change while in transit.
const CargoCacheTTL = 15 * time.Second

const cargoCachePrefix = "cache:cargo:"

// CachedCargo is the cached snapshot served to trackers.
type CachedCargo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	Location     string `json:"location"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	DriverID     string `json:"driver_id"`
	DeliveryDate string `json:"delivery_date,omitempty"`
}

// GetCargo retrieves a cargo snapshot from cache. A miss returns nil, nil.
func (s *CacheStore) GetCargo(ctx context.Context, cargoID string) (*CachedCargo, error) {
	data, err := s.client.Get(ctx, cargoCachePrefix+cargoID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var cargo CachedCargo
	if err := json.Unmarshal(data, &cargo); err != nil {
		return nil, err
	}
	return &cargo, nil
}

// SetCargo stores a cargo snapshot in cache.
func (s *CacheStore) SetCargo(ctx context.Context, cargo *CachedCargo) error {
	data, err := json.Marshal(cargo)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cargoCachePrefix+cargo.ID, data, CargoCacheTTL).Err()
}

// InvalidateCargo drops a cargo's cached snapshot. Called after every
// mutation so trackers never see a stale assignment or status.
func (s *CacheStore) InvalidateCargo(ctx context.Context, cargoID string) error {
	return s.client.Del(ctx, cargoCachePrefix+cargoID).Err()
}
