package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error)
	ReleaseDriverLock(ctx context.Context, driverID string) error
}

// CacheStoreInterface defines the interface for cargo snapshot caching.
type CacheStoreInterface interface {
	GetCargo(ctx context.Context, cargoID string) (*CachedCargo, error)
	SetCargo(ctx context.Context, cargo *CachedCargo) error
	InvalidateCargo(ctx context.Context, cargoID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface  = (*LockStore)(nil)
	_ CacheStoreInterface = (*CacheStore)(nil)
)
