// Package cache provides the best-effort response cache used to memoize
// ranking output. A Redis backend is used when configured; otherwise entries
// live in process memory. Cache failures never fail a request.
package cache

import (
	"context"
	"time"
)

// Health summarizes cache availability for the health endpoint.
type Health struct {
	Status  string `json:"status"` // healthy | unhealthy | disabled
	Backend string `json:"backend"`
	Keys    int    `json:"keys,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Cache is a key-value store with per-entry TTL. Get returns (nil, nil) on a
// miss; a non-nil error means the backend itself failed, which callers treat
// as a miss as well.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePattern removes all keys matching a glob pattern (e.g.
	// "livebetter:rank:*") and returns the number of keys removed.
	DeletePattern(ctx context.Context, pattern string) (int, error)
	HealthCheck(ctx context.Context) Health
	Close() error
}

// Disabled is a no-op Cache for deployments that turn caching off.
type Disabled struct{}

func (Disabled) Get(context.Context, string) ([]byte, error)               { return nil, nil }
func (Disabled) Set(context.Context, string, []byte, time.Duration) error  { return nil }
func (Disabled) Delete(context.Context, string) error                      { return nil }
func (Disabled) DeletePattern(context.Context, string) (int, error)        { return 0, nil }
func (Disabled) HealthCheck(context.Context) Health {
	return Health{Status: "disabled", Backend: "none"}
}
func (Disabled) Close() error { return nil }
