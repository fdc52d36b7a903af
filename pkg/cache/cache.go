package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for resolution results and universe
// documents. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of zero means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Default time-to-live values per entry class.
const (
	// TTLOrder covers resolved orders. Orders are pure functions of the
	// universe fingerprint, so long retention is safe.
	TTLOrder = 7 * 24 * time.Hour

	// TTLUniverse covers imported universe documents.
	TTLUniverse = 24 * time.Hour
)

// Keyer generates cache keys for the entry classes of the resolution
// pipeline. Implementations must be deterministic: identical inputs always
// produce identical keys.
type Keyer interface {
	// OrderKey identifies one resolved order: the universe fingerprint,
	// the focus rule, and the options that influence resolution.
	OrderKey(universeHash, focus string, opts OrderKeyOpts) string

	// UniverseKey identifies a stored universe document by name.
	UniverseKey(name string) string
}

// OrderKeyOpts captures the resolver options that affect the computed order.
// Any option that changes resolution output must be part of the key.
type OrderKeyOpts struct {
	DisableRecovery bool `json:"disable_recovery"`
}

// DefaultKeyer is the standard key generator. Keys embed a content hash so
// that arbitrary rule names never leak into backend key syntax.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// OrderKey generates a key for a resolved order.
func (k *DefaultKeyer) OrderKey(universeHash, focus string, opts OrderKeyOpts) string {
	return hashKey("order", universeHash, focus, opts)
}

// UniverseKey generates a key for a universe document.
func (k *DefaultKeyer) UniverseKey(name string) string {
	return hashKey("universe", name)
}

var _ Keyer = (*DefaultKeyer)(nil)
