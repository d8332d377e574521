package port

import (
	"context"
	"time"
)

// KVStorePort is the injected key-value layer behind caches, drafts, pending
// message sets and the send outbox. Implementations: in-process map, Redis,
// Postgres. Treated as an informal cache, not a guaranteed schema: a missing
// key is domain.ErrNotFound, never a fatal condition.
type KVStorePort interface {
	// Get returns the stored value or domain.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores the value. A zero ttl means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}
