package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers keys of side effects that already happened so a
// retried delivery does not repeat them
type IdempotencyStore interface {
	// MarkProcessed records the key for ttl.
	// Returns true if the key was newly recorded, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if the key has been recorded and not yet expired
	IsProcessed(ctx context.Context, key string) (bool, error)
}

// DefaultIdempotencyTTL bounds how long a processed key is remembered.
// It must exceed the outbox retry horizon.
const DefaultIdempotencyTTL = 24 * time.Hour
