package ports

import "context"

// IdempotencyStore remembers which resource a client-supplied
// Idempotency-Key produced, so a retried create returns the original.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (resourceID string, found bool, err error)
	Remember(ctx context.Context, key, resourceID string) error
}
