package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers which remote event IDs have been handled so a
// redelivered event is not applied twice. Entries expire after their TTL;
// correctness does not depend on the store, only efficiency does.
type IdempotencyStore interface {
	// MarkProcessed records the event ID. It returns false when the ID was
	// already present, true when this call recorded it first.
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether the event ID has been recorded.
	IsProcessed(ctx context.Context, eventID string) (bool, error)

	Close() error
}

// IdempotencyConfig controls event deduplication.
type IdempotencyConfig struct {
	// TTL bounds how long an event ID is remembered. Redeliveries arrive
	// within seconds; a day leaves generous slack for dead-letter replays.
	TTL time.Duration

	Enabled bool
}

// DefaultIdempotencyConfig returns dedup defaults: enabled, 24h retention.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
