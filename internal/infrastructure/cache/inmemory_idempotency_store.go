package cache

import (
	"context"
	"sync"
	"time"

	"github.com/fintrack/ledger/internal/domain/shared"
)

const sweepInterval = 5 * time.Minute

// InMemoryIdempotencyStore tracks handled event IDs in a plain map. It is the
// fallback when Redis is unavailable and the default in tests; dedup state is
// lost on restart, which the consumer tolerates (existence checks still hold).
type InMemoryIdempotencyStore struct {
	mu        sync.RWMutex
	seen      map[string]time.Time // event ID -> expiry
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore creates the store and starts its expiry sweeper.
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		seen: make(map[string]time.Time),
		done: make(chan struct{}),
	}
	s.wg.Add(1)
	go s.sweepLoop()
	return s
}

// MarkProcessed records the event ID, reporting whether this call was first.
// An expired entry counts as absent.
func (s *InMemoryIdempotencyStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expiry, ok := s.seen[eventID]; ok && time.Now().Before(expiry) {
		return false, nil
	}
	s.seen[eventID] = time.Now().Add(ttl)
	return true, nil
}

// IsProcessed reports whether the event ID is recorded and still live.
func (s *InMemoryIdempotencyStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiry, ok := s.seen[eventID]
	return ok && time.Now().Before(expiry), nil
}

// Close stops the sweeper. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryIdempotencyStore) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep drops expired entries so the map does not grow without bound
func (s *InMemoryIdempotencyStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for eventID, expiry := range s.seen {
		if now.After(expiry) {
			delete(s.seen, eventID)
		}
	}
}

// Size returns the number of live-or-expired entries currently held
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
