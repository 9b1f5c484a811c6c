package memory

import (
	"context"
	"sync"
	"time"
)

const (
	processingMarker = "processing"

	// defaultSweepEvery is how many claims pass between expiry sweeps.
	defaultSweepEvery = 256
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// IdempotencyStore implements usecase.IdempotencyStore in process memory.
// It is used when no Redis URL is configured.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time

	sweepEvery int
	claims     int
}

// NewIdempotencyStore creates a new in-memory IdempotencyStore.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		entries:    make(map[string]entry),
		now:        time.Now,
		sweepEvery: defaultSweepEvery,
	}
}

// CheckAndSet atomically checks if key exists, sets if not.
func (s *IdempotencyStore) CheckAndSet(_ context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[key]; ok && now.Before(e.expiresAt) {
		return true, e.value, nil
	}

	value := []byte(processingMarker)
	if response != nil {
		value = response
	}
	s.entries[key] = entry{value: value, expiresAt: now.Add(ttl)}

	s.claims++
	if s.claims >= s.sweepEvery {
		s.claims = 0
		s.sweepLocked(now)
	}

	return false, nil, nil
}

// Update updates an existing idempotency key with the final response.
func (s *IdempotencyStore) Update(_ context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{value: response, expiresAt: s.now().Add(ttl)}
	return nil
}

// Release drops a key so a failed request can be retried with it.
func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *IdempotencyStore) sweepLocked(now time.Time) {
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}
