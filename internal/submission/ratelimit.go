package submission

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/majallahq/majalla/internal/platform/constants"
)

// AttemptStore is the submission rate-limit ledger, keyed by email+IP.
// Implementations must count only attempts inside the trailing window.
type AttemptStore interface {
	// CountAttempts returns the number of recorded attempts for key within
	// the trailing window.
	CountAttempts(ctx context.Context, key string) (int, error)

	// RecordAttempt appends the current timestamp for key.
	RecordAttempt(ctx context.Context, key string) error
}

// maxLedgerKeys bounds the in-memory ledger. When exceeded, the oldest half
// of the keys (by most recent attempt) is evicted.
const maxLedgerKeys = 1000

// MemoryAttemptStore is a process-local ledger for development and tests.
// Production deployments share the ledger across instances via
// [RedisAttemptStore].
type MemoryAttemptStore struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	window   time.Duration
	now      func() time.Time
}

func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{
		attempts: make(map[string][]time.Time),
		window:   constants.SubmissionWindow,
		now:      time.Now,
	}
}

func (store *MemoryAttemptStore) CountAttempts(_ context.Context, key string) (int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.pruneLocked(key)
	return len(store.attempts[key]), nil
}

func (store *MemoryAttemptStore) RecordAttempt(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.pruneLocked(key)
	store.attempts[key] = append(store.attempts[key], store.now())

	if len(store.attempts) > maxLedgerKeys {
		store.evictOldestHalfLocked()
	}
	return nil
}

// pruneLocked drops window-expired timestamps for one key. Lazy: runs only
// when the key is touched.
func (store *MemoryAttemptStore) pruneLocked(key string) {
	cutoff := store.now().Add(-store.window)
	kept := store.attempts[key][:0]
	for _, t := range store.attempts[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(store.attempts, key)
		return
	}
	store.attempts[key] = kept
}

// evictOldestHalfLocked removes the half of the keys whose latest attempt is
// oldest, bounding the ledger regardless of traffic shape.
func (store *MemoryAttemptStore) evictOldestHalfLocked() {
	type keyAge struct {
		key    string
		latest time.Time
	}

	ages := make([]keyAge, 0, len(store.attempts))
	for key, times := range store.attempts {
		ages = append(ages, keyAge{key: key, latest: times[len(times)-1]})
	}
	sort.Slice(ages, func(i, j int) bool { return ages[i].latest.Before(ages[j].latest) })

	for _, entry := range ages[:len(ages)/2] {
		delete(store.attempts, entry.key)
	}
}
