package submission

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majallahq/majalla/internal/platform/constants"
)

/*
TestMemoryAttemptStore_WindowCount verifies that only attempts inside the
trailing window are counted and that expired ones fall out as time moves.
*/
func TestMemoryAttemptStore_WindowCount(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	store := NewMemoryAttemptStore()
	store.now = func() time.Time { return clock }

	for i := 0; i < 3; i++ {
		require.NoError(t, store.RecordAttempt(ctx, "sara@example.com|203.0.113.7"))
		clock = clock.Add(time.Minute)
	}

	count, err := store.CountAttempts(ctx, "sara@example.com|203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// A different key has its own ledger.
	count, err = store.CountAttempts(ctx, "other@example.com|203.0.113.7")
	require.NoError(t, err)
	assert.Zero(t, count)

	// Move past the window: the first attempt expires, then the rest.
	clock = clock.Add(constants.SubmissionWindow - 3*time.Minute)
	count, err = store.CountAttempts(ctx, "sara@example.com|203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	clock = clock.Add(constants.SubmissionWindow)
	count, err = store.CountAttempts(ctx, "sara@example.com|203.0.113.7")
	require.NoError(t, err)
	assert.Zero(t, count)
}

/*
TestMemoryAttemptStore_EvictsOldestKeys fills the ledger past its key bound
and checks that the oldest half is evicted while recent keys survive.
*/
func TestMemoryAttemptStore_EvictsOldestKeys(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	store := NewMemoryAttemptStore()
	store.now = func() time.Time { return clock }

	for i := 0; i <= maxLedgerKeys; i++ {
		require.NoError(t, store.RecordAttempt(ctx, fmt.Sprintf("key-%04d", i)))
		clock = clock.Add(time.Millisecond)
	}

	assert.LessOrEqual(t, len(store.attempts), maxLedgerKeys/2+1)

	// The most recent key survived the eviction, the oldest did not.
	count, err := store.CountAttempts(ctx, fmt.Sprintf("key-%04d", maxLedgerKeys))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = store.CountAttempts(ctx, "key-0000")
	require.NoError(t, err)
	assert.Zero(t, count)
}

/*
TestRedisAttemptStore_CountAndExpiry runs the shared ledger against an
embedded Redis: attempts accumulate per key, distinct same-millisecond
attempts are all kept, and fast-forwarding past the window clears the count.
*/
func TestRedisAttemptStore_CountAndExpiry(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisAttemptStore(client)

	// Recorded back to back, likely within one millisecond: each attempt
	// must still count individually.
	for i := 0; i < 3; i++ {
		require.NoError(t, store.RecordAttempt(ctx, "sara@example.com|203.0.113.7"))
	}

	count, err := store.CountAttempts(ctx, "sara@example.com|203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = store.CountAttempts(ctx, "other@example.com|203.0.113.7")
	require.NoError(t, err)
	assert.Zero(t, count)

	// The whole key expires one window after the last attempt.
	mr.FastForward(constants.SubmissionWindow + time.Second)
	count, err = store.CountAttempts(ctx, "sara@example.com|203.0.113.7")
	require.NoError(t, err)
	assert.Zero(t, count)
}
