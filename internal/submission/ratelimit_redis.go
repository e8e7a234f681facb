package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/majallahq/majalla/internal/platform/constants"
	"github.com/majallahq/majalla/pkg/uuidv7"
)

// RedisAttemptStore shares the rate-limit ledger across server instances
// using a sorted set per key, scored by attempt time. Expired members are
// trimmed on every touch and the whole key expires one window after the last
// attempt, so abandoned ledgers clean themselves up.
type RedisAttemptStore struct {
	client *redis.Client
	window time.Duration
}

func NewRedisAttemptStore(client *redis.Client) *RedisAttemptStore {
	return &RedisAttemptStore{
		client: client,
		window: constants.SubmissionWindow,
	}
}

func (store *RedisAttemptStore) CountAttempts(ctx context.Context, key string) (int, error) {
	redisKey := constants.RedisPrefixSubmissionRate + key
	cutoff := time.Now().Add(-store.window).UnixMilli()

	pipe := store.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", cutoff))
	count := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("submission_rate_count_failed: %w", err)
	}

	return int(count.Val()), nil
}

func (store *RedisAttemptStore) RecordAttempt(ctx context.Context, key string) error {
	redisKey := constants.RedisPrefixSubmissionRate + key
	now := time.Now().UnixMilli()

	pipe := store.client.Pipeline()
	// Member must be unique per attempt; two attempts in the same
	// millisecond would otherwise collapse into one sorted-set entry.
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now), Member: uuidv7.New()})
	pipe.Expire(ctx, redisKey, store.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("submission_rate_record_failed: %w", err)
	}

	return nil
}
