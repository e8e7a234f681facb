package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/majallahq/majalla/internal/platform/constants"
	"github.com/majallahq/majalla/internal/platform/dberr"
)

// submitLockTTL bounds how long a submit guard can be held, so a crashed
// request cannot wedge a session forever.
const submitLockTTL = 2 * time.Minute

// RedisSessionStore keeps sessions as JSON values under a TTL, shared across
// server instances.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    constants.WizardSessionTTL,
	}
}

func (store *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("wizard_session_marshal_failed: %w", err)
	}

	key := constants.RedisPrefixWizardSession + session.ID
	if err := store.client.Set(ctx, key, payload, store.ttl).Err(); err != nil {
		return fmt.Errorf("wizard_session_save_failed: %w", err)
	}
	return nil
}

func (store *RedisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	key := constants.RedisPrefixWizardSession + id

	payload, err := store.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("wizard_session_get_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("wizard_session_unmarshal_failed: %w", err)
	}
	return session, nil
}

func (store *RedisSessionStore) Delete(ctx context.Context, id string) error {
	key := constants.RedisPrefixWizardSession + id
	if err := store.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("wizard_session_delete_failed: %w", err)
	}
	return nil
}

func (store *RedisSessionStore) AcquireSubmitLock(ctx context.Context, id string) (bool, error) {
	key := constants.RedisPrefixWizardSession + id + ":submit"

	acquired, err := store.client.SetNX(ctx, key, "1", submitLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("wizard_submit_lock_failed: %w", err)
	}
	return acquired, nil
}

func (store *RedisSessionStore) ReleaseSubmitLock(ctx context.Context, id string) error {
	key := constants.RedisPrefixWizardSession + id + ":submit"
	if err := store.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("wizard_submit_unlock_failed: %w", err)
	}
	return nil
}
