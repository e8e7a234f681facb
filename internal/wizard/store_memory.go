package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/majallahq/majalla/internal/platform/constants"
	"github.com/majallahq/majalla/internal/platform/dberr"
)

// MemorySessionStore is a process-local session store for tests and
// single-instance development. Expiry is enforced lazily on Get.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	locks    map[string]bool
	ttl      time.Duration
	now      func() time.Time
}

type memorySession struct {
	session  Session
	expireAt time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memorySession),
		locks:    make(map[string]bool),
		ttl:      constants.WizardSessionTTL,
		now:      time.Now,
	}
}

func (store *MemorySessionStore) Save(_ context.Context, session *Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.sessions[session.ID] = memorySession{
		session:  *session,
		expireAt: store.now().Add(store.ttl),
	}
	return nil
}

func (store *MemorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.sessions[id]
	if !ok || store.now().After(entry.expireAt) {
		delete(store.sessions, id)
		return nil, dberr.ErrNotFound
	}

	session := entry.session
	return &session, nil
}

func (store *MemorySessionStore) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.sessions, id)
	delete(store.locks, id)
	return nil
}

func (store *MemorySessionStore) AcquireSubmitLock(_ context.Context, id string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.locks[id] {
		return false, nil
	}
	store.locks[id] = true
	return true, nil
}

func (store *MemorySessionStore) ReleaseSubmitLock(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.locks, id)
	return nil
}
