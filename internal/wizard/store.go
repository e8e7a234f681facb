package wizard

import "context"

// SessionStore persists wizard sessions.
type SessionStore interface {
	// Save writes the session, refreshing its TTL.
	Save(ctx context.Context, session *Session) error

	// Get returns the session or dberr.ErrNotFound when absent or expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes the session. Deleting an absent session is not an error.
	Delete(ctx context.Context, id string) error

	// AcquireSubmitLock takes the session's one-shot submit guard. It
	// reports false when another submit already holds it.
	AcquireSubmitLock(ctx context.Context, id string) (bool, error)

	// ReleaseSubmitLock frees the guard after a failed submit so the
	// contributor can retry.
	ReleaseSubmitLock(ctx context.Context, id string) error
}
