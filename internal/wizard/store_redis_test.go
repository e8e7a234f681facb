package wizard_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majallahq/majalla/internal/platform/constants"
	"github.com/majallahq/majalla/internal/platform/dberr"
	"github.com/majallahq/majalla/internal/submission"
	"github.com/majallahq/majalla/internal/wizard"
)

func newRedisStore(t *testing.T) (*wizard.RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return wizard.NewRedisSessionStore(client), mr
}

/*
TestRedisSessionStore_RoundTrip saves, reloads, and deletes a session
against an embedded Redis, checking the form data survives intact.
*/
func TestRedisSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	session := &wizard.Session{
		ID:           "session-1",
		Step:         wizard.StepArticleInfo,
		EmailChecked: true,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
		UpdatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	session.Data.Author = submission.AuthorInput{Name: "Sara Ahmed", Email: "sara@example.com"}
	session.Data.Article = submission.ArticleInput{Title: "نحو قيادة فعالة في المؤسسات"}

	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, wizard.StepArticleInfo, loaded.Step)
	assert.True(t, loaded.EmailChecked)
	assert.Equal(t, "sara@example.com", loaded.Data.Author.Email)
	assert.Equal(t, "نحو قيادة فعالة في المؤسسات", loaded.Data.Article.Title)

	require.NoError(t, store.Delete(ctx, "session-1"))
	_, err = store.Get(ctx, "session-1")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

/*
TestRedisSessionStore_Expiry verifies abandoned sessions evaporate after
their TTL.
*/
func TestRedisSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Save(ctx, &wizard.Session{ID: "session-1"}))

	mr.FastForward(constants.WizardSessionTTL + time.Second)

	_, err := store.Get(ctx, "session-1")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

/*
TestRedisSessionStore_SubmitLock checks the one-shot guard: the first
acquire wins, the second loses, and release reopens it.
*/
func TestRedisSessionStore_SubmitLock(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	acquired, err := store.AcquireSubmitLock(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = store.AcquireSubmitLock(ctx, "session-1")
	require.NoError(t, err)
	assert.False(t, acquired)

	// A different session has its own guard.
	acquired, err = store.AcquireSubmitLock(ctx, "session-2")
	require.NoError(t, err)
	assert.True(t, acquired)

	require.NoError(t, store.ReleaseSubmitLock(ctx, "session-1"))
	acquired, err = store.AcquireSubmitLock(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, acquired)
}
