package wizard_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majallahq/majalla/internal/core/article"
	"github.com/majallahq/majalla/internal/core/author"
	"github.com/majallahq/majalla/internal/core/category"
	"github.com/majallahq/majalla/internal/formconfig"
	"github.com/majallahq/majalla/internal/mailer"
	"github.com/majallahq/majalla/internal/media"
	"github.com/majallahq/majalla/internal/platform/apperr"
	"github.com/majallahq/majalla/internal/platform/dberr"
	"github.com/majallahq/majalla/internal/platform/sec"
	"github.com/majallahq/majalla/internal/submission"
	"github.com/majallahq/majalla/internal/wizard"
	"github.com/majallahq/majalla/pkg/pagination"
)

// # Test Fakes

type fakeAuthorRepo struct {
	byEmail map[string]*author.Author
}

func (f *fakeAuthorRepo) FindByEmail(_ context.Context, email string) (*author.Author, error) {
	if a, ok := f.byEmail[email]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeAuthorRepo) Create(_ context.Context, a *author.Author) error {
	if a.ID == "" {
		a.ID = "author-1"
	}
	copied := *a
	f.byEmail[a.Email] = &copied
	return nil
}

func (f *fakeAuthorRepo) Update(_ context.Context, a *author.Author) error {
	copied := *a
	f.byEmail[a.Email] = &copied
	return nil
}

type fakeArticleRepo struct {
	articles []article.Article
}

func (f *fakeArticleRepo) Create(_ context.Context, a *article.Article) error {
	a.ID = "article-1"
	f.articles = append(f.articles, *a)
	return nil
}

func (f *fakeArticleRepo) SlugExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (f *fakeArticleRepo) ListByStatus(_ context.Context, _ article.Status, _ pagination.Params) ([]article.Article, int, error) {
	return f.articles, len(f.articles), nil
}

type fakeCategoryRepo struct{}

func (fakeCategoryRepo) List(_ context.Context) ([]category.Category, error) {
	return []category.Category{{ID: "c-1", Name: "ثقافة"}}, nil
}

type fakeFormRepo struct{}

func (fakeFormRepo) Get(_ context.Context, _ string) ([]byte, error) {
	return nil, dberr.ErrNotFound
}

type nopStorage struct{}

func (nopStorage) Upload(_ context.Context, upload media.Upload) (*media.Record, error) {
	return &media.Record{ID: "media-1", Name: upload.Name}, nil
}

type nopMailer struct{}

func (nopMailer) Send(_ context.Context, _ mailer.Message) error { return nil }

// # Harness

type fixture struct {
	service *wizard.Service
	store   *wizard.MemorySessionStore
	authors *fakeAuthorRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authors := &fakeAuthorRepo{byEmail: map[string]*author.Author{}}
	forms := formconfig.NewService(fakeFormRepo{}, logger)
	categories := category.NewService(fakeCategoryRepo{}, logger)

	submissions := submission.NewService(
		author.NewService(authors, logger),
		article.NewService(&fakeArticleRepo{}, logger),
		categories,
		forms,
		nopStorage{},
		nopMailer{},
		submission.NewMemoryAttemptStore(),
		logger,
	)

	store := wizard.NewMemorySessionStore()
	return &fixture{
		service: wizard.NewService(store, submissions, forms, categories, logger),
		store:   store,
		authors: authors,
	}
}

func fillValidForm(t *testing.T, f *fixture, id string) {
	t.Helper()
	_, err := f.service.UpdateFields(context.Background(), id, wizard.Patch{
		Author: &submission.AuthorInput{
			Name:         "Sara Ahmed",
			Email:        "sara@example.com",
			Title:        "كاتبة",
			Organization: "مؤسسة النشر",
		},
		Article: &submission.ArticleInput{
			Title:       "نحو قيادة فعالة في المؤسسات",
			Description: "وصف تفصيلي للمقال يشرح محتواه للمحررين",
			Categories:  []string{"ثقافة"},
			Content:     strings.TrimSpace(strings.Repeat("كلمة ", 120)),
		},
		Review: &submission.ReviewInput{Consent: true},
	})
	require.NoError(t, err)
}

// # Scenarios

/*
TestStart_Anonymous opens at the email-check step with an empty form.
*/
func TestStart_Anonymous(t *testing.T) {
	f := newFixture(t)

	session, err := f.service.Start(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, wizard.StepEmailCheck, session.Step)
	assert.False(t, session.EmailChecked)
	assert.Empty(t, session.Data.Author.Email)
	assert.NotEmpty(t, session.ID)
}

/*
TestStart_AuthenticatedSkipsProbe trusts the token's email, pre-fills the
known author's fields and opens directly at the author-info step.
*/
func TestStart_AuthenticatedSkipsProbe(t *testing.T) {
	f := newFixture(t)
	f.authors.byEmail["sara@example.com"] = &author.Author{
		ID:           "a-1",
		Name:         "Sara Ahmed",
		Email:        "sara@example.com",
		Organization: "مؤسسة النشر",
	}

	session, err := f.service.Start(context.Background(), &sec.AuthClaims{
		Email: "sara@example.com",
		Name:  "Sara Ahmed",
	})

	require.NoError(t, err)
	assert.Equal(t, wizard.StepAuthorInfo, session.Step)
	assert.True(t, session.EmailChecked)
	assert.True(t, session.AuthorKnown)
	assert.Equal(t, "مؤسسة النشر", session.Data.Author.Organization)
}

/*
TestAdvance_EmailProbePrefills runs step 0 against a known author: the form
is pre-filled from the sanitized projection while the typed email is kept.
*/
func TestAdvance_EmailProbePrefills(t *testing.T) {
	f := newFixture(t)
	f.authors.byEmail["sara@example.com"] = &author.Author{
		ID:    "a-1",
		Name:  "Sara Ahmed",
		Email: "sara@example.com",
		Bio:   "نبذة عن الكاتبة",
	}

	session, err := f.service.Start(context.Background(), nil)
	require.NoError(t, err)

	_, err = f.service.UpdateFields(context.Background(), session.ID, wizard.Patch{
		Author: &submission.AuthorInput{Email: "Sara@Example.com"},
	})
	require.NoError(t, err)

	advanced, err := f.service.Advance(context.Background(), session.ID)

	require.NoError(t, err)
	assert.Equal(t, wizard.StepAuthorInfo, advanced.Step)
	assert.True(t, advanced.EmailChecked)
	assert.True(t, advanced.AuthorKnown)
	assert.Equal(t, "Sara Ahmed", advanced.Data.Author.Name)
	assert.Equal(t, "نبذة عن الكاتبة", advanced.Data.Author.Bio)
}

/*
TestAdvance_RefusalKeepsStep fails step-1 validation: the session stays put
and every field error comes back together.
*/
func TestAdvance_RefusalKeepsStep(t *testing.T) {
	f := newFixture(t)

	session, err := f.service.Start(context.Background(), nil)
	require.NoError(t, err)

	_, err = f.service.UpdateFields(context.Background(), session.ID, wizard.Patch{
		Author: &submission.AuthorInput{Email: "sara@example.com"},
	})
	require.NoError(t, err)

	// Past step 0, but name/title/organization are still blank.
	_, err = f.service.Advance(context.Background(), session.ID)
	require.NoError(t, err)

	_, err = f.service.Advance(context.Background(), session.ID)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.GreaterOrEqual(t, len(ae.Details), 3)

	current, getErr := f.service.Get(context.Background(), session.ID)
	require.NoError(t, getErr)
	assert.Equal(t, wizard.StepAuthorInfo, current.Step)
}

/*
TestBack_AlwaysAllowedAndLossless walks backwards from the article step and
verifies no entered data is cleared.
*/
func TestBack_AlwaysAllowedAndLossless(t *testing.T) {
	f := newFixture(t)

	session, err := f.service.Start(context.Background(), nil)
	require.NoError(t, err)
	fillValidForm(t, f, session.ID)

	for i := 0; i < 2; i++ {
		_, err = f.service.Advance(context.Background(), session.ID)
		require.NoError(t, err)
	}

	back, err := f.service.Back(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepAuthorInfo, back.Step)
	assert.Equal(t, "Sara Ahmed", back.Data.Author.Name)
	assert.NotEmpty(t, back.Data.Article.Content)

	// Backing off the first step is a no-op, never an error.
	back, err = f.service.Back(context.Background(), session.ID)
	require.NoError(t, err)
	back, err = f.service.Back(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepEmailCheck, back.Step)
}

/*
TestSubmit_SuccessWipesSession submits a complete form and verifies the
session is gone afterwards.
*/
func TestSubmit_SuccessWipesSession(t *testing.T) {
	f := newFixture(t)

	session, err := f.service.Start(context.Background(), nil)
	require.NoError(t, err)
	fillValidForm(t, f, session.ID)

	result, err := f.service.Submit(context.Background(), session.ID, nil, nil, "203.0.113.7")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.ArticleID)

	_, err = f.service.Get(context.Background(), session.ID)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestSubmit_DoubleSubmitConflict holds the submit lock and verifies a second
attempt is refused with a conflict.
*/
func TestSubmit_DoubleSubmitConflict(t *testing.T) {
	f := newFixture(t)

	session, err := f.service.Start(context.Background(), nil)
	require.NoError(t, err)
	fillValidForm(t, f, session.ID)

	acquired, err := f.store.AcquireSubmitLock(context.Background(), session.ID)
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = f.service.Submit(context.Background(), session.ID, nil, nil, "203.0.113.7")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	// The session survives the refused attempt.
	_, err = f.service.Get(context.Background(), session.ID)
	assert.NoError(t, err)
}

/*
TestSubmit_ValidationFailureReleasesLock fails the re-run rules, then checks
the contributor can retry after correcting: the guard was released.
*/
func TestSubmit_ValidationFailureReleasesLock(t *testing.T) {
	f := newFixture(t)

	session, err := f.service.Start(context.Background(), nil)
	require.NoError(t, err)
	fillValidForm(t, f, session.ID)

	// Tamper: withdraw consent after the review step's guard already ran.
	_, err = f.service.UpdateFields(context.Background(), session.ID, wizard.Patch{
		Review: &submission.ReviewInput{Consent: false},
	})
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), session.ID, nil, nil, "203.0.113.7")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)

	// Correct and retry on the same session.
	_, err = f.service.UpdateFields(context.Background(), session.ID, wizard.Patch{
		Review: &submission.ReviewInput{Consent: true},
	})
	require.NoError(t, err)

	result, err := f.service.Submit(context.Background(), session.ID, nil, nil, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, result.Success)
}

/*
TestGet_UnknownSession maps a missing session to a 404.
*/
func TestGet_UnknownSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Get(context.Background(), "no-such-session")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 404, ae.HTTPStatus)
}
