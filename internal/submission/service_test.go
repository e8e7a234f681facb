package submission_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

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
	"github.com/majallahq/majalla/internal/submission"
	"github.com/majallahq/majalla/pkg/pagination"
)

// # Test Fakes

type fakeAuthorRepo struct {
	byEmail map[string]*author.Author
	creates int
}

func (f *fakeAuthorRepo) FindByEmail(_ context.Context, email string) (*author.Author, error) {
	if a, ok := f.byEmail[email]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeAuthorRepo) Create(_ context.Context, a *author.Author) error {
	f.creates++
	if a.ID == "" {
		a.ID = fmt.Sprintf("author-%d", f.creates)
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
	slugs    map[string]bool
	articles []article.Article
}

func (f *fakeArticleRepo) Create(_ context.Context, a *article.Article) error {
	if a.ID == "" {
		a.ID = fmt.Sprintf("article-%d", len(f.articles)+1)
	}
	f.slugs[a.Slug] = true
	f.articles = append(f.articles, *a)
	return nil
}

func (f *fakeArticleRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	return f.slugs[slug], nil
}

func (f *fakeArticleRepo) ListByStatus(_ context.Context, status article.Status, _ pagination.Params) ([]article.Article, int, error) {
	return f.articles, len(f.articles), nil
}

type fakeCategoryRepo struct{}

func (fakeCategoryRepo) List(_ context.Context) ([]category.Category, error) {
	return []category.Category{
		{ID: "c-1", Name: "ثقافة"},
		{ID: "c-2", Name: "مجتمع"},
	}, nil
}

// fakeFormRepo misses on purpose: every test runs against the fallback schema.
type fakeFormRepo struct{}

func (fakeFormRepo) Get(_ context.Context, _ string) ([]byte, error) {
	return nil, dberr.ErrNotFound
}

type fakeStorage struct {
	uploads []media.Upload
}

func (f *fakeStorage) Upload(_ context.Context, upload media.Upload) (*media.Record, error) {
	f.uploads = append(f.uploads, upload)
	return &media.Record{
		ID:   fmt.Sprintf("media-%d", len(f.uploads)),
		Name: upload.Name,
		Size: upload.Size,
	}, nil
}

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, message mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, message)
	return nil
}

// # Harness

type pipeline struct {
	service  *submission.Service
	authors  *fakeAuthorRepo
	articles *fakeArticleRepo
	storage  *fakeStorage
	mail     *fakeMailer
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authors := &fakeAuthorRepo{byEmail: map[string]*author.Author{}}
	articles := &fakeArticleRepo{slugs: map[string]bool{}}
	storage := &fakeStorage{}
	mail := &fakeMailer{}

	service := submission.NewService(
		author.NewService(authors, logger),
		article.NewService(articles, logger),
		category.NewService(fakeCategoryRepo{}, logger),
		formconfig.NewService(fakeFormRepo{}, logger),
		storage,
		mail,
		submission.NewMemoryAttemptStore(),
		logger,
	)

	return &pipeline{service: service, authors: authors, articles: articles, storage: storage, mail: mail}
}

func validPayload() *submission.Payload {
	return &submission.Payload{
		Author: submission.AuthorInput{
			Name:         "Sara Ahmed",
			Email:        "sara@example.com",
			Title:        "كاتبة",
			Organization: "مؤسسة النشر",
		},
		Article: submission.ArticleInput{
			Title:       "نحو قيادة فعالة في المؤسسات",
			Description: "وصف تفصيلي للمقال يشرح محتواه للمحررين",
			Categories:  []string{"ثقافة"},
			Content:     strings.TrimSpace(strings.Repeat("كلمة ", 120)),
		},
		Review:   submission.ReviewInput{Consent: true},
		ClientIP: "203.0.113.7",
	}
}

// # Scenarios

/*
TestCreate_HappyPath covers a new contributor submitting a valid Arabic
article with no cover image.
*/
func TestCreate_HappyPath(t *testing.T) {
	p := newPipeline(t)

	result, err := p.service.Create(context.Background(), validPayload())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.ArticleID)
	assert.True(t, strings.HasPrefix(result.Slug, "نحو-قياده-فعاله"), "got slug %q", result.Slug)

	// A new author record exists for the email.
	created, findErr := p.authors.FindByEmail(context.Background(), "sara@example.com")
	require.NoError(t, findErr)
	assert.Equal(t, "Sara Ahmed", created.Name)

	// The draft is persisted with the invariants the pipeline guarantees.
	require.Len(t, p.articles.articles, 1)
	draft := p.articles.articles[0]
	assert.Equal(t, article.StatusDraft, draft.Status)
	assert.False(t, draft.IsFeatured)
	assert.Equal(t, 120, draft.WordCount)
	assert.NotEmpty(t, draft.Blocks)

	// Confirmation email went out.
	require.Len(t, p.mail.sent, 1)
	assert.Equal(t, "sara@example.com", p.mail.sent[0].To)
}

/*
TestCreate_SlugCollisionSuffix verifies that two identical titles yield
distinct slugs, the second suffixed -1.
*/
func TestCreate_SlugCollisionSuffix(t *testing.T) {
	p := newPipeline(t)

	first, err := p.service.Create(context.Background(), validPayload())
	require.NoError(t, err)

	second := validPayload()
	second.Author.Email = "other@example.com"
	secondResult, err := p.service.Create(context.Background(), second)
	require.NoError(t, err)

	assert.NotEqual(t, first.Slug, secondResult.Slug)
	assert.Equal(t, first.Slug+"-1", secondResult.Slug)
}

/*
TestCreate_RateLimit verifies the 3-per-hour ledger: the 4th submission from
the same email+IP is rejected.
*/
func TestCreate_RateLimit(t *testing.T) {
	p := newPipeline(t)

	for i := 0; i < 3; i++ {
		_, err := p.service.Create(context.Background(), validPayload())
		require.NoError(t, err, "submission %d should pass", i+1)
	}

	_, err := p.service.Create(context.Background(), validPayload())
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "RATE_LIMITED", ae.Code)

	// A different IP is a different ledger key.
	fresh := validPayload()
	fresh.ClientIP = "198.51.100.4"
	_, err = p.service.Create(context.Background(), fresh)
	assert.NoError(t, err)
}

/*
TestCreate_OversizedCover rejects a 6MB cover before any store writes.
*/
func TestCreate_OversizedCover(t *testing.T) {
	p := newPipeline(t)

	payload := validPayload()
	payload.Cover = &submission.FileUpload{
		Name:        "cover.jpg",
		ContentType: "image/jpeg",
		Size:        6 << 20,
	}

	_, err := p.service.Create(context.Background(), payload)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.NotEmpty(t, ae.Details)
	assert.Equal(t, article.FieldCoverImage, ae.Details[0].Field)

	// Nothing was written anywhere.
	assert.Zero(t, p.authors.creates)
	assert.Empty(t, p.articles.articles)
	assert.Empty(t, p.storage.uploads)
}

/*
TestCreate_MaliciousBlock rejects a script payload citing the blocks field,
with no article persisted.
*/
func TestCreate_MaliciousBlock(t *testing.T) {
	p := newPipeline(t)

	payload := validPayload()
	payload.Article.Content = ""
	payload.Article.Blocks = []article.Block{
		{Type: article.BlockRichText, Text: strings.TrimSpace(strings.Repeat("كلمة ", 60)) + ` <script>alert(1)</script>`},
	}

	_, err := p.service.Create(context.Background(), payload)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.NotEmpty(t, ae.Details)
	assert.Equal(t, article.FieldBlocks, ae.Details[0].Field)
	assert.Empty(t, p.articles.articles)
}

/*
TestCreate_WordCountBoundaries checks the inclusive [50, 5000] word bounds.
*/
func TestCreate_WordCountBoundaries(t *testing.T) {
	tests := []struct {
		words    int
		accepted bool
	}{
		{49, false},
		{50, true},
		{5000, true},
		{5001, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("words_%d", tt.words), func(t *testing.T) {
			p := newPipeline(t)

			payload := validPayload()
			payload.Article.Content = strings.TrimSpace(strings.Repeat("كلمة ", tt.words))

			_, err := p.service.Create(context.Background(), payload)
			if tt.accepted {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, article.FieldContent, ae.Details[0].Field)
			}
		})
	}
}

/*
TestCreate_ExistingAuthorBioPreserved verifies the non-destructive merge at
pipeline level: an empty incoming bio does not blank the stored one.
*/
func TestCreate_ExistingAuthorBioPreserved(t *testing.T) {
	p := newPipeline(t)
	p.authors.byEmail["sara@example.com"] = &author.Author{
		ID:    "a-1",
		Name:  "Sara",
		Email: "sara@example.com",
		Bio:   "نبذة محفوظة سابقاً",
	}

	_, err := p.service.Create(context.Background(), validPayload())
	require.NoError(t, err)

	stored, findErr := p.authors.FindByEmail(context.Background(), "sara@example.com")
	require.NoError(t, findErr)
	assert.Equal(t, "نبذة محفوظة سابقاً", stored.Bio)
	assert.Equal(t, "Sara Ahmed", stored.Name)
}

/*
TestCreate_CoverAndBlockImages uploads a valid cover and resolves inline
image blocks: a valid file is uploaded, an invalid one drops its block, and
a block whose file never arrived survives without its image.
*/
func TestCreate_CoverAndBlockImages(t *testing.T) {
	p := newPipeline(t)

	prose := strings.TrimSpace(strings.Repeat("كلمة ", 80))
	payload := validPayload()
	payload.Article.Content = ""
	payload.Article.Blocks = []article.Block{
		{Type: article.BlockRichText, Text: prose},
		{Type: article.BlockImage, FileRef: "good-ref"},
		{Type: article.BlockImage, FileRef: "bad-ref"},
		{Type: article.BlockImage, FileRef: "missing-ref"},
	}
	payload.Cover = &submission.FileUpload{
		Name:        "cover.png",
		ContentType: "image/png",
		Size:        1 << 20,
		Data:        []byte("png-bytes"),
	}
	payload.Files = map[string]submission.FileUpload{
		"good-ref": {Name: "inline.jpg", ContentType: "image/jpeg", Size: 1024, Data: []byte("jpg")},
		"bad-ref":  {Name: "clip.gif", ContentType: "image/gif", Size: 1024, Data: []byte("gif")},
	}

	result, err := p.service.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.True(t, result.Success)

	// Cover plus one valid inline image were uploaded.
	require.Len(t, p.storage.uploads, 2)
	assert.Equal(t, "cover.png", p.storage.uploads[0].Name)
	assert.Equal(t, "inline.jpg", p.storage.uploads[1].Name)

	draft := p.articles.articles[0]
	assert.NotEmpty(t, draft.CoverMediaID)

	// The gif block was dropped; the missing-file block kept its place
	// with the dangling reference removed.
	require.Len(t, draft.Blocks, 3)
	assert.Equal(t, article.BlockRichText, draft.Blocks[0].Type)
	assert.Equal(t, article.BlockImage, draft.Blocks[1].Type)
	assert.NotEmpty(t, draft.Blocks[1].MediaID)
	assert.Empty(t, draft.Blocks[1].FileRef)
	assert.Equal(t, article.BlockImage, draft.Blocks[2].Type)
	assert.Empty(t, draft.Blocks[2].MediaID)
	assert.Empty(t, draft.Blocks[2].FileRef)
}

/*
TestCreate_PublishDateCarried verifies the optional requested publication
date survives the pipeline into the persisted draft, and that its absence
leaves the draft undated.
*/
func TestCreate_PublishDateCarried(t *testing.T) {
	p := newPipeline(t)

	publishAt := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	payload := validPayload()
	payload.Article.PublishAt = &publishAt

	_, err := p.service.Create(context.Background(), payload)
	require.NoError(t, err)

	undated := validPayload()
	undated.Author.Email = "other@example.com"
	_, err = p.service.Create(context.Background(), undated)
	require.NoError(t, err)

	require.Len(t, p.articles.articles, 2)
	require.NotNil(t, p.articles.articles[0].PublishAt)
	assert.Equal(t, publishAt, *p.articles.articles[0].PublishAt)
	assert.Nil(t, p.articles.articles[1].PublishAt)
}

/*
TestCreate_ReviewNotesForwarded verifies the review-step meta fields reach
the confirmation email sanitized, rather than being validated and dropped.
*/
func TestCreate_ReviewNotesForwarded(t *testing.T) {
	p := newPipeline(t)

	payload := validPayload()
	payload.Review.PreviousPublications = "مقالات سابقة في مجلة أخرى"
	payload.Review.SocialLinks = "https://linkedin.com/in/sara"
	payload.Review.AdditionalNotes = `يرجى النشر قريباً <script>alert(1)</script>`

	_, err := p.service.Create(context.Background(), payload)
	require.NoError(t, err)

	require.Len(t, p.mail.sent, 1)
	meta, ok := p.mail.sent[0].Data["submission"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "مقالات سابقة في مجلة أخرى", meta["previous_publications"])
	assert.Equal(t, "https://linkedin.com/in/sara", meta["social_links"])
	assert.Contains(t, meta["additional_notes"], "يرجى النشر قريباً")
	assert.NotContains(t, meta["additional_notes"], "<script")
}

/*
TestCreate_EmailFailureDoesNotFail verifies that a broken mailer never sinks
an otherwise successful submission.
*/
func TestCreate_EmailFailureDoesNotFail(t *testing.T) {
	p := newPipeline(t)
	p.mail.err = fmt.Errorf("smtp: connection refused")

	result, err := p.service.Create(context.Background(), validPayload())

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, p.articles.articles, 1)
}

/*
TestCheckEmail_Idempotent probes the same unknown email twice: exists stays
false and no record is created.
*/
func TestCheckEmail_Idempotent(t *testing.T) {
	p := newPipeline(t)

	for i := 0; i < 2; i++ {
		result, err := p.service.CheckEmail(context.Background(), "unknown@example.com")
		require.NoError(t, err)
		assert.False(t, result.Exists)
		assert.Nil(t, result.Author)
	}
	assert.Zero(t, p.authors.creates)
}

/*
TestCheckEmail_SanitizedProjection returns stored fields stripped of any
markup for wizard pre-fill.
*/
func TestCheckEmail_SanitizedProjection(t *testing.T) {
	p := newPipeline(t)
	p.authors.byEmail["sara@example.com"] = &author.Author{
		ID:    "a-1",
		Name:  `Sara <script>alert(1)</script>`,
		Email: "sara@example.com",
		Bio:   "<b>نبذة</b>",
	}

	result, err := p.service.CheckEmail(context.Background(), "sara@example.com")

	require.NoError(t, err)
	assert.True(t, result.Exists)
	require.NotNil(t, result.Author)
	assert.NotContains(t, result.Author.Name, "<script")
	assert.NotContains(t, result.Author.Bio, "<b>")
	assert.Contains(t, result.Author.Bio, "نبذة")
}

/*
TestCheckEmail_InvalidFormat rejects malformed emails with a field error.
*/
func TestCheckEmail_InvalidFormat(t *testing.T) {
	p := newPipeline(t)

	_, err := p.service.CheckEmail(context.Background(), "not-an-email")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 400, ae.HTTPStatus)
}
