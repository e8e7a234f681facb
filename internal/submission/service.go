/*
Package submission implements the article submission ingestion pipeline.

A submission passes through an ordered sequence of gates: rate limiting,
structural validation, sanitization, author upsert, image uploads, slug
generation, draft creation and a best-effort confirmation email. Any gate
failure short-circuits the rest and maps to one structured error response.

# Degradation policy

Secondary assets never sink a submission. A failed inline image upload drops
that block; a failed author merge keeps the stale record; a failed email is
logged. Each silent branch increments a metrics counter so the degradation
rate stays visible to operators.
*/
package submission

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/majallahq/majalla/internal/core/article"
	"github.com/majallahq/majalla/internal/core/author"
	"github.com/majallahq/majalla/internal/core/category"
	"github.com/majallahq/majalla/internal/formconfig"
	"github.com/majallahq/majalla/internal/mailer"
	"github.com/majallahq/majalla/internal/media"
	"github.com/majallahq/majalla/internal/platform/apperr"
	"github.com/majallahq/majalla/internal/platform/constants"
	"github.com/majallahq/majalla/internal/platform/dberr"
	"github.com/majallahq/majalla/internal/platform/metrics"
	"github.com/majallahq/majalla/internal/platform/sanitize"
	"github.com/majallahq/majalla/internal/platform/validate"
)

// Service runs the submission ingestion pipeline.
type Service struct {
	authors    *author.Service
	articles   *article.Service
	categories *category.Service
	forms      *formconfig.Service
	storage    media.Storage
	mail       mailer.Mailer
	attempts   AttemptStore
	logger     *slog.Logger
}

func NewService(
	authors *author.Service,
	articles *article.Service,
	categories *category.Service,
	forms *formconfig.Service,
	storage media.Storage,
	mail mailer.Mailer,
	attempts AttemptStore,
	logger *slog.Logger,
) *Service {
	return &Service{
		authors:    authors,
		articles:   articles,
		categories: categories,
		forms:      forms,
		storage:    storage,
		mail:       mail,
		attempts:   attempts,
		logger:     logger,
	}
}

// CheckEmail probes for an existing author. The probe never creates a
// record; an unknown email just reports exists=false. A found author is
// returned as a sanitized projection for wizard pre-fill.
func (service *Service) CheckEmail(ctx context.Context, email string) (*EmailCheckResult, error) {
	email = strings.ToLower(sanitize.Text(email))
	if !validate.IsEmail(email) {
		return nil, apperr.FieldValidationError(author.FieldEmail, formconfig.Fallback().Messages.EmailInvalid)
	}

	found, err := service.authors.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return &EmailCheckResult{Exists: false}, nil
		}
		return nil, err
	}

	return &EmailCheckResult{
		Exists: true,
		Author: &AuthorInput{
			Name:         sanitize.Text(found.Name),
			Email:        found.Email,
			Phone:        sanitize.Text(found.Phone),
			Title:        sanitize.Text(found.Title),
			Organization: sanitize.Text(found.Organization),
			LinkedInURL:  sanitize.Text(found.LinkedInURL),
			Bio:          sanitize.Text(found.Bio),
			WebsiteURL:   sanitize.Text(found.WebsiteURL),
		},
	}, nil
}

// Create runs the ordered ingestion gates over one submission. Any gate
// failure short-circuits the rest of the pipeline.
//
// Gate order: rate limit, structural validation, sanitization, author
// upsert, cover upload, inline block uploads, slug, article creation,
// notification. Sanitization and slug generation cannot fail; block image
// failures and email failures degrade silently (logged and counted).
func (service *Service) Create(ctx context.Context, payload *Payload) (*Result, error) {
	schema := service.forms.Resolve(ctx)

	// 1. Rate limit. The attempt is recorded as soon as the gate passes,
	// so even submissions that later fail validation consume quota.
	key := rateKey(payload.Author.Email, payload.ClientIP)
	count, err := service.attempts.CountAttempts(ctx, key)
	if err != nil {
		return nil, err
	}
	if count >= constants.MaxSubmissionsPerWindow {
		service.logger.Warn("submission_rate_limited", slog.String("key", key))
		metrics.SubmissionsRejected.WithLabelValues(metrics.GateRateLimit).Inc()
		return nil, apperr.RateLimited()
	}
	if err := service.attempts.RecordAttempt(ctx, key); err != nil {
		return nil, err
	}

	// 2. Structural validation. Every field error is collected and returned
	// together so a misbehaving client still gets one actionable response.
	v := &validate.Validator{}
	ValidateAuthor(v, payload.Author, schema.Messages)
	ValidateArticle(v, payload.Article, schema, service.categories.Names(ctx))
	ValidateCover(v, payload.Cover, schema)
	ValidateReview(v, payload.Review, payload.Author.WebsiteURL, schema.Messages)
	if v.HasErrors() {
		metrics.SubmissionsRejected.WithLabelValues(metrics.GateValidation).Inc()
		return nil, v.Err()
	}

	// 3. Sanitization. Never fails; hostile fragments come out stripped.
	sanitized := sanitizePayload(payload)
	blocks := contentBlocks(sanitized.Article)

	// 4. Author upsert (merge-by-email; races resolved in the service).
	upserted, err := service.authors.Upsert(ctx, &author.Author{
		Name:         sanitized.Author.Name,
		Email:        sanitized.Author.Email,
		Phone:        sanitized.Author.Phone,
		Title:        sanitized.Author.Title,
		Organization: sanitized.Author.Organization,
		LinkedInURL:  sanitized.Author.LinkedInURL,
		Bio:          sanitized.Author.Bio,
		WebsiteURL:   sanitized.Author.WebsiteURL,
	})
	if err != nil {
		return nil, err
	}

	// 5. Cover image upload. A failure here aborts: the contributor chose
	// this image deliberately, silently losing it is not acceptable.
	coverMediaID := ""
	if payload.Cover != nil {
		record, err := service.storage.Upload(ctx, media.Upload{
			Name:        payload.Cover.Name,
			ContentType: payload.Cover.ContentType,
			Size:        payload.Cover.Size,
			Data:        payload.Cover.Data,
		})
		if err != nil {
			service.logger.Error("cover_upload_failed", slog.Any("error", err))
			metrics.SubmissionsRejected.WithLabelValues(metrics.GateCoverImage).Inc()
			return nil, apperr.Internal(err)
		}
		coverMediaID = record.ID
	}

	// 6. Inline block images. Individually best-effort: a failed upload
	// drops that block alone, a missing file keeps the block imageless.
	blocks = service.resolveBlockImages(ctx, blocks, payload.Files, schema)

	// 7+8. Slug generation and draft creation happen inside the article
	// service; slug collisions resolve automatically and never surface.
	draft, err := service.articles.CreateDraft(ctx, &article.Article{
		Title:        sanitized.Article.Title,
		Description:  sanitized.Article.Description,
		Blocks:       blocks,
		Categories:   sanitized.Article.Categories,
		Keywords:     sanitized.Article.Keywords,
		AuthorID:     upserted.ID,
		CoverMediaID: coverMediaID,
		PublishAt:    sanitized.Article.PublishAt,
	})
	if err != nil {
		metrics.SubmissionsRejected.WithLabelValues(metrics.GateStorage).Inc()
		return nil, err
	}

	// 9. Confirmation email, best-effort. The draft already exists. The
	// review-step notes ride along so editors see them in the thread.
	service.sendConfirmation(ctx, upserted, draft, sanitized.Review, coverMediaID != "")

	metrics.SubmissionsAccepted.Inc()
	service.logger.Info("submission_accepted",
		slog.String("article_id", draft.ID),
		slog.String("slug", draft.Slug),
		slog.String("author_id", upserted.ID),
	)

	return &Result{Success: true, ArticleID: draft.ID, Slug: draft.Slug}, nil
}

// rateKey combines the submitted email and caller IP into one ledger key.
func rateKey(email, ip string) string {
	return strings.ToLower(strings.TrimSpace(email)) + "|" + ip
}

// sanitizePayload strips every text field. Article block text uses the
// uncapped body variant; all other fields get the per-field rune budget.
func sanitizePayload(payload *Payload) *Payload {
	out := *payload

	out.Author = AuthorInput{
		Name:         sanitize.Text(payload.Author.Name),
		Email:        strings.ToLower(sanitize.Text(payload.Author.Email)),
		Phone:        sanitize.Text(payload.Author.Phone),
		Title:        sanitize.Text(payload.Author.Title),
		Organization: sanitize.Text(payload.Author.Organization),
		LinkedInURL:  sanitize.Text(payload.Author.LinkedInURL),
		Bio:          sanitize.Text(payload.Author.Bio),
		WebsiteURL:   sanitize.Text(payload.Author.WebsiteURL),
	}

	out.Article.Title = sanitize.Text(payload.Article.Title)
	out.Article.Description = sanitize.Text(payload.Article.Description)
	out.Article.Keywords = sanitize.Text(payload.Article.Keywords)

	out.Review.PreviousPublications = sanitize.Text(payload.Review.PreviousPublications)
	out.Review.SocialLinks = sanitize.Text(payload.Review.SocialLinks)
	out.Review.AdditionalNotes = sanitize.Text(payload.Review.AdditionalNotes)

	categories := make([]string, 0, len(payload.Article.Categories))
	for _, c := range payload.Article.Categories {
		if cleaned := sanitize.Text(c); cleaned != "" {
			categories = append(categories, cleaned)
		}
	}
	out.Article.Categories = categories

	blocks := make([]article.Block, len(payload.Article.Blocks))
	for i, b := range payload.Article.Blocks {
		b.Text = sanitize.Body(b.Text)
		b.Alt = sanitize.Text(b.Alt)
		blocks[i] = b
	}
	out.Article.Blocks = blocks

	return &out
}

// contentBlocks returns the structured block sequence, converting raw
// markdown when the client sent plain content.
func contentBlocks(in ArticleInput) []article.Block {
	if len(in.Blocks) > 0 {
		return in.Blocks
	}
	return article.FromMarkdown(in.Content)
}

// resolveBlockImages uploads every image block that still references a file
// placeholder. Failure handling is per-block: a rejected file or a failed
// upload drops that block and counts a degradation event; a block whose
// referenced file never arrived keeps its place with the reference removed.
func (service *Service) resolveBlockImages(ctx context.Context, blocks []article.Block, files map[string]FileUpload, schema formconfig.Schema) []article.Block {
	maxBytes := int64(schema.MaxFileSizeMB) << 20

	out := make([]article.Block, 0, len(blocks))
	for _, block := range blocks {
		if block.Type != article.BlockImage || block.MediaID != "" {
			out = append(out, block)
			continue
		}

		file, ok := files[block.FileRef]
		if !ok {
			block.FileRef = ""
			out = append(out, block)
			continue
		}

		if err := media.CheckFile(file.Name, file.ContentType, file.Size, maxBytes, schema.AllowedExtensions); err != nil {
			service.logger.Warn("block_image_dropped",
				slog.String("file_ref", block.FileRef),
				slog.Any("error", err),
			)
			metrics.DegradationEvents.WithLabelValues(metrics.KindBlockImageDropped).Inc()
			continue
		}

		record, err := service.storage.Upload(ctx, media.Upload{
			Name:        file.Name,
			ContentType: file.ContentType,
			Size:        file.Size,
			Data:        file.Data,
		})
		if err != nil {
			service.logger.Warn("block_image_dropped",
				slog.String("file_ref", block.FileRef),
				slog.Any("error", err),
			)
			metrics.DegradationEvents.WithLabelValues(metrics.KindBlockImageDropped).Inc()
			continue
		}

		block.MediaID = record.ID
		block.FileRef = ""
		out = append(out, block)
	}
	return out
}

// sendConfirmation emails the contributor. Failures are logged and counted,
// never returned: the draft is already durable.
func (service *Service) sendConfirmation(ctx context.Context, a *author.Author, draft *article.Article, review ReviewInput, hasCover bool) {
	message := mailer.Message{
		To:      a.Email,
		ToName:  a.Name,
		Subject: mailer.SubjectSubmissionReceived,
		Data: map[string]any{
			"app": map[string]any{
				"name": "مجلة",
				"url":  "https://majalla.net",
			},
			"author": map[string]any{
				"name":  a.Name,
				"email": a.Email,
			},
			"article": map[string]any{
				"title":       draft.Title,
				"description": draft.Description,
				"word_count":  draft.WordCount,
				"has_cover":   hasCover,
				"created_at":  draft.CreatedAt,
			},
			"submission": map[string]any{
				"previous_publications": review.PreviousPublications,
				"social_links":          review.SocialLinks,
				"additional_notes":      review.AdditionalNotes,
			},
		},
	}

	if err := service.mail.Send(ctx, message); err != nil {
		service.logger.Warn("confirmation_email_failed",
			slog.String("to", a.Email),
			slog.Any("error", err),
		)
		metrics.DegradationEvents.WithLabelValues(metrics.KindEmailFailed).Inc()
	}
}
