package article

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/majallahq/majalla/pkg/pagination"
	"github.com/majallahq/majalla/pkg/slug"
	"github.com/majallahq/majalla/pkg/wordcount"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateDraft persists a new draft article.
//
// The slug derives from the title, preserving Arabic script. On collision a
// numeric suffix is appended (-1, -2, ...) until a free slug is found. Blocks
// are normalized first so the stored body is never empty, and the word count
// is recomputed server-side from the normalized blocks.
func (service *Service) CreateDraft(ctx context.Context, a *Article) (*Article, error) {
	a.Blocks = Normalize(a.Blocks)
	a.WordCount = wordcount.Count(PlainText(a.Blocks))
	a.Status = StatusDraft
	a.IsFeatured = false

	base := slug.From(a.Title)
	if base == "" {
		base = slug.Fallback()
	}

	unique, err := service.uniqueSlug(ctx, base)
	if err != nil {
		return nil, err
	}
	a.Slug = unique

	if err := service.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	service.logger.Info("article_draft_created",
		slog.String("article_id", a.ID),
		slog.String("slug", a.Slug),
		slog.Int("word_count", a.WordCount),
	)
	return a, nil
}

// ListDrafts returns the editorial review queue, newest first.
func (service *Service) ListDrafts(ctx context.Context, params pagination.Params) ([]Article, int, error) {
	return service.repo.ListByStatus(ctx, StatusDraft, params)
}

// uniqueSlug probes the base slug, then base-1, base-2, ... until one is
// free. The probe loop races concurrent inserts only within the same second
// for the same title, which the unique index on slug still catches.
func (service *Service) uniqueSlug(ctx context.Context, base string) (string, error) {
	candidate := base
	for suffix := 1; ; suffix++ {
		exists, err := service.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}
