package category

import (
	"context"
	"log/slog"

	"github.com/majallahq/majalla/internal/platform/metrics"
)

// fallbackCategories mirrors the seed data so the submission form still
// renders a section picker when the database is unreachable. Keep in sync
// with the category seed migration.
var fallbackCategories = []Category{
	{ID: "fallback-culture", Name: "ثقافة", Slug: "ثقافه", SortOrder: 1},
	{ID: "fallback-society", Name: "مجتمع", Slug: "مجتمع", SortOrder: 2},
	{ID: "fallback-economy", Name: "اقتصاد", Slug: "اقتصاد", SortOrder: 3},
	{ID: "fallback-tech", Name: "تقنية", Slug: "تقنيه", SortOrder: 4},
	{ID: "fallback-opinion", Name: "رأي", Slug: "راي", SortOrder: 5},
	{ID: "fallback-literature", Name: "أدب", Slug: "ادب", SortOrder: 6},
	{ID: "fallback-science", Name: "علوم", Slug: "علوم", SortOrder: 7},
	{ID: "fallback-arts", Name: "فنون", Slug: "فنون", SortOrder: 8},
}

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

// List returns the sections in display order. A store failure degrades to
// the built-in fallback list instead of erroring, so the public submission
// form never loses its section picker.
func (service *Service) List(ctx context.Context) []Category {
	categories, err := service.repo.List(ctx)
	if err != nil {
		service.logger.Warn("category_list_fallback", slog.Any("error", err))
		metrics.DegradationEvents.WithLabelValues(metrics.KindCategoryFallback).Inc()
		return fallbackCategories
	}
	return categories
}

// Names returns the known section names, used to validate submissions.
func (service *Service) Names(ctx context.Context) []string {
	categories := service.List(ctx)
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}
