package formconfig

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/majallahq/majalla/internal/platform/metrics"
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

// Resolve returns the submission-form schema. A missing row, an unreadable
// payload, or a store failure all degrade to the built-in fallback; a
// readable but partial payload is filled field-by-field from the fallback.
// Resolution never fails: the form must always be able to render.
func (service *Service) Resolve(ctx context.Context) Schema {
	fallback := Fallback()

	payload, err := service.repo.Get(ctx, FormKey)
	if err != nil {
		service.logger.Warn("form_config_fallback", slog.Any("error", err))
		metrics.DegradationEvents.WithLabelValues(metrics.KindFormFallback).Inc()
		return fallback
	}

	var stored Schema
	if err := json.Unmarshal(payload, &stored); err != nil {
		service.logger.Warn("form_config_unreadable", slog.Any("error", err))
		metrics.DegradationEvents.WithLabelValues(metrics.KindFormFallback).Inc()
		return fallback
	}

	return merge(stored, fallback)
}
