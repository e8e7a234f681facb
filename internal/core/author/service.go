package author

import (
	"context"
	"errors"
	"log/slog"

	"github.com/majallahq/majalla/internal/platform/dberr"
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

// FindByEmail returns the author stored under the exact email, or
// dberr.ErrNotFound. Used by the email probe and the wizard pre-fill.
func (service *Service) FindByEmail(context context.Context, email string) (*Author, error) {
	return service.repo.FindByEmail(context, email)
}

// Upsert implements lookup-or-create keyed by email.
//
// # Race Handling
//
// Two near-simultaneous submissions from the same new email can both see "not
// found" and race the insert. The email column carries a unique constraint,
// so the loser gets SQLSTATE 23505: it re-fetches the winner's row and
// retries as a merge-update instead of failing.
//
// # Degradation
//
// If the merge-update itself fails, the pre-update record is returned rather
// than failing the whole submission. The stale outcome is logged and counted
// so operators can watch the degradation rate.
func (service *Service) Upsert(context context.Context, incoming *Author) (*Author, error) {
	existing, err := service.repo.FindByEmail(context, incoming.Email)

	if err != nil {
		if !errors.Is(err, dberr.ErrNotFound) {
			return nil, err
		}

		// Not found: create a fresh record.
		createErr := service.repo.Create(context, incoming)
		if createErr == nil {
			service.logger.Info("author_created", slog.String("author_id", incoming.ID))
			return incoming, nil
		}

		if !dberr.IsUniqueViolation(createErr) {
			return nil, createErr
		}

		// Lost the create race: someone inserted this email between our
		// lookup and our insert. Re-fetch and fall through to the update path.
		existing, err = service.repo.FindByEmail(context, incoming.Email)
		if err != nil {
			return nil, err
		}
	}

	merged := existing.Merge(incoming)

	if err := service.repo.Update(context, merged); err != nil {
		service.logger.Warn("author_update_failed_keeping_stale",
			slog.String("author_id", existing.ID),
			slog.Any("error", err),
		)
		metrics.DegradationEvents.WithLabelValues(metrics.KindStaleAuthorKept).Inc()
		return existing, nil
	}

	service.logger.Info("author_updated", slog.String("author_id", merged.ID))
	return merged, nil
}
