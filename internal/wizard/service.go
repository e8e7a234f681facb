package wizard

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/majallahq/majalla/internal/core/author"
	"github.com/majallahq/majalla/internal/core/category"
	"github.com/majallahq/majalla/internal/formconfig"
	"github.com/majallahq/majalla/internal/platform/apperr"
	"github.com/majallahq/majalla/internal/platform/dberr"
	"github.com/majallahq/majalla/internal/platform/metrics"
	"github.com/majallahq/majalla/internal/platform/sec"
	"github.com/majallahq/majalla/internal/platform/validate"
	"github.com/majallahq/majalla/internal/submission"
	"github.com/majallahq/majalla/pkg/uuidv7"
)

type Service struct {
	store       SessionStore
	submissions *submission.Service
	forms       *formconfig.Service
	categories  *category.Service
	logger      *slog.Logger
}

func NewService(
	store SessionStore,
	submissions *submission.Service,
	forms *formconfig.Service,
	categories *category.Service,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:       store,
		submissions: submissions,
		forms:       forms,
		categories:  categories,
		logger:      logger,
	}
}

// Start opens a new session at the email-check step. An authenticated caller
// skips the probe: their email is trusted, existing author fields are
// pre-filled, and the session opens at the author-info step.
func (service *Service) Start(ctx context.Context, claims *sec.AuthClaims) (*Session, error) {
	now := time.Now().UTC()
	session := &Session{
		ID:        uuidv7.New(),
		Step:      StepEmailCheck,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if claims != nil && claims.Email != "" {
		session.Data.Author.Email = claims.Email
		session.Data.Author.Name = claims.Name
		session.EmailChecked = true
		session.Step = StepAuthorInfo

		probe, err := service.submissions.CheckEmail(ctx, claims.Email)
		if err == nil && probe.Exists {
			session.Data.Author = *probe.Author
			session.AuthorKnown = true
		}
	}

	if err := service.store.Save(ctx, session); err != nil {
		return nil, err
	}

	metrics.WizardSessionsStarted.Inc()
	service.logger.Info("wizard_session_started",
		slog.String("session_id", session.ID),
		slog.Int("step", int(session.Step)),
	)
	return session, nil
}

// Get loads a session.
func (service *Service) Get(ctx context.Context, id string) (*Session, error) {
	session, err := service.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Session")
		}
		return nil, err
	}
	return session, nil
}

// UpdateFields merges a patch into the session's form data. Patching never
// validates; rules run only when the contributor tries to advance or submit.
func (service *Service) UpdateFields(ctx context.Context, id string, patch Patch) (*Session, error) {
	session, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Author != nil {
		session.Data.Author = *patch.Author
	}
	if patch.Article != nil {
		session.Data.Article = *patch.Article
	}
	if patch.Review != nil {
		session.Data.Review = *patch.Review
	}
	session.UpdatedAt = time.Now().UTC()

	if err := service.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Advance validates the current step and moves forward when it passes. A
// failing step refuses the transition and returns every field error.
func (service *Service) Advance(ctx context.Context, id string) (*Session, error) {
	session, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case StepEmailCheck:
		if err := service.probeEmail(ctx, session); err != nil {
			service.refuse(session.Step)
			return nil, err
		}

	case StepAuthorInfo, StepArticleInfo:
		schema := service.forms.Resolve(ctx)
		v := &validate.Validator{}
		if session.Step == StepAuthorInfo {
			submission.ValidateAuthor(v, session.Data.Author, schema.Messages)
		} else {
			submission.ValidateArticle(v, session.Data.Article, schema, service.categories.Names(ctx))
		}
		if v.HasErrors() {
			service.refuse(session.Step)
			return nil, v.Err()
		}

	case StepReview:
		return nil, apperr.Conflict("Session is already at the review step")
	}

	session.Step++
	session.UpdatedAt = time.Now().UTC()

	if err := service.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back moves one step backwards. Always allowed, clears nothing.
func (service *Service) Back(ctx context.Context, id string) (*Session, error) {
	session, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Step > StepEmailCheck {
		session.Step--
		session.UpdatedAt = time.Now().UTC()
		if err := service.store.Save(ctx, session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

// Submit runs the full submission. The one-shot guard rejects a second
// submit while one is in flight; every step's rules are re-run so a stale or
// tampered session cannot slip past the step guards. On confirmed success
// the session is wiped.
func (service *Service) Submit(ctx context.Context, id string, cover *submission.FileUpload, files map[string]submission.FileUpload, clientIP string) (*submission.Result, error) {
	session, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	acquired, err := service.store.AcquireSubmitLock(ctx, id)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, apperr.Conflict("A submission for this session is already in progress")
	}

	result, err := service.submit(ctx, session, cover, files, clientIP)
	if err != nil {
		// Free the guard so the contributor can correct and retry.
		if unlockErr := service.store.ReleaseSubmitLock(ctx, id); unlockErr != nil {
			service.logger.Warn("wizard_submit_unlock_failed",
				slog.String("session_id", id),
				slog.Any("error", unlockErr),
			)
		}
		return nil, err
	}

	// Confirmed success: wipe the form data.
	if err := service.store.Delete(ctx, id); err != nil {
		service.logger.Warn("wizard_session_wipe_failed",
			slog.String("session_id", id),
			slog.Any("error", err),
		)
	}

	service.logger.Info("wizard_session_submitted",
		slog.String("session_id", id),
		slog.String("article_id", result.ArticleID),
	)
	return result, nil
}

func (service *Service) submit(ctx context.Context, session *Session, cover *submission.FileUpload, files map[string]submission.FileUpload, clientIP string) (*submission.Result, error) {
	schema := service.forms.Resolve(ctx)

	v := &validate.Validator{}
	submission.ValidateAuthor(v, session.Data.Author, schema.Messages)
	submission.ValidateArticle(v, session.Data.Article, schema, service.categories.Names(ctx))
	submission.ValidateCover(v, cover, schema)
	submission.ValidateReview(v, session.Data.Review, session.Data.Author.WebsiteURL, schema.Messages)
	if v.HasErrors() {
		service.refuse(StepReview)
		return nil, v.Err()
	}

	return service.submissions.Create(ctx, &submission.Payload{
		Author:   session.Data.Author,
		Article:  session.Data.Article,
		Review:   session.Data.Review,
		Cover:    cover,
		Files:    files,
		ClientIP: clientIP,
	})
}

// probeEmail runs the step-0 email check and pre-fills author fields when a
// known author comes back. The probe's projection is already sanitized.
func (service *Service) probeEmail(ctx context.Context, session *Session) error {
	if !validate.IsEmail(session.Data.Author.Email) {
		return validate.RequiredError(author.FieldEmail, formconfig.Fallback().Messages.EmailInvalid)
	}

	probe, err := service.submissions.CheckEmail(ctx, session.Data.Author.Email)
	if err != nil {
		return err
	}

	session.EmailChecked = true
	if probe.Exists {
		email := session.Data.Author.Email
		session.Data.Author = *probe.Author
		session.Data.Author.Email = email
		session.AuthorKnown = true
	}
	return nil
}

func (service *Service) refuse(step Step) {
	metrics.WizardStepRefusals.WithLabelValues(strconv.Itoa(int(step))).Inc()
}
