/*
Package wizard drives the multi-step submission form.

Each form session is a server-held state machine: the client creates a
session, patches field values into it, and asks to advance. Advancing runs
the current step's validation rules; a failing step refuses the transition
and returns every field error at once. Going back is always allowed and
clears nothing. Submission re-validates every step, hands the aggregate to
the ingestion pipeline, and wipes the session on confirmed success so no
contributor data outlives the flow.

Sessions live in Redis under a TTL; an in-memory store backs tests and
single-process development.
*/
package wizard

import (
	"time"

	"github.com/majallahq/majalla/internal/submission"
)

// Step is the wizard's position in the flow.
type Step int

const (
	StepEmailCheck  Step = 0
	StepAuthorInfo  Step = 1
	StepArticleInfo Step = 2
	StepReview      Step = 3
)

// FormData is the single mutable aggregate a session accumulates across
// steps. Field shapes are shared with the ingestion payload so submit needs
// no translation.
type FormData struct {
	Author  submission.AuthorInput  `json:"author"`
	Article submission.ArticleInput `json:"article"`
	Review  submission.ReviewInput  `json:"review"`
}

// Patch carries a partial update to a session's form data. Only non-nil
// sections are replaced; patching never validates.
type Patch struct {
	Author  *submission.AuthorInput  `json:"author,omitempty"`
	Article *submission.ArticleInput `json:"article,omitempty"`
	Review  *submission.ReviewInput  `json:"review,omitempty"`
}

// Session is one contributor's in-progress submission.
type Session struct {
	ID   string   `json:"id"`
	Step Step     `json:"step"`
	Data FormData `json:"data"`

	// EmailChecked records that the step-0 probe ran, and AuthorKnown
	// whether it found an existing author (whose fields were pre-filled).
	EmailChecked bool `json:"email_checked"`
	AuthorKnown  bool `json:"author_known"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
