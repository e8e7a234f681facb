// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

// Package metrics exposes Prometheus counters for the submission pipeline.
//
// # Why counters for degradation?
//
// Two failure modes in the pipeline are deliberately silent towards the
// contributor (a dropped inline image, a stale author record kept after a
// failed merge). Operators still need to see their rates, so every silent
// branch increments a labelled counter here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SubmissionsAccepted counts fully ingested submissions.
	SubmissionsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "majalla", Name: "submissions_accepted_total", Help: "Number of submissions that produced a draft article."},
	)

	// SubmissionsRejected counts rejected submissions by pipeline gate.
	SubmissionsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "majalla", Name: "submissions_rejected_total", Help: "Number of rejected submissions by gate."},
		[]string{"gate"},
	)

	// DegradationEvents counts silent partial-degradation outcomes by kind.
	DegradationEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "majalla", Name: "submission_degradation_total", Help: "Silent degradation events (dropped block image, stale author kept, email failed)."},
		[]string{"kind"},
	)

	// WizardSessionsStarted counts wizard sessions created.
	WizardSessionsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "majalla", Name: "wizard_sessions_started_total", Help: "Number of wizard sessions started."},
	)

	// WizardStepRefusals counts refused forward transitions by step.
	WizardStepRefusals = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "majalla", Name: "wizard_step_refusals_total", Help: "Number of refused step advances by step index."},
		[]string{"step"},
	)
)

// Gate label values for [SubmissionsRejected].
const (
	GateRateLimit  = "rate_limit"
	GateValidation = "validation"
	GateCoverImage = "cover_image"
	GateStorage    = "storage"
)

// Kind label values for [DegradationEvents].
const (
	KindBlockImageDropped = "block_image_dropped"
	KindStaleAuthorKept   = "stale_author_kept"
	KindEmailFailed       = "email_failed"
	KindCategoryFallback  = "category_fallback"
	KindFormFallback      = "form_config_fallback"
)

// RegisterCollectors registers all pipeline collectors on the given registerer.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(
		SubmissionsAccepted,
		SubmissionsRejected,
		DegradationEvents,
		WizardSessionsStarted,
		WizardStepRefusals,
	)
}
