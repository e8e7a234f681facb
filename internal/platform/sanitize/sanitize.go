// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

/*
Package sanitize strips hostile markup from contributor-supplied text.

It is the single sanitization gate shared by the wizard pre-fill path and the
server ingestion pipeline. Sanitization is best-effort and never fails: a
hostile input comes out clean (possibly empty), not rejected. Rejection is the
job of [Scan], which the structural validation gate runs on rich-text blocks
BEFORE any stripping so that malicious submissions fail loudly instead of
being silently laundered.

Pipeline for [Text]:

 1. bluemonday StrictPolicy removes every HTML tag and attribute.
 2. Residual URI-scheme and event-handler fragments are stripped by pattern.
 3. Whitespace is trimmed and the value is capped at a fixed rune budget.
*/
package sanitize

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/majallahq/majalla/internal/platform/constants"
)

// strictPolicy strips all HTML. Policies are safe for concurrent use.
var strictPolicy = bluemonday.StrictPolicy()

// residualPatterns catch fragments that survive tag stripping: bare scheme
// prefixes and inline event-handler assignments pasted as plain text.
var residualPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)vbscript\s*:`),
	regexp.MustCompile(`(?i)\bon[a-z]+\s*=`),
	regexp.MustCompile(`(?i)data\s*:[^,]*;base64`),
}

// dangerousPatterns is the content-security scan list. Unlike
// [residualPatterns] these run against the RAW value and any hit is a hard
// rejection, not a strip.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script[\s>]`),
	regexp.MustCompile(`(?is)</script`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)vbscript\s*:`),
	regexp.MustCompile(`(?i)data\s*:[^,]*;base64`),
	regexp.MustCompile(`(?i)\bon[a-z]+\s*=`),
	regexp.MustCompile(`(?i)\beval\s*\(`),
}

// Text returns value with all HTML removed, residual hostile fragments
// stripped, surrounding whitespace trimmed, and length capped at
// [constants.MaxFieldRunes]. An already-clean string passes through unchanged
// apart from trimming.
func Text(value string) string {
	if value == "" {
		return ""
	}

	cleaned := strictPolicy.Sanitize(value)
	for _, pattern := range residualPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}
	cleaned = strings.TrimSpace(cleaned)

	return Truncate(cleaned, constants.MaxFieldRunes)
}

// Body behaves like [Text] without the rune cap. Article block text is
// bounded by the word-count ceiling, not the per-field budget.
func Body(value string) string {
	if value == "" {
		return ""
	}

	cleaned := strictPolicy.Sanitize(value)
	for _, pattern := range residualPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}
	return strings.TrimSpace(cleaned)
}

// Scan reports whether value contains a dangerous pattern (script tags,
// javascript:/vbscript: schemes, base64 data URIs, inline event handlers,
// eval calls). It inspects the raw value without modifying it.
func Scan(value string) bool {
	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// Truncate caps value at max runes without splitting a multi-byte character.
func Truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max])
}
