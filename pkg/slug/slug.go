// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

// Package slug generates URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Slugs are human-readable identifiers for articles. Unlike a typical
// ASCII-only slugifier, this one keeps Arabic script intact: an Arabic title
// yields an Arabic slug (percent-encoded on the wire, readable in the
// browser bar). Latin text is accent-folded to ASCII.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxRunes is the length cap for generated slugs.
const MaxRunes = 50

var (
	// whitespaceRun matches any run of Unicode whitespace.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// arabicFold maps Arabic letter variants onto their base form so that
// orthographic variations of the same word produce one slug.
var arabicFold = strings.NewReplacer(
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ة", "ه",
	"ى", "ي",
	"ئ", "ي",
	"ؤ", "و",
	"ـ", "", // tatweel
)

// From converts an arbitrary Unicode string into a URL-safe slug.
//
// # Transformation Pipeline
//
//  1. Normalizes to NFD and removes combining marks (Latin accents and
//     Arabic harakat alike), then recomposes to NFC.
//  2. Folds Arabic letter variants (hamza forms, taa marbuta, alif maqsura).
//  3. Converts to lowercase.
//  4. Strips everything except letters, digits, and whitespace.
//  5. Collapses whitespace runs to single hyphens, collapses hyphen runs,
//     and trims leading/trailing hyphens.
//  6. Caps the result at [MaxRunes] runes.
//
// If nothing survives (e.g. an all-punctuation title), a timestamp-based
// fallback slug is returned so the caller always gets a non-empty value.
func From(s string) string {
	// 1. Normalize and remove combining marks
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	// 2. Fold Arabic variants
	result = arabicFold.Replace(result)

	// 3. Lowercase
	result = strings.ToLower(result)

	// 4. Keep letters, digits, and whitespace only
	var b strings.Builder
	b.Grow(len(result))
	for _, r := range result {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	result = b.String()

	// 5. Hyphenation cleanup
	result = whitespaceRun.ReplaceAllString(strings.TrimSpace(result), "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	// 6. Length cap
	runeSlice := []rune(result)
	if len(runeSlice) > MaxRunes {
		result = strings.TrimRight(string(runeSlice[:MaxRunes]), "-")
	}

	if result == "" {
		return Fallback()
	}
	return result
}

// Fallback returns a timestamp-based slug for titles that slugify to nothing.
func Fallback() string {
	return fmt.Sprintf("submission-%d", time.Now().UnixMilli())
}
