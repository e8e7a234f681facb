// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

// Package wordcount counts words in contributor-submitted article text.
//
// # Why not strings.Fields?
//
// Submitted content is markdown-flavored: URLs, emphasis markers, heading
// hashes, and list bullets would all inflate a naive token count. The counter
// normalizes the text first so that the configured minimum/maximum word
// bounds measure actual prose, in Arabic or Latin script.
package wordcount

import (
	"regexp"
	"strings"
)

var (
	// urlPattern removes bare URLs before tokenizing.
	urlPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)

	// markdownImage strips image syntax entirely (the alt text is not prose).
	markdownImage = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)

	// markdownLink keeps the link text, drops the target.
	markdownLink = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)

	// markdownPunct removes structural markdown characters: emphasis,
	// headings, blockquotes, code ticks, and list markers.
	markdownPunct = regexp.MustCompile("[*_~`#>|=-]+")

	// whitespaceRun collapses any whitespace run to a single space.
	whitespaceRun = regexp.MustCompile(`\s+`)

	// wordChar reports whether a token carries at least one letter or digit.
	// \p{L} covers the Arabic Unicode ranges alongside Latin.
	wordChar = regexp.MustCompile(`[\p{L}\p{N}]`)
)

// Count returns the number of prose words in text.
//
// Tokens that survive markdown/URL stripping but contain no letter or digit
// (stray punctuation) are not counted.
func Count(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	normalized := markdownImage.ReplaceAllString(text, " ")
	normalized = markdownLink.ReplaceAllString(normalized, "$1")
	normalized = urlPattern.ReplaceAllString(normalized, " ")
	normalized = markdownPunct.ReplaceAllString(normalized, " ")
	normalized = whitespaceRun.ReplaceAllString(normalized, " ")
	normalized = strings.TrimSpace(normalized)

	if normalized == "" {
		return 0
	}

	count := 0
	for _, token := range strings.Split(normalized, " ") {
		if wordChar.MatchString(token) {
			count++
		}
	}
	return count
}
