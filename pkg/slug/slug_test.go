// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/majallahq/majalla/pkg/slug"
)

/*
TestFrom_Latin covers ASCII and accented Latin titles.
*/
func TestFrom_Latin(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Hello World", "hello-world"},
		{"accents_folded", "Café résumé", "cafe-resume"},
		{"punctuation_stripped", "What's up, doc?", "whats-up-doc"},
		{"whitespace_collapsed", "a  \t b\n c", "a-b-c"},
		{"digits_kept", "Top 10 Tips", "top-10-tips"},
		{"existing_hyphens", "pre-built — thing", "pre-built-thing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}

/*
TestFrom_Arabic verifies Arabic script survives slugification with variant
letters folded and harakat stripped.
*/
func TestFrom_Arabic(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"taa_marbuta_folded", "نحو قيادة فعالة في المؤسسات", "نحو-قياده-فعاله-في-الموسسات"},
		{"hamza_alif_folded", "أخبار إدارية", "اخبار-اداريه"},
		{"harakat_stripped", "مَرْحَبًا بكم", "مرحبا-بكم"},
		{"mixed_scripts", "تقرير Go 2026", "تقرير-go-2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}

/*
TestFrom_LengthCap ensures slugs never exceed MaxRunes and never end in a
dangling hyphen after the cut.
*/
func TestFrom_LengthCap(t *testing.T) {
	long := strings.Repeat("word ", 40)
	result := slug.From(long)

	assert.LessOrEqual(t, len([]rune(result)), slug.MaxRunes)
	assert.False(t, strings.HasSuffix(result, "-"))
}

/*
TestFrom_Fallback verifies that titles which slugify to nothing still yield
a non-empty timestamp slug.
*/
func TestFrom_Fallback(t *testing.T) {
	for _, input := range []string{"", "!!!", "؟؟؟", "   "} {
		result := slug.From(input)
		assert.True(t, strings.HasPrefix(result, "submission-"), "input %q gave %q", input, result)
	}
}
