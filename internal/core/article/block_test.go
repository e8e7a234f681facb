package article_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majallahq/majalla/internal/core/article"
)

/*
TestNormalize_DropsEmptyBlocks verifies that contentless text blocks are
removed while the rest, image blocks included, survive in order. An image
block without a resolved media reference stays put.
*/
func TestNormalize_DropsEmptyBlocks(t *testing.T) {
	blocks := article.Normalize([]article.Block{
		{Type: article.BlockRichText, Text: "first"},
		{Type: article.BlockRichText, Text: "   "},
		{Type: article.BlockQuote, Text: "a quote"},
		{Type: article.BlockImage, MediaID: "", Alt: "lost image"},
		{Type: article.BlockImage, MediaID: "media-1"},
	})

	require.Len(t, blocks, 4)
	assert.Equal(t, "first", blocks[0].Text)
	assert.Equal(t, "a quote", blocks[1].Text)
	assert.Equal(t, "lost image", blocks[2].Alt)
	assert.Equal(t, "media-1", blocks[3].MediaID)
}

/*
TestNormalize_PlaceholderInjection guarantees a non-empty result: an empty
or all-dropped sequence yields exactly one placeholder rich-text block.
*/
func TestNormalize_PlaceholderInjection(t *testing.T) {
	tests := []struct {
		name   string
		blocks []article.Block
	}{
		{"nil_input", nil},
		{"all_empty", []article.Block{
			{Type: article.BlockRichText, Text: ""},
			{Type: article.BlockQuote, Text: "  "},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := article.Normalize(tt.blocks)

			require.Len(t, result, 1)
			assert.Equal(t, article.BlockRichText, result[0].Type)
			assert.NotEmpty(t, result[0].Text)
		})
	}
}

/*
TestFromMarkdown_BlockMapping converts a markdown document into typed blocks.
*/
func TestFromMarkdown_BlockMapping(t *testing.T) {
	source := "# عنوان المقال\n\nفقرة أولى من النص.\n\n> اقتباس مهم\n\n![صورة](ref-1)\n\nفقرة أخيرة."

	blocks := article.FromMarkdown(source)
	require.Len(t, blocks, 5)

	assert.Equal(t, article.BlockRichText, blocks[0].Type)
	assert.Equal(t, "عنوان المقال", blocks[0].Text)

	assert.Equal(t, article.BlockRichText, blocks[1].Type)
	assert.Equal(t, "فقرة أولى من النص.", blocks[1].Text)

	assert.Equal(t, article.BlockQuote, blocks[2].Type)
	assert.Equal(t, "اقتباس مهم", blocks[2].Text)

	assert.Equal(t, article.BlockImage, blocks[3].Type)
	assert.Equal(t, "ref-1", blocks[3].FileRef)
	assert.Empty(t, blocks[3].MediaID)

	assert.Equal(t, article.BlockRichText, blocks[4].Type)
	assert.Equal(t, "فقرة أخيرة.", blocks[4].Text)
}

/*
TestFromMarkdown_InlineImageStaysProse keeps a paragraph that mixes prose
and an image as one rich-text block instead of splitting it.
*/
func TestFromMarkdown_InlineImageStaysProse(t *testing.T) {
	blocks := article.FromMarkdown("see ![pic](ref-2) here")

	require.Len(t, blocks, 1)
	assert.Equal(t, article.BlockRichText, blocks[0].Type)
}

/*
TestPlainText joins block text for word counting, skipping images.
*/
func TestPlainText(t *testing.T) {
	text := article.PlainText([]article.Block{
		{Type: article.BlockRichText, Text: "line one"},
		{Type: article.BlockImage, MediaID: "m-1"},
		{Type: article.BlockQuote, Text: "line two"},
	})

	assert.Equal(t, "line one\nline two", text)
}
