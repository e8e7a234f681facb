package article

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// BlockType discriminates the payload of a content block.
type BlockType string

const (
	// BlockRichText holds a run of prose (paragraphs, headings).
	BlockRichText BlockType = "rich_text"

	// BlockImage references an uploaded media object, or carries the
	// client-side file ref before the upload is resolved.
	BlockImage BlockType = "image"

	// BlockQuote holds a pull quote.
	BlockQuote BlockType = "quote"
)

// Block is one unit of article body content. Exactly one of Text or
// MediaID/FileRef is meaningful depending on Type.
type Block struct {
	Type    BlockType `json:"type"`
	Text    string    `json:"text,omitempty"`
	MediaID string    `json:"media_id,omitempty"`
	FileRef string    `json:"file_ref,omitempty"`
	Alt     string    `json:"alt,omitempty"`
}

// placeholderText seeds an otherwise empty body so editors always open a
// draft with at least one editable block.
const placeholderText = "المحتوى قيد الإعداد"

// Normalize drops text blocks that carry no content and guarantees the
// result is non-empty by injecting a single placeholder rich-text block when
// every incoming block was dropped or none were given. Image blocks pass
// through even without a resolved media reference: an image whose file went
// missing keeps its place in the sequence for editors to fix.
func Normalize(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		switch b.Type {
		case BlockRichText, BlockQuote:
			if strings.TrimSpace(b.Text) != "" {
				out = append(out, b)
			}
		case BlockImage:
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		out = append(out, Block{Type: BlockRichText, Text: placeholderText})
	}
	return out
}

// PlainText concatenates the textual content of the blocks, one block per
// line. Image blocks contribute nothing.
func PlainText(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		if b.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(b.Text)
	}
	return sb.String()
}

// FromMarkdown parses a markdown document into content blocks. Top-level
// headings and paragraphs become rich-text blocks, blockquotes become quote
// blocks, and a paragraph holding a single image becomes an image block whose
// FileRef is the image destination. Anything goldmark cannot place at the top
// level is flattened into the nearest rich-text block.
func FromMarkdown(source string) []Block {
	src := []byte(source)
	doc := goldmark.DefaultParser().Parse(gmtext.NewReader(src))

	var blocks []Block
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			if text := nodeText(n, src); text != "" {
				blocks = append(blocks, Block{Type: BlockRichText, Text: text})
			}
		case *ast.Blockquote:
			if text := nodeText(n, src); text != "" {
				blocks = append(blocks, Block{Type: BlockQuote, Text: text})
			}
		case *ast.Paragraph:
			if img := soleImage(n, src); img != nil {
				blocks = append(blocks, Block{
					Type:    BlockImage,
					FileRef: string(img.Destination),
					Alt:     nodeText(img, src),
				})
				continue
			}
			if text := nodeText(n, src); text != "" {
				blocks = append(blocks, Block{Type: BlockRichText, Text: text})
			}
		default:
			if text := nodeText(node, src); text != "" {
				blocks = append(blocks, Block{Type: BlockRichText, Text: text})
			}
		}
	}
	return blocks
}

// soleImage returns the image node when the paragraph wraps exactly one image
// and no surrounding prose.
func soleImage(p *ast.Paragraph, source []byte) *ast.Image {
	var img *ast.Image
	for child := p.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Image:
			if img != nil {
				return nil
			}
			img = c
		case *ast.Text:
			if len(strings.TrimSpace(string(c.Segment.Value(source)))) > 0 {
				return nil
			}
		default:
			return nil
		}
	}
	return img
}

// nodeText collects the raw text content beneath a node, joining line
// segments with single spaces.
func nodeText(node ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(collapseSpaces(sb.String()))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
