package render

import (
	"strings"
	"time"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/diewo77/go-hebergement/internal/templating"
)

// BlockKind is the layout role of a body block.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockField     BlockKind = "field"
	BlockParagraph BlockKind = "paragraph"
	BlockBlank     BlockKind = "blank"
)

// Block is one element of a template body layout. Fields carry a Label
// and their value in Text; headings carry a Level.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Level int       `json:"level,omitempty"`
	Label string    `json:"label,omitempty"`
	Text  string    `json:"text,omitempty"`
}

// layoutParser is goldmark's default parser without setext headings, so a
// "---" line under a paragraph stays a spacer.
var layoutParser = parser.NewParser(
	parser.WithBlockParsers(
		util.Prioritized(parser.NewThematicBreakParser(), 200),
		util.Prioritized(parser.NewListParser(), 300),
		util.Prioritized(parser.NewListItemParser(), 400),
		util.Prioritized(parser.NewCodeBlockParser(), 500),
		util.Prioritized(parser.NewATXHeadingParser(), 600),
		util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
		util.Prioritized(parser.NewBlockquoteParser(), 800),
		util.Prioritized(parser.NewHTMLBlockParser(), 900),
		util.Prioritized(parser.NewParagraphParser(), 1000),
	),
	parser.WithInlineParsers(parser.DefaultInlineParsers()...),
	parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
)

// ParseLayout splits a template body into blocks. The body uses a small
// markdown subset:
//
//	# Title / ## Section   heading
//	- Label: value         field (one per list item)
//	---                    blank spacer
//	anything else          paragraph
//
// Inline markup is kept verbatim. Placeholders are left untouched; call
// Resolve to substitute them once the structure is known.
func ParseLayout(body string) []Block {
	src := []byte(body)
	doc := layoutParser.Parse(text.NewReader(src))
	var blocks []Block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			blocks = append(blocks, Block{Kind: BlockHeading, Level: node.Level, Text: rawText(node, src)})
		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				blocks = append(blocks, fieldBlock(item, src))
			}
		case *ast.ThematicBreak:
			blocks = append(blocks, Block{Kind: BlockBlank})
		default:
			if s := rawText(node, src); s != "" {
				blocks = append(blocks, Block{Kind: BlockParagraph, Text: s})
			}
		}
	}
	return blocks
}

// Resolve substitutes placeholders in every block label and text.
func Resolve(blocks []Block, d templating.Dictionary, now time.Time) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		b.Label = templating.Substitute(b.Label, d, now)
		b.Text = templating.Substitute(b.Text, d, now)
		out[i] = b
	}
	return out
}

func fieldBlock(item ast.Node, src []byte) Block {
	var parts []string
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		if s := rawText(c, src); s != "" {
			parts = append(parts, s)
		}
	}
	s := strings.Join(parts, "\n")
	label, value, ok := strings.Cut(s, ": ")
	if !ok {
		return Block{Kind: BlockField, Text: s}
	}
	return Block{Kind: BlockField, Label: strings.TrimSpace(label), Text: strings.TrimSpace(value)}
}

// rawText returns the source lines of a block node joined by newlines.
// Containers without lines of their own (block quotes) yield the text of
// their block children.
func rawText(n ast.Node, src []byte) string {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		var parts []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if c.Type() != ast.TypeBlock {
				continue
			}
			if s := rawText(c, src); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	}
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimRight(string(seg.Value(src)), " \t\r\n"))
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
