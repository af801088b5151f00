package content

import (
	"strings"

	"github.com/hyperjump/contentkit/pkg/utils"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// DefaultExcerptLength is the excerpt size in characters when none is configured.
const DefaultExcerptLength = 160

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Excerpt returns the plain prose of a Markdown/MDX body, truncated to maxLength
// characters at a word boundary with a trailing ellipsis. Headings, code blocks,
// images, raw HTML/JSX and MDX import/export lines are dropped; emphasis, inline
// code and link text are kept.
func Excerpt(body string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}
	src := []byte(stripModuleLines(body))
	doc := markdown.Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n := n.(type) {
		case *ast.Heading, *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.RawHTML, *ast.Image:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering {
				b.Write(n.Segment.Value(src))
				if n.SoftLineBreak() || n.HardLineBreak() {
					b.WriteByte(' ')
				}
			}
		case *ast.String:
			if entering {
				b.Write(n.Value)
			}
		case *ast.AutoLink:
			if entering {
				b.Write(n.Label(src))
			}
		default:
			if !entering && n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})

	return utils.TruncateWords(utils.CollapseSpace(b.String()), maxLength)
}

// stripModuleLines removes MDX import/export statements outside fenced code.
func stripModuleLines(body string) string {
	lines := strings.Split(body, "\n")
	out := lines[:0]
	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
		}
		if !inFence && (strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "export ")) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
