package source

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/a3tai/mcp-seo-headings/internal/headings"
)

// ParseMarkdown converts the top-level nodes of a Markdown document into
// blocks. Each block's markup is the HTML goldmark renders for that node.
func ParseMarkdown(src []byte) ([]headings.Block, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	blocks := make([]headings.Block, 0)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		var buf bytes.Buffer
		if err := md.Renderer().Render(&buf, src, n); err != nil {
			return nil, fmt.Errorf("failed to render %s node: %w", n.Kind(), err)
		}

		b := headings.Block{Kind: headings.KindOther, Markup: strings.TrimSpace(buf.String())}
		switch node := n.(type) {
		case *ast.Paragraph:
			b.Kind = headings.KindParagraph
		case *ast.Heading:
			b.Kind = headings.KindHeading
			b.Level = node.Level
		}
		blocks = append(blocks, b)
	}

	return blocks, nil
}
