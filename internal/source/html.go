package source

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/a3tai/mcp-seo-headings/internal/headings"
)

// ParseHTML turns the top-level elements of an HTML fragment or page body
// into blocks: <p> becomes a paragraph, <h1>-<h6> a heading and anything
// else an opaque block.
func ParseHTML(content string) ([]headings.Block, error) {
	blocks := make([]headings.Block, 0)
	if strings.TrimSpace(content) == "" {
		return blocks, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var outerErr error
	doc.Find("body").Children().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		markup, err := goquery.OuterHtml(s)
		if err != nil {
			outerErr = fmt.Errorf("failed to render element: %w", err)
			return false
		}

		tag := goquery.NodeName(s)
		b := headings.Block{Kind: headings.ParseBlockKind(tag), Markup: markup}
		if b.Kind == headings.KindHeading {
			b.Level = int(tag[1] - '0')
		}
		blocks = append(blocks, b)
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}

	return blocks, nil
}
