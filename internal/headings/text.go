package headings

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractText returns the plain-text view of a block's markup: tags are
// stripped, entities decoded and surrounding whitespace trimmed. Script and
// style contents are dropped along with their tags. The block itself is
// never modified.
func ExtractText(b Block) string {
	return MarkupText(b.Markup)
}

// MarkupText is ExtractText for a bare markup string
func MarkupText(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()

	return strings.TrimSpace(doc.Text())
}
