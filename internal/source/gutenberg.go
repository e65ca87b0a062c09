package source

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/a3tai/mcp-seo-headings/internal/headings"
)

// defaultHeadingLevel is the level the block editor assumes when a heading
// block carries no level attribute
const defaultHeadingLevel = 2

// blockDelimiter matches block comment delimiters such as
//
//	<!-- wp:heading {"level":3} -->
//	<!-- /wp:heading -->
//	<!-- wp:spacer /-->
var blockDelimiter = regexp.MustCompile(`(?s)<!--\s+(/)?wp:([a-z][a-z0-9_-]*/)?([a-z][a-z0-9_-]*)\s+(\{.*?\}\s+)?(/)?-->`)

type openBlock struct {
	name       string
	attrs      string
	innerStart int
}

// ParseBlocks splits serialized block-editor content into top-level
// blocks. Inner blocks stay inside their parent's markup. Non-blank HTML
// outside any delimiter becomes a KindOther block.
func ParseBlocks(content string) []headings.Block {
	blocks := make([]headings.Block, 0)
	matches := blockDelimiter.FindAllStringSubmatchIndex(content, -1)

	pos := 0
	depth := 0
	var current openBlock

	for _, m := range matches {
		closer := m[2] >= 0
		void := m[10] >= 0
		name := delimiterName(content, m)
		attrs := ""
		if m[8] >= 0 {
			attrs = content[m[8]:m[9]]
		}

		if depth == 0 {
			blocks = appendFreeform(blocks, content[pos:m[0]])
			pos = m[1]

			switch {
			case void:
				blocks = append(blocks, newBlock(name, attrs, ""))
			case closer:
				// stray closer, nothing to close
			default:
				current = openBlock{name: name, attrs: attrs, innerStart: m[1]}
				depth = 1
			}
			continue
		}

		switch {
		case void:
		case closer:
			depth--
			if depth == 0 {
				blocks = append(blocks, newBlock(current.name, current.attrs, content[current.innerStart:m[0]]))
				pos = m[1]
			}
		default:
			depth++
		}
	}

	if depth > 0 {
		// unterminated block: everything after the opener belongs to it
		blocks = append(blocks, newBlock(current.name, current.attrs, content[current.innerStart:]))
		pos = len(content)
	}

	return appendFreeform(blocks, content[pos:])
}

func delimiterName(content string, m []int) string {
	namespace := "core/"
	if m[4] >= 0 {
		namespace = content[m[4]:m[5]]
	}
	return namespace + content[m[6]:m[7]]
}

func appendFreeform(blocks []headings.Block, html string) []headings.Block {
	html = strings.TrimSpace(html)
	if html == "" {
		return blocks
	}
	return append(blocks, headings.Block{Kind: headings.KindOther, Markup: html})
}

func newBlock(name, attrs, inner string) headings.Block {
	b := headings.Block{
		Kind:   headings.ParseBlockKind(name),
		Markup: strings.TrimSpace(inner),
	}
	if b.Kind == headings.KindHeading {
		b.Level = headingLevel(attrs)
	}
	return b
}

func headingLevel(attrs string) int {
	var parsed struct {
		Level int `json:"level"`
	}
	if strings.TrimSpace(attrs) == "" || json.Unmarshal([]byte(attrs), &parsed) != nil {
		return defaultHeadingLevel
	}
	if parsed.Level < 1 || parsed.Level > 6 {
		return defaultHeadingLevel
	}
	return parsed.Level
}
