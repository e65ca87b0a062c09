package headings

import (
	"strings"
	"unicode/utf8"
)

// BlockKind identifies the type of a content block
type BlockKind string

const (
	KindParagraph BlockKind = "paragraph"
	KindHeading   BlockKind = "heading"
	KindOther     BlockKind = "other"
)

// Candidate and scoring constants
const (
	MinCandidateLength = 8
	MaxCandidateLength = 80

	BaseConfidence     = 50
	UserKeywordBonus   = 30
	TitleKeywordBonus  = 15
	OptimalLengthBonus = 10
	OptimalLengthMin   = 15
	OptimalLengthMax   = 50

	MinKeywordLength = 3
)

// Block is a single unit of structured document content. Level is only
// meaningful for heading blocks and is zero when unknown.
type Block struct {
	Kind   BlockKind `json:"kind" yaml:"kind"`
	Markup string    `json:"markup" yaml:"markup"`
	Level  int       `json:"level,omitempty" yaml:"level,omitempty"`
}

// Keyword is a lowercased title token that survived stopword filtering
type Keyword string

// Suggestion recommends converting the block at BlockIndex into a heading
// of SuggestedLevel. BlockIndex counts eligible blocks only.
type Suggestion struct {
	BlockIndex     int      `json:"block_index" yaml:"block_index"`
	TextContent    string   `json:"text_content" yaml:"text_content"`
	Markup         string   `json:"html_content" yaml:"html_content"`
	SuggestedLevel int      `json:"suggested_level" yaml:"suggested_level"`
	CurrentLevel   int      `json:"current_level,omitempty" yaml:"current_level,omitempty"`
	Length         int      `json:"length" yaml:"length"`
	Confidence     int      `json:"confidence" yaml:"confidence"`
	Reasons        []string `json:"reasons" yaml:"reasons"`
}

// ParseBlockKind maps block names used by editors and markup formats to a
// BlockKind. Unknown names map to KindOther.
func ParseBlockKind(name string) BlockKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "paragraph", "core/paragraph", "p":
		return KindParagraph
	case "heading", "core/heading", "h1", "h2", "h3", "h4", "h5", "h6":
		return KindHeading
	default:
		return KindOther
	}
}

// DisplayLength returns the number of Unicode code points in s
func DisplayLength(s string) int {
	return utf8.RuneCountInString(s)
}

// IsCandidateLength reports whether a text of n code points may become a heading
func IsCandidateLength(n int) bool {
	return n >= MinCandidateLength && n <= MaxCandidateLength
}
