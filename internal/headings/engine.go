package headings

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Eligibility decides which block kinds take part in an analysis. Only
// eligible blocks advance the block index.
type Eligibility func(BlockKind) bool

// Eligibility names accepted by ParseEligibility
const (
	EligibilityParagraphs            = "paragraphs"
	EligibilityParagraphsAndHeadings = "paragraphs+headings"
)

// ParagraphsOnly considers paragraphs only, matching stored-document analysis
func ParagraphsOnly(k BlockKind) bool {
	return k == KindParagraph
}

// ParagraphsAndHeadings also revisits existing headings, matching the live editor
func ParagraphsAndHeadings(k BlockKind) bool {
	return k == KindParagraph || k == KindHeading
}

// ParseEligibility resolves an eligibility name. The empty string selects
// ParagraphsOnly.
func ParseEligibility(name string) (Eligibility, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EligibilityParagraphs:
		return ParagraphsOnly, nil
	case EligibilityParagraphsAndHeadings, "paragraphs,headings", "all":
		return ParagraphsAndHeadings, nil
	default:
		return nil, fmt.Errorf("unknown eligibility %q (must be %q or %q)",
			name, EligibilityParagraphs, EligibilityParagraphsAndHeadings)
	}
}

// Engine produces heading suggestions for a sequence of blocks. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	eligible Eligibility
	logger   zerolog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithEligibility sets the block-kind predicate
func WithEligibility(fn Eligibility) Option {
	return func(e *Engine) {
		if fn != nil {
			e.eligible = fn
		}
	}
}

// WithLogger attaches a logger for debug output
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an engine. Without options it analyzes paragraphs only and
// does not log.
func New(opts ...Option) *Engine {
	e := &Engine{
		eligible: ParagraphsOnly,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eligible reports whether blocks of kind k are analyzed by this engine
func (e *Engine) Eligible(k BlockKind) bool {
	return e.eligible(k)
}

// Analyze walks blocks in order and returns one suggestion per eligible
// block whose text length lies within the candidate range. Empty blocks
// still consume an index so that indices stay aligned with the caller's
// numbering of eligible blocks.
func (e *Engine) Analyze(blocks []Block, title, userKeyword string) []Suggestion {
	titleKeywords := ExtractKeywords(title)
	suggestions := make([]Suggestion, 0)

	index := 0
	for _, block := range blocks {
		if !e.eligible(block.Kind) {
			continue
		}

		text := ExtractText(block)
		if text == "" {
			index++
			continue
		}

		length := DisplayLength(text)
		if IsCandidateLength(length) {
			confidence, reasons := Score(text, titleKeywords, userKeyword)
			s := Suggestion{
				BlockIndex:     index,
				TextContent:    text,
				Markup:         block.Markup,
				SuggestedLevel: ClassifyLevel(text, titleKeywords, userKeyword),
				Length:         length,
				Confidence:     confidence,
				Reasons:        reasons,
			}
			if block.Kind == KindHeading {
				s.CurrentLevel = block.Level
			}
			suggestions = append(suggestions, s)
		}

		index++
	}

	e.logger.Debug().
		Int("blocks", len(blocks)).
		Int("eligible", index).
		Int("keywords", len(titleKeywords)).
		Int("suggestions", len(suggestions)).
		Msg("content analyzed")

	return suggestions
}

var defaultEngine = New()

// GetSuggestions analyzes paragraphs with the default engine
func GetSuggestions(blocks []Block, title, userKeyword string) []Suggestion {
	return defaultEngine.Analyze(blocks, title, userKeyword)
}
