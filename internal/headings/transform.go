package headings

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Classes attached to every generated heading
const (
	ClassHeadingBlock = "wp-block-heading"
	ClassGenerated    = "auto-seo-generated"
)

// ErrInvalidLevel is returned when a transform is asked for a level other than 2 or 3
var ErrInvalidLevel = errors.New("invalid heading level")

var (
	paragraphWrapper = regexp.MustCompile(`(?is)^<p(?:\s[^>]*)?>(.*)</p>$`)
	headingWrapper   = regexp.MustCompile(`(?is)^<h([1-6])(?:\s[^>]*)?>(.*)</h([1-6])>$`)
	closingParagraph = regexp.MustCompile(`(?i)</p\s*>`)
	closingHeading   = regexp.MustCompile(`(?i)</h[1-6]\s*>`)
)

// ValidateLevel returns ErrInvalidLevel unless level is 2 or 3
func ValidateLevel(level int) error {
	if level != 2 && level != 3 {
		return fmt.Errorf("%w: %d (must be 2 or 3)", ErrInvalidLevel, level)
	}
	return nil
}

// TransformToHeading wraps markup in a heading of the given level. A single
// outer <p> element is unwrapped first; inner markup is kept as is.
func TransformToHeading(markup string, level int) (string, error) {
	if err := ValidateLevel(level); err != nil {
		return "", err
	}

	inner := strings.TrimSpace(markup)
	if m := paragraphWrapper.FindStringSubmatch(inner); m != nil && !closingParagraph.MatchString(m[1]) {
		inner = m[1]
	}

	return fmt.Sprintf(`<h%d class="%s %s">%s</h%d>`, level, ClassHeadingBlock, ClassGenerated, inner, level), nil
}

// HeadingInner returns the content of a single outer <h1>-<h6> element
// and its level. ok is false when markup is not wrapped in one heading.
func HeadingInner(markup string) (inner string, level int, ok bool) {
	m := headingWrapper.FindStringSubmatch(strings.TrimSpace(markup))
	if m == nil || m[1] != m[3] || closingHeading.MatchString(m[2]) {
		return "", 0, false
	}
	return m[2], int(m[1][0] - '0'), true
}

// TransformToParagraph turns a heading back into a paragraph
func TransformToParagraph(markup string) string {
	inner := strings.TrimSpace(markup)
	if content, _, ok := HeadingInner(inner); ok {
		inner = content
	}
	return "<p>" + inner + "</p>"
}
