package headings

import "fmt"

// Score computes the confidence (0-100) of turning text into a heading,
// together with the human-readable reasons behind it. Every matching title
// keyword contributes separately; the length reason is always last.
func Score(text string, titleKeywords []Keyword, userKeyword string) (int, []string) {
	folded := fold(text)
	confidence := BaseConfidence
	reasons := make([]string, 0, len(titleKeywords)+2)

	if containsFolded(folded, userKeyword) {
		confidence += UserKeywordBonus
		reasons = append(reasons, fmt.Sprintf("Contains focus keyword: '%s'", userKeyword))
	}

	for _, kw := range titleKeywords {
		if containsFolded(folded, string(kw)) {
			confidence += TitleKeywordBonus
			reasons = append(reasons, fmt.Sprintf("Contains title word: '%s'", kw))
		}
	}

	length := DisplayLength(text)
	if length >= OptimalLengthMin && length <= OptimalLengthMax {
		confidence += OptimalLengthBonus
	}
	reasons = append(reasons, fmt.Sprintf("Heading length: %d characters", length))

	return clamp(confidence, 0, 100), reasons
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
