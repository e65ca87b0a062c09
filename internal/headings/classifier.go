package headings

// ClassifyLevel picks the heading level for a candidate text. A matching
// user keyword wins, then any matching title keyword; both give level 2.
// Everything else is level 3.
func ClassifyLevel(text string, titleKeywords []Keyword, userKeyword string) int {
	folded := fold(text)

	if containsFolded(folded, userKeyword) {
		return 2
	}

	for _, kw := range titleKeywords {
		if containsFolded(folded, string(kw)) {
			return 2
		}
	}

	return 3
}
