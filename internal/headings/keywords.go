package headings

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// stopwords are Italian function words that never count as title keywords
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// articles
		"il", "lo", "la", "i", "gli", "le", "un", "uno", "una",
		// prepositions
		"di", "a", "da", "in", "con", "su", "per", "tra", "fra",
		// conjunctions and pronouns
		"e", "ed", "o", "od", "che", "chi", "cui", "come", "quando", "dove", "mentre",
		"se", "anche", "ancora", "più", "molto", "tutto", "tutti", "tutte", "ogni",
		"questo", "questa", "questi", "queste", "quello", "quella", "quelli", "quelle",
		// articulated prepositions
		"del", "dello", "della", "dei", "degli", "delle",
		"al", "allo", "alla", "ai", "agli", "alle",
		"dal", "dallo", "dalla", "dai", "dagli", "dalle",
		"nel", "nello", "nella", "nei", "negli", "nelle",
		"sul", "sullo", "sulla", "sui", "sugli", "sulle",
		// common verbs
		"essere", "avere", "fare", "dire", "andare", "potere", "dovere",
		"volere", "sapere", "dare", "stare", "venire", "uscire", "parlare", "vedere",
		// adverbs and fillers
		"cosa", "non", "ma", "però", "quindi", "poi", "già", "sempre", "mai",
		"oggi", "ieri", "domani",
	} {
		stopwords[w] = struct{}{}
	}
}

// IsStopword reports whether word is in the stopword set. The comparison
// is made on the folded form of word.
func IsStopword(word string) bool {
	_, ok := stopwords[fold(word)]
	return ok
}

// ExtractKeywords tokenizes a title into keywords. Tokens shorter than
// MinKeywordLength code points and stopwords are dropped; order and
// duplicates are preserved.
func ExtractKeywords(title string) []Keyword {
	keywords := make([]Keyword, 0)
	if strings.TrimSpace(title) == "" {
		return keywords
	}

	cleaned := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, fold(title))

	for _, token := range strings.Fields(cleaned) {
		if DisplayLength(token) < MinKeywordLength {
			continue
		}
		if _, stop := stopwords[token]; stop {
			continue
		}
		keywords = append(keywords, Keyword(token))
	}
	return keywords
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || unicode.Is(unicode.Pc, r)
}

// fold lowercases s for case-insensitive matching. A Caser keeps internal
// state, so one is created per call.
func fold(s string) string {
	return cases.Lower(language.Italian).String(norm.NFC.String(s))
}

// containsFolded reports whether needle occurs in the already folded haystack
func containsFolded(foldedHaystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return false
	}
	return strings.Contains(foldedHaystack, fold(needle))
}
