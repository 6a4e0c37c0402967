package heuristic

import (
	"strings"
	"unicode/utf8"

	"github.com/tsawler/stylecheck/guide"
)

// IsCoverParagraph reports whether a paragraph is probably cover-page
// content. pos is the 0-based paragraph position in the document. A
// paragraph qualifies when it contains one of the cover keywords, or when it
// is both early and short.
func IsCoverParagraph(text string, pos int, rules guide.CoverPageRules) bool {
	lower := strings.ToLower(text)
	for _, k := range rules.Keywords {
		if k != "" && strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return pos < rules.MaxParagraph && utf8.RuneCountInString(strings.TrimSpace(text)) < rules.MaxLength
}
