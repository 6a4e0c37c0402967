package heuristic

import (
	"regexp"
	"strings"
)

var (
	pageFollowingPattern = regexp.MustCompile(`(?i)\bp\.\s*\d+\s*f{1,2}\b`)
	verseFootnotePattern = regexp.MustCompile(`\d+:\d+\s*\d+`)
	footnoteGapPattern   = regexp.MustCompile(`["']\s+\d+`)

	// punctuationPattern matches a comma before a quote mark, or any
	// character before a quote mark. The second alternative is far broader
	// than "period inside quotes" and fires on most quoted prose.
	punctuationPattern = regexp.MustCompile(`,"|."`)
)

// CountOccurrences returns the number of non-overlapping case-insensitive
// occurrences of term in text.
func CountOccurrences(text, term string) int {
	if term == "" {
		return 0
	}
	return strings.Count(strings.ToLower(text), strings.ToLower(term))
}

// HasPageFollowing reports a page reference written with "f." or "ff."
// instead of an exact range, as in "p. 45ff.".
func HasPageFollowing(text string) bool {
	return pageFollowingPattern.MatchString(text)
}

// IsInformalWebSource reports footnote text that cites a URL from an
// informal source (one of keywords, case-insensitive) without the access
// marker.
func IsInformalWebSource(text string, keywords []string, accessMarker string) bool {
	if !strings.Contains(text, "http") || strings.Contains(text, accessMarker) {
		return false
	}
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if k != "" && strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// ScriptureMatcher recognises scripture references such as "John 3:16".
type ScriptureMatcher struct {
	re *regexp.Regexp
}

// NewScriptureMatcher builds a matcher for the given book abbreviations.
func NewScriptureMatcher(books []string) (*ScriptureMatcher, error) {
	quoted := make([]string, 0, len(books))
	for _, b := range books {
		if b != "" {
			quoted = append(quoted, regexp.QuoteMeta(b))
		}
	}
	if len(quoted) == 0 {
		return &ScriptureMatcher{}, nil
	}
	re, err := regexp.Compile(`\b(` + strings.Join(quoted, "|") + `)\s*\d+:\d+`)
	if err != nil {
		return nil, err
	}
	return &ScriptureMatcher{re: re}, nil
}

// HasReference reports whether text contains a scripture reference.
func (m *ScriptureMatcher) HasReference(text string) bool {
	return m != nil && m.re != nil && m.re.MatchString(text)
}

// HasFootnotedReference reports a paragraph containing a scripture
// reference and a verse immediately followed by what looks like a footnote
// number. Multi-digit verses also satisfy the second test, so "John 3:16"
// alone is enough to match.
func (m *ScriptureMatcher) HasFootnotedReference(text string) bool {
	return m.HasReference(text) && verseFootnotePattern.MatchString(text)
}

// HasFootnoteGap reports a quote mark separated from a following footnote
// number by whitespace.
func HasFootnoteGap(text string) bool {
	return footnoteGapPattern.MatchString(NormalizeQuotes(text))
}

// HasPunctuationInsideQuotes reports text matching the comma/period before
// closing quote pattern. See punctuationPattern for its breadth.
func HasPunctuationInsideQuotes(text string) bool {
	return punctuationPattern.MatchString(NormalizeQuotes(text))
}
