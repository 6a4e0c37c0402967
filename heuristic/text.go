package heuristic

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tocPattern          = regexp.MustCompile(`(?i)table\s+of\s+contents`)
	bibliographyPattern = regexp.MustCompile(`(?i)bibliography|references`)
	bibHeadingPattern   = regexp.MustCompile(`(?i)^(bibliography|references|works cited)`)
	entryStartPattern   = regexp.MustCompile(`^[A-Z][a-z]+`)
	yearPattern         = regexp.MustCompile(`\d{4}`)
	surnameSplit        = regexp.MustCompile(`[,\s]`)
)

// WordsPerPage is the page-count estimate divisor.
const WordsPerPage = 250

// WordCount returns the number of whitespace-delimited tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// EstimatePages returns ceil(words / WordsPerPage).
func EstimatePages(words int) int {
	return (words + WordsPerPage - 1) / WordsPerPage
}

// HasTableOfContents reports whether text mentions a table of contents.
func HasTableOfContents(text string) bool {
	return tocPattern.MatchString(text)
}

// HasBibliography reports whether text mentions a bibliography or a
// references section anywhere. A sentence such as "see the references
// below" also matches.
func HasBibliography(text string) bool {
	return bibliographyPattern.MatchString(text)
}

// KeywordOffset returns the rune offset of the first case-insensitive
// occurrence of keyword in text, or -1.
func KeywordOffset(text, keyword string) int {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(keyword))
	if err != nil {
		return -1
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return -1
	}
	return utf8.RuneCountInString(text[:loc[0]])
}

// IsBibliographyHeading reports a paragraph that opens a bibliography.
func IsBibliographyHeading(text string) bool {
	return bibHeadingPattern.MatchString(strings.TrimSpace(text))
}

// IsBibliographyEntry reports a paragraph that looks like a bibliography
// entry: it starts with a capitalised word and contains a four-digit year.
func IsBibliographyEntry(text string) bool {
	return entryStartPattern.MatchString(strings.TrimSpace(text)) && yearPattern.MatchString(text)
}

// Surname returns the lower-cased first token of a bibliography entry.
func Surname(entry string) string {
	return strings.ToLower(surnameSplit.Split(strings.TrimSpace(entry), 2)[0])
}
