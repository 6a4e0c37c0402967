package heuristic

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/stylecheck/model"
)

var (
	quotePattern = regexp.MustCompile(`"([^"]+)"`)

	// citationMarker is a quote mark followed by a footnote number.
	citationMarker = regexp.MustCompile(`["']\s*\d+`)

	typographicQuotes = strings.NewReplacer("“", `"`, "”", `"`, "„", `"`)
)

// NormalizeQuotes replaces typographic double quotes with the ASCII mark.
// Every replacement is one rune for one rune, so rune offsets into the
// result are valid offsets into s.
func NormalizeQuotes(s string) string {
	return typographicQuotes.Replace(s)
}

// FindQuotations returns one Quotation per double-quoted span of text.
// Matching is non-greedy and unaware of nesting; an opening mark without a
// closing mark produces nothing. LineCount is an estimate derived from the
// literal line breaks and charsPerLine; a span needs block format when the
// estimate exceeds maxInlineLines.
func FindQuotations(text string, charsPerLine, maxInlineLines int) []model.Quotation {
	if charsPerLine <= 0 {
		charsPerLine = 80
	}
	norm := NormalizeQuotes(text)

	var quotes []model.Quotation
	for _, loc := range quotePattern.FindAllStringSubmatchIndex(norm, -1) {
		inner := norm[loc[2]:loc[3]]
		lines := EstimateLines(inner, charsPerLine)
		quotes = append(quotes, model.Quotation{
			Text:             inner,
			StartOffset:      utf8.RuneCountInString(norm[:loc[0]]),
			LineCount:        lines,
			NeedsBlockFormat: lines > maxInlineLines,
		})
	}
	return quotes
}

// EstimateLines returns the larger of the literal line count of s and its
// length divided by charsPerLine, rounded up.
func EstimateLines(s string, charsPerLine int) int {
	literal := strings.Count(s, "\n") + 1
	n := utf8.RuneCountInString(s)
	estimated := (n + charsPerLine - 1) / charsPerLine
	if estimated > literal {
		return estimated
	}
	return literal
}

// QuoteContext returns the text surrounding q: window runes before the
// opening mark through window runes past the end of the quoted text.
// text must be the rune slice of the text q was found in.
func QuoteContext(text []rune, q model.Quotation, window int) string {
	start := q.StartOffset - window
	if start < 0 {
		start = 0
	}
	end := q.StartOffset + utf8.RuneCountInString(q.Text) + window
	if end > len(text) {
		end = len(text)
	}
	if start >= end {
		return ""
	}
	return NormalizeQuotes(string(text[start:end]))
}

// HasCitationMarker reports whether context contains a quote mark followed
// by a footnote number.
func HasCitationMarker(context string) bool {
	return citationMarker.MatchString(context)
}

// UsesSingleQuotes reports a quotation that contains a single quote mark but
// no double quote mark.
func UsesSingleQuotes(quoted string) bool {
	return strings.Contains(quoted, "'") && !strings.Contains(quoted, `"`)
}
