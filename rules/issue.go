package rules

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// Severity
// =============================================================================

// Severity indicates how serious an issue is.
type Severity string

// Severity levels, most serious first.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists every severity in rank order.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Rank orders severities: critical is 0, low is 3. Unknown values rank
// after low.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityMedium and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return sev, true
	}
	return SeverityMedium, false
}

// =============================================================================
// Issue
// =============================================================================

// Category groups issues for presentation.
type Category string

// Issue categories.
const (
	CategoryFormatting Category = "Formatting"
	CategoryCitations  Category = "Citations"
	CategoryStructure  Category = "Structure"
	CategoryQuotations Category = "Quotations"
)

// Issue is one style violation. Issues are values; once returned by a rule
// they are never modified in place.
type Issue struct {
	Category Category  `json:"category"`
	Severity Severity  `json:"severity"`
	Rule     string    `json:"rule"`
	Message  string    `json:"message"`
	Expected string    `json:"expected,omitempty"`
	Found    string    `json:"found,omitempty"`
	Location *Location `json:"location,omitempty"`
	Fix      string    `json:"fix,omitempty"`
}

// Location points at the part of the document an issue refers to.
type Location struct {
	// Paragraph is the 1-based paragraph index; 0 means none.
	Paragraph int    `json:"paragraph,omitempty"`
	Footnote  string `json:"footnote,omitempty"`
	Section   string `json:"section,omitempty"`
	Text      string `json:"text,omitempty"`
}

// ParagraphIndex returns the issue's paragraph, or 0 when it has none.
func (i Issue) ParagraphIndex() int {
	if i.Location == nil {
		return 0
	}
	return i.Location.Paragraph
}

func section(name string) *Location {
	return &Location{Section: name}
}

// num formats a number the way it is written in messages: 12, 1.5, 10.5.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinNums(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = num(v)
	}
	return strings.Join(parts, ", ")
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// exceeds reports whether diff is larger than tolerance when both are
// compared in hundredths, so that a difference equal to the tolerance
// passes despite floating-point error.
func exceeds(diff, tolerance float64) bool {
	if diff < 0 {
		diff = -diff
	}
	return roundHundredths(diff) > roundHundredths(tolerance)
}

func roundHundredths(v float64) int64 {
	if v < 0 {
		return -int64(-v*100 + 0.5)
	}
	return int64(v*100 + 0.5)
}
