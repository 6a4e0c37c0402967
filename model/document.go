package model

import (
	"fmt"
	"strings"
)

// DocumentType selects which structural and margin rules apply.
type DocumentType string

const (
	// Assignment is a course assignment with a prescribed cover page.
	Assignment DocumentType = "assignment"
	// Dissertation is a thesis with preliminary pages and chapters.
	Dissertation DocumentType = "dissertation"
)

// String returns the string representation of the document type.
func (t DocumentType) String() string {
	return string(t)
}

// IsValid returns true if the document type is a recognized value.
func (t DocumentType) IsValid() bool {
	switch t {
	case Assignment, Dissertation:
		return true
	}
	return false
}

// ParseDocumentType converts user input into a DocumentType.
// Empty or unrecognized input falls back to Assignment.
func ParseDocumentType(s string) DocumentType {
	t := DocumentType(strings.ToLower(strings.TrimSpace(s)))
	if t.IsValid() {
		return t
	}
	return Assignment
}

// Document is the extracted, read-only view of a word-processing document.
type Document struct {
	Content    Content    `json:"content"`
	Formatting Formatting `json:"formatting"`
	Structure  Structure  `json:"structure"`
}

// Content holds the text-level facts of a document.
type Content struct {
	// Text is the flattened plain text, paragraphs separated by a blank line.
	Text       string      `json:"text"`
	Paragraphs []Paragraph `json:"paragraphs"`
	Footnotes  []Footnote  `json:"footnotes"`
	Headings   []Heading   `json:"headings"`
	Quotations []Quotation `json:"quotations"`
}

// Formatting holds document-wide formatting facts.
type Formatting struct {
	// FontsUsed is the set of first explicit ASCII fonts across all runs,
	// in first-seen order.
	FontsUsed []string `json:"fontsUsed"`
	// FontSizesUsed is the set of explicit run sizes in points, in
	// first-seen order.
	FontSizesUsed []float64 `json:"fontSizesUsed"`
	// Margins is nil when the section properties carry no page margins.
	Margins            *Margins      `json:"margins,omitempty"`
	LineSpacingSamples []float64     `json:"lineSpacingSamples"`
	PageNumbering      PageNumbering `json:"pageNumbering"`
}

// HasFont reports whether name appears in FontsUsed.
func (f Formatting) HasFont(name string) bool {
	for _, used := range f.FontsUsed {
		if used == name {
			return true
		}
	}
	return false
}

// Structure holds derived structural facts.
type Structure struct {
	PageCountEstimate  int  `json:"pageCountEstimate"`
	WordCount          int  `json:"wordCount"`
	HasTableOfContents bool `json:"hasTableOfContents"`
	HasBibliography    bool `json:"hasBibliography"`
}

// Paragraph is a body paragraph in document order.
type Paragraph struct {
	// Index is 1-based.
	Index      int                 `json:"index"`
	Text       string              `json:"text"`
	IsEmpty    bool                `json:"isEmpty"`
	Formatting ParagraphFormatting `json:"formatting"`
}

// Snippet returns the first n characters of the paragraph text, trimmed,
// with an ellipsis when the text was cut.
func (p Paragraph) Snippet(n int) string {
	return Snippet(p.Text, n)
}

// Footnote is a footnote from the footnotes part.
// Separator entries (ids -1 and 0) are never represented.
type Footnote struct {
	ID         string              `json:"id"`
	Text       string              `json:"text"`
	Formatting ParagraphFormatting `json:"formatting"`
}

// Heading is a paragraph whose style identifier names a heading style.
type Heading struct {
	// Index is the 1-based paragraph index of the heading.
	Index   int    `json:"index"`
	Text    string `json:"text"`
	Level   int    `json:"level"`
	StyleID string `json:"styleId"`
}

// Quotation is a double-quote delimited span of the flattened text.
type Quotation struct {
	Text string `json:"text"`
	// StartOffset is the rune offset of the opening quote mark in Content.Text.
	StartOffset int `json:"startOffset"`
	// LineCount is an estimate: the larger of the literal line count and
	// the length divided by the characters-per-line constant.
	LineCount        int  `json:"lineCount"`
	NeedsBlockFormat bool `json:"needsBlockFormat"`
}

// Margins are page margins in inches, rounded to 0.01.
type Margins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Side returns the margin for a side name ("top", "bottom", "left", "right").
func (m Margins) Side(side string) (float64, error) {
	switch side {
	case "top":
		return m.Top, nil
	case "bottom":
		return m.Bottom, nil
	case "left":
		return m.Left, nil
	case "right":
		return m.Right, nil
	}
	return 0, fmt.Errorf("unknown margin side %q", side)
}

// PageNumbering describes whether a page number field was found.
type PageNumbering struct {
	Present bool `json:"present"`
	// Location is "header" or "footer" when Present.
	Location string `json:"location,omitempty"`
}

// Snippet returns the first n runes of s, trimmed, with "..." appended when
// s was longer than n.
func Snippet(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}
