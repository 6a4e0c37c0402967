package rules

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/stylecheck/guide"
	"github.com/tsawler/stylecheck/heuristic"
	"github.com/tsawler/stylecheck/model"
)

// Formatting checks fonts, sizes, margins, spacing, indentation, alignment,
// footnote formatting and page numbering.
var Formatting Rule = &ruleDef{
	id:          "formatting",
	name:        "Formatting",
	description: "Fonts, sizes, margins, line spacing, alignment, footnote formatting and page numbers.",
	checks: []string{
		"Font Style", "Font Consistency", "Font Size", "Page Margins", "Line Spacing",
		"Paragraph Indentation", "Text Alignment", "Footnote Font", "Footnote Size",
		"Footnote Length", "Page Numbering",
	},
	check: checkFormatting,
}

var marginSides = []string{"top", "bottom", "left", "right"}

func checkFormatting(doc *model.Document, dt model.DocumentType, g *guide.StyleGuide) []Issue {
	var issues []Issue
	issues = append(issues, checkDocumentFonts(doc.Formatting, g.Fonts)...)
	issues = append(issues, checkMargins(doc.Formatting.Margins, g.MarginsFor(dt.String()), g.Margins.Tolerance)...)
	issues = append(issues, checkLineSpacing(doc.Formatting.LineSpacingSamples, g.Spacing)...)
	issues = append(issues, checkParagraphs(doc.Content.Paragraphs, g)...)
	issues = append(issues, checkFootnoteFormatting(doc.Content.Footnotes, g)...)

	if !doc.Formatting.PageNumbering.Present && doc.Structure.PageCountEstimate > 1 {
		issues = append(issues, Issue{
			Category: CategoryFormatting,
			Severity: SeverityMedium,
			Rule:     "Page Numbering",
			Message:  "Page numbers should be at bottom center",
			Expected: "Page numbers at bottom center",
			Found:    "No page numbers detected",
			Location: section("Page Setup"),
			Fix:      "Add page numbers at bottom center",
		})
	}
	return issues
}

func checkDocumentFonts(f model.Formatting, rules guide.FontRules) []Issue {
	var issues []Issue
	required := rules.Required

	if !f.HasFont(required) {
		found := strings.Join(f.FontsUsed, ", ")
		if found == "" {
			found = "Unknown"
		}
		issues = append(issues, Issue{
			Category: CategoryFormatting,
			Severity: SeverityCritical,
			Rule:     "Font Style",
			Message:  fmt.Sprintf("Font must be %q. Found: %s", required, found),
			Expected: required,
			Found:    found,
			Location: section("Document"),
			Fix:      "Change all text to " + required,
		})
	}

	if len(f.FontsUsed) > rules.MaxDistinct {
		issues = append(issues, Issue{
			Category: CategoryFormatting,
			Severity: SeverityMedium,
			Rule:     "Font Consistency",
			Message:  fmt.Sprintf("Multiple fonts used: %s. Should use primarily %q", strings.Join(f.FontsUsed, ", "), required),
			Expected: "Primarily " + required,
			Found:    fmt.Sprintf("%d different fonts", len(f.FontsUsed)),
			Location: section("Document"),
		})
	}

	var body []float64
	for _, size := range f.FontSizesUsed {
		if size >= rules.BodySizeMin && size <= rules.BodySizeMax {
			body = append(body, size)
		}
	}
	if !slices.Contains(body, rules.BodySize) {
		found := joinNums(body)
		if found == "" {
			found = "Unknown"
		}
		want := num(rules.BodySize) + "pt"
		issues = append(issues, Issue{
			Category: CategoryFormatting,
			Severity: SeverityCritical,
			Rule:     "Font Size",
			Message:  fmt.Sprintf("Main text must be %s. Found: %s", want, found),
			Expected: want,
			Found:    found + "pt",
			Location: section("Document"),
			Fix:      "Change main text to " + want,
		})
	}
	return issues
}

// checkMargins compares each measured side with the required margin. A nil
// margin set, or a side measured as 0, cannot be verified and is skipped.
func checkMargins(m *model.Margins, want guide.Margin, tolerance float64) []Issue {
	if m == nil {
		return nil
	}
	required := map[string]float64{
		"top":    want.Top,
		"bottom": want.Bottom,
		"left":   want.Left,
		"right":  want.Right,
	}

	var issues []Issue
	for _, side := range marginSides {
		actual, err := m.Side(side)
		if err != nil || actual == 0 {
			continue
		}
		expected := required[side]
		if !exceeds(actual-expected, tolerance) {
			continue
		}
		unit := "inches"
		if expected == 1 {
			unit = "inch"
		}
		issues = append(issues, Issue{
			Category: CategoryFormatting,
			Severity: SeverityCritical,
			Rule:     "Page Margins",
			Message:  fmt.Sprintf(`%s margin must be %s" (found %s")`, strings.ToUpper(side[:1])+side[1:], num(expected), num(actual)),
			Expected: num(expected) + `"`,
			Found:    num(actual) + `"`,
			Location: section("Page Setup"),
			Fix:      fmt.Sprintf("Set %s margin to %s %s", side, num(expected), unit),
		})
	}
	return issues
}

// checkLineSpacing compares the first spacing sample, rounded to one
// decimal, with the required spacing.
func checkLineSpacing(samples []float64, rules guide.SpacingRules) []Issue {
	if len(samples) == 0 {
		return nil
	}
	sampled := math.Round(samples[0]*10) / 10
	if !exceeds(sampled-rules.Line, rules.Tolerance) {
		return nil
	}
	return []Issue{{
		Category: CategoryFormatting,
		Severity: SeverityHigh,
		Rule:     "Line Spacing",
		Message:  fmt.Sprintf("Main text spacing must be %s (found %s)", num(rules.Line), num(sampled)),
		Expected: num(rules.Line),
		Found:    num(sampled),
		Location: section("Document"),
		Fix:      "Set line spacing to " + num(rules.Line),
	}}
}

func checkParagraphs(paras []model.Paragraph, g *guide.StyleGuide) []Issue {
	var issues []Issue
	required := g.Fonts.Required
	allowedFonts := append([]string{required}, g.Fonts.Allowed...)
	wantSize := num(g.Fonts.BodySize) + "pt"
	indentReported := false

	for pos, p := range paras {
		if p.IsEmpty {
			continue
		}
		loc := func() *Location {
			return &Location{Paragraph: p.Index, Text: p.Snippet(80)}
		}

		if wrong := wrongFonts(p.Formatting, allowedFonts); len(wrong) > 0 {
			found := strings.Join(wrong, ", ")
			issues = append(issues, Issue{
				Category: CategoryFormatting,
				Severity: SeverityCritical,
				Rule:     "Font Style",
				Message:  fmt.Sprintf("Paragraph %d uses incorrect font: %s. Must be %q", p.Index, found, required),
				Expected: required,
				Found:    found,
				Location: loc(),
				Fix:      "Change text to " + required,
			})
		}

		if wrong := wrongSizes(p.Formatting, g.Fonts.BodySize, g.Fonts.SecondarySize); len(wrong) > 0 {
			found := joinNums(wrong) + "pt"
			issues = append(issues, Issue{
				Category: CategoryFormatting,
				Severity: SeverityCritical,
				Rule:     "Font Size",
				Message:  fmt.Sprintf("Paragraph %d uses incorrect font size: %s. Must be %s", p.Index, found, wantSize),
				Expected: wantSize,
				Found:    found,
				Location: loc(),
				Fix:      "Change text size to " + wantSize,
			})
		}

		if !indentReported && p.Formatting.Indentation.HasFirstLine() {
			indentReported = true
			issues = append(issues, Issue{
				Category: CategoryFormatting,
				Severity: SeverityMedium,
				Rule:     "Paragraph Indentation",
				Message:  "Paragraphs should be flush with left margin (no first-line indent)",
				Expected: "No indentation",
				Found:    "First-line indentation present",
				Location: loc(),
				Fix:      "Remove first-line indentation and add line space between paragraphs",
			})
		}

		align := p.Formatting.Alignment
		if align != "" && align != "left" && align != "start" && !heuristic.IsCoverParagraph(p.Text, pos, g.CoverPage) {
			issues = append(issues, Issue{
				Category: CategoryFormatting,
				Severity: SeverityLow,
				Rule:     "Text Alignment",
				Message:  fmt.Sprintf("Text should be left-aligned (found %s)", align),
				Expected: "Left alignment",
				Found:    align,
				Location: loc(),
			})
		}
	}
	return issues
}

func checkFootnoteFormatting(notes []model.Footnote, g *guide.StyleGuide) []Issue {
	var issues []Issue
	required := g.Fonts.Required
	allowedFonts := append([]string{required}, g.Fonts.FootnoteAllowed...)
	wantSize := num(g.Footnotes.Size) + "pt"

	for _, fn := range notes {
		if fn.Text == "" {
			continue
		}
		loc := func() *Location {
			return &Location{Footnote: fn.ID, Text: model.Snippet(fn.Text, 100)}
		}

		if wrong := wrongFonts(fn.Formatting, allowedFonts); len(wrong) > 0 {
			found := strings.Join(wrong, ", ")
			issues = append(issues, Issue{
				Category: CategoryFormatting,
				Severity: SeverityHigh,
				Rule:     "Footnote Font",
				Message:  fmt.Sprintf("Footnote %s uses incorrect font: %s. Must be %q", fn.ID, found, required),
				Expected: required,
				Found:    found,
				Location: loc(),
				Fix:      "Change footnote font to " + required,
			})
		}

		if wrong := wrongSizes(fn.Formatting, g.Footnotes.Size); len(wrong) > 0 {
			found := joinNums(wrong) + "pt"
			issues = append(issues, Issue{
				Category: CategoryFormatting,
				Severity: SeverityHigh,
				Rule:     "Footnote Size",
				Message:  fmt.Sprintf("Footnote %s uses incorrect font size: %s. Must be %s", fn.ID, found, wantSize),
				Expected: wantSize,
				Found:    found,
				Location: loc(),
				Fix:      "Change footnote size to " + wantSize,
			})
		}

		if n := utf8.RuneCountInString(fn.Text); n > g.Footnotes.MaxLength {
			issues = append(issues, Issue{
				Category: CategoryFormatting,
				Severity: SeverityLow,
				Rule:     "Footnote Length",
				Message:  fmt.Sprintf("Footnote %s is very long. Check formatting.", fn.ID),
				Expected: "Concise footnote",
				Found:    fmt.Sprintf("%d characters", n),
				Location: loc(),
			})
		}
	}
	return issues
}

// wrongFonts returns the explicit fonts outside allowed. Inherited entries
// have no determinable font and are never reported.
func wrongFonts(f model.ParagraphFormatting, allowed []string) []string {
	var wrong []string
	for _, name := range f.ExplicitFonts() {
		if !slices.Contains(allowed, name) {
			wrong = append(wrong, name)
		}
	}
	return wrong
}

// wrongSizes returns the explicit sizes outside allowed.
func wrongSizes(f model.ParagraphFormatting, allowed ...float64) []float64 {
	var wrong []float64
	for _, size := range f.ExplicitSizes() {
		if !slices.Contains(allowed, size) {
			wrong = append(wrong, size)
		}
	}
	return wrong
}
