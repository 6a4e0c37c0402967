package rules

import (
	"fmt"

	"github.com/tsawler/stylecheck/guide"
	"github.com/tsawler/stylecheck/heuristic"
	"github.com/tsawler/stylecheck/model"
)

// Quotations checks block quotation format, quotation mark style and the
// placement of footnote numbers and punctuation around quotes.
var Quotations Rule = &ruleDef{
	id:          "quotations",
	name:        "Quotations",
	description: "Block quotations, quotation marks, footnote and punctuation placement.",
	checks: []string{
		"Block Quotation Format", "Quotation Marks", "Footnote Placement", "Punctuation Placement",
	},
	check: checkQuotations,
}

func checkQuotations(doc *model.Document, _ model.DocumentType, g *guide.StyleGuide) []Issue {
	var issues []Issue

	for _, q := range doc.Content.Quotations {
		snippet := model.Snippet(q.Text, 80)

		if q.NeedsBlockFormat {
			issues = append(issues, Issue{
				Category: CategoryQuotations,
				Severity: SeverityHigh,
				Rule:     "Block Quotation Format",
				Message:  fmt.Sprintf("Quotations longer than %d lines must be formatted as block quotes", g.Quotations.MaxInlineLines),
				Expected: "Block quote format (11pt, indented, no quotation marks)",
				Found:    "Regular quotation with marks",
				Location: &Location{Text: snippet},
				Fix:      "Remove quotation marks, indent, and change to 11pt font",
			})
		}

		if heuristic.UsesSingleQuotes(q.Text) {
			issues = append(issues, Issue{
				Category: CategoryQuotations,
				Severity: SeverityLow,
				Rule:     "Quotation Marks",
				Message:  "Use double quotes for quotations, single quotes only for quotes within quotes",
				Expected: `Double quotation marks ("...")`,
				Found:    "Single quotation marks",
				Location: &Location{Text: snippet},
				Fix:      "Change to double quotation marks",
			})
		}
	}

	for _, p := range doc.Content.Paragraphs {
		if p.IsEmpty {
			continue
		}

		if heuristic.HasFootnoteGap(p.Text) {
			issues = append(issues, Issue{
				Category: CategoryQuotations,
				Severity: SeverityMedium,
				Rule:     "Footnote Placement",
				Message:  "Footnote number should immediately follow closing quotation mark (no space)",
				Expected: `text"¹ or text."¹`,
				Found:    `text" ¹ (space before footnote)`,
				Location: &Location{Paragraph: p.Index},
				Fix:      "Remove space between quote and footnote number",
			})
		}

		if heuristic.HasPunctuationInsideQuotes(p.Text) {
			issues = append(issues, Issue{
				Category: CategoryQuotations,
				Severity: SeverityMedium,
				Rule:     "Punctuation Placement",
				Message:  "Place periods and commas outside quotation marks",
				Expected: `", or ".`,
				Found:    `," or ."`,
				Location: &Location{Paragraph: p.Index, Text: truncate(p.Text, 100)},
				Fix:      "Move period/comma outside closing quote",
			})
		}
	}
	return issues
}
