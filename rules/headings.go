package rules

import (
	"fmt"

	"github.com/tsawler/stylecheck/guide"
	"github.com/tsawler/stylecheck/heuristic"
	"github.com/tsawler/stylecheck/model"
)

// Headings checks heading presence, hierarchy, depth and per-level text
// format.
var Headings Rule = &ruleDef{
	id:          "headings",
	name:        "Headings",
	description: "Heading presence, level hierarchy, depth and numbering format.",
	checks: []string{
		"Headings", "Heading Hierarchy", "Heading Depth", "Level 1 Heading Format",
		"Level 2 Heading Format", "Level 3 Heading Format", "Level 4 Heading Format",
		"Chapter Heading Format",
	},
	check: checkHeadings,
}

// levelFormat describes the numbering check of one heading level.
type levelFormat struct {
	severity Severity
	example  string
	expected string
}

var levelFormats = map[int]levelFormat{
	1: {SeverityMedium, `"1. HEADING TEXT"`, "Number. HEADING"},
	2: {SeverityMedium, `"1.1 Heading Text"`, "Number.Number Heading"},
	3: {SeverityMedium, `"1.1.1 Heading Text"`, "Number.Number.Number Heading"},
	4: {SeverityLow, `"1.1.1.1 Heading Text" (italic)`, "Number.Number.Number.Number Heading"},
}

func checkHeadings(doc *model.Document, dt model.DocumentType, g *guide.StyleGuide) []Issue {
	headings := doc.Content.Headings
	if len(headings) == 0 {
		if dt != model.Dissertation {
			return nil
		}
		return []Issue{{
			Category: CategoryStructure,
			Severity: SeverityHigh,
			Rule:     "Headings",
			Message:  "Dissertation should have chapter headings",
			Expected: "Chapter headings present",
			Found:    "No headings detected",
			Location: section("Document"),
			Fix:      "Add chapter and section headings",
		}}
	}

	var issues []Issue
	previous := 0
	for _, h := range headings {
		if previous > 0 && h.Level > previous+1 {
			issues = append(issues, Issue{
				Category: CategoryStructure,
				Severity: SeverityMedium,
				Rule:     "Heading Hierarchy",
				Message:  fmt.Sprintf("Heading level skipped (went from %d to %d)", previous, h.Level),
				Expected: fmt.Sprintf("Level %d", previous+1),
				Found:    fmt.Sprintf("Level %d", h.Level),
				Location: &Location{Paragraph: h.Index, Text: h.Text},
				Fix:      "Use consecutive heading levels without skipping",
			})
		}

		if h.Level > g.Headings.MaxDepth {
			issues = append(issues, Issue{
				Category: CategoryStructure,
				Severity: SeverityMedium,
				Rule:     "Heading Depth",
				Message:  fmt.Sprintf("Heading depth should not exceed %d levels", g.Headings.MaxDepth),
				Expected: fmt.Sprintf("Maximum level %d", g.Headings.MaxDepth),
				Found:    fmt.Sprintf("Level %d", h.Level),
				Location: &Location{Paragraph: h.Index, Text: h.Text},
				Fix:      `Use "firstly", "secondly" etc. instead of deeper levels`,
			})
		}

		issues = append(issues, checkHeadingFormat(h)...)

		if dt == model.Dissertation && h.Level == 1 && !heuristic.HasChapterFormat(h.Text) {
			issues = append(issues, Issue{
				Category: CategoryStructure,
				Severity: SeverityMedium,
				Rule:     "Chapter Heading Format",
				Message:  `Dissertation chapter headings should include "CHAPTER" (optional) followed by chapter title`,
				Expected: "1. CHAPTER ONE HEADING or 1. HEADING",
				Found:    h.Text,
				Location: &Location{Paragraph: h.Index},
			})
		}

		previous = h.Level
	}
	return issues
}

func checkHeadingFormat(h model.Heading) []Issue {
	format, ok := levelFormats[h.Level]
	if !ok {
		return nil
	}
	rule := fmt.Sprintf("Level %d Heading Format", h.Level)

	var issues []Issue
	if h.Level == 1 && !heuristic.IsAllCaps(h.Text) {
		issues = append(issues, Issue{
			Category: CategoryFormatting,
			Severity: SeverityHigh,
			Rule:     rule,
			Message:  "Level 1 headings must be in ALL CAPS",
			Expected: heuristic.ToUpper(h.Text),
			Found:    h.Text,
			Location: &Location{Paragraph: h.Index},
			Fix:      "Change to ALL CAPS",
		})
	}

	if !heuristic.HasLevelFormat(h.Level, h.Text) {
		issues = append(issues, Issue{
			Category: CategoryFormatting,
			Severity: format.severity,
			Rule:     rule,
			Message:  fmt.Sprintf("Level %d headings should follow format: %s", h.Level, format.example),
			Expected: format.expected,
			Found:    h.Text,
			Location: &Location{Paragraph: h.Index},
		})
	}
	return issues
}
