package rules

import (
	"fmt"
	"strings"

	"github.com/tsawler/stylecheck/guide"
	"github.com/tsawler/stylecheck/heuristic"
	"github.com/tsawler/stylecheck/model"
)

// Citations checks footnote citation style, quotation citations, the
// presence and order of the bibliography, and scripture references.
var Citations Rule = &ruleDef{
	id:          "citations",
	name:        "Citations",
	description: "Footnote abbreviations, page references, web sources, quotation citations and bibliography order.",
	checks: []string{
		"Latin Abbreviations", "Page References", "Web Citations", "Missing Citations",
		"Bibliography", "Scripture Citations", "Bibliography Order",
	},
	check: checkCitations,
}

func checkCitations(doc *model.Document, _ model.DocumentType, g *guide.StyleGuide) []Issue {
	rules := g.Citations

	var issues []Issue
	for _, fn := range doc.Content.Footnotes {
		issues = append(issues, checkFootnoteCitation(fn, rules)...)
	}

	text := []rune(doc.Content.Text)
	for _, q := range doc.Content.Quotations {
		context := heuristic.QuoteContext(text, q, g.Quotations.ContextWindow)
		if heuristic.HasCitationMarker(context) {
			continue
		}
		issues = append(issues, Issue{
			Category: CategoryCitations,
			Severity: SeverityCritical,
			Rule:     "Missing Citations",
			Message:  "Quotation appears to lack a citation",
			Expected: "Footnote number after quotation",
			Found:    "No footnote indicator found",
			Location: &Location{Text: truncate(q.Text, 100)},
			Fix:      "Add footnote citation",
		})
	}

	if doc.Structure.WordCount > rules.BibliographyWords && !doc.Structure.HasBibliography {
		issues = append(issues, Issue{
			Category: CategoryCitations,
			Severity: SeverityHigh,
			Rule:     "Bibliography",
			Message:  "Document should include a Bibliography section",
			Expected: "Bibliography at end of document",
			Found:    "No Bibliography section detected",
			Location: section("End of document"),
			Fix:      "Add Bibliography section at the end",
		})
	}

	if scripture, err := heuristic.NewScriptureMatcher(rules.ScriptureBooks); err == nil {
		for _, p := range doc.Content.Paragraphs {
			if !scripture.HasFootnotedReference(p.Text) {
				continue
			}
			issues = append(issues, Issue{
				Category: CategoryCitations,
				Severity: SeverityLow,
				Rule:     "Scripture Citations",
				Message:  "Scripture references should not have footnotes",
				Expected: "Scripture reference without footnote",
				Found:    "Footnote after scripture",
				Location: &Location{Paragraph: p.Index, Text: truncate(p.Text, 100)},
				Fix:      "Remove footnote from scripture reference",
			})
		}
	}

	issues = append(issues, checkBibliographyOrder(doc.Content.Paragraphs)...)
	return issues
}

func checkFootnoteCitation(fn model.Footnote, rules guide.CitationRules) []Issue {
	var issues []Issue
	snippet := model.Snippet(fn.Text, 100)

	for _, abbr := range rules.Prohibited {
		n := heuristic.CountOccurrences(fn.Text, abbr.Term)
		for range n {
			issues = append(issues, Issue{
				Category: CategoryCitations,
				Severity: SeverityHigh,
				Rule:     "Latin Abbreviations",
				Message:  fmt.Sprintf("Do not use %q in citations. Use %s instead.", abbr.Term, abbr.Replacement),
				Expected: abbr.Replacement,
				Found:    abbr.Term,
				Location: &Location{Footnote: fn.ID, Text: snippet},
				Fix:      fmt.Sprintf("Replace %q with %s", abbr.Term, abbr.Replacement),
			})
		}
	}

	if heuristic.HasPageFollowing(fn.Text) {
		issues = append(issues, Issue{
			Category: CategoryCitations,
			Severity: SeverityHigh,
			Rule:     "Page References",
			Message:  `Use exact page ranges instead of "f." or "ff."`,
			Expected: "Exact page numbers (e.g., 45-47)",
			Found:    "f. or ff. notation",
			Location: &Location{Footnote: fn.ID, Text: snippet},
			Fix:      "Replace with exact page range",
		})
	}

	if heuristic.IsInformalWebSource(fn.Text, rules.InformalSources, rules.AccessMarker) {
		issues = append(issues, Issue{
			Category: CategoryCitations,
			Severity: SeverityMedium,
			Rule:     "Web Citations",
			Message:  "Informal online sources should include access date",
			Expected: fmt.Sprintf("Include %q before URL", rules.AccessMarker+" [date]"),
			Found:    "URL without access date",
			Location: &Location{Footnote: fn.ID},
			Fix:      "Add access date before URL",
		})
	}
	return issues
}

type bibliographyEntry struct {
	index int
	text  string
}

// checkBibliographyOrder reports every adjacent pair of bibliography entries
// whose surnames are out of alphabetical order. Entries are the non-empty
// paragraphs after the first bibliography heading that look like
// references.
func checkBibliographyOrder(paras []model.Paragraph) []Issue {
	start := -1
	for i, p := range paras {
		if heuristic.IsBibliographyHeading(p.Text) {
			start = i
			break
		}
	}
	if start == -1 {
		return nil
	}

	var entries []bibliographyEntry
	for _, p := range paras[start+1:] {
		if p.IsEmpty || !heuristic.IsBibliographyEntry(p.Text) {
			continue
		}
		entries = append(entries, bibliographyEntry{index: p.Index, text: strings.TrimSpace(p.Text)})
	}

	var issues []Issue
	for i := 1; i < len(entries); i++ {
		prev := heuristic.Surname(entries[i-1].text)
		curr := heuristic.Surname(entries[i].text)
		if prev <= curr {
			continue
		}
		issues = append(issues, Issue{
			Category: CategoryCitations,
			Severity: SeverityHigh,
			Rule:     "Bibliography Order",
			Message:  "Bibliography entries not in alphabetical order",
			Expected: fmt.Sprintf("%q should come before %q", curr, prev),
			Found:    fmt.Sprintf("%q appears before %q", prev, curr),
			Location: &Location{Paragraph: entries[i].index, Text: model.Snippet(entries[i].text, 80)},
			Fix:      "Arrange bibliography entries alphabetically by author surname",
		})
	}
	return issues
}
