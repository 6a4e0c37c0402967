package rules

import (
	"fmt"
	"unicode/utf8"

	"github.com/tsawler/stylecheck/guide"
	"github.com/tsawler/stylecheck/heuristic"
	"github.com/tsawler/stylecheck/model"
)

// Structure checks the required parts of each document type and the order
// of the introduction, appendices and bibliography.
var Structure Rule = &ruleDef{
	id:          "structure",
	name:        "Structure",
	description: "Cover page, declarations, table of contents, chapters and section order.",
	checks: []string{
		"Cover Page Format", "Academic Honesty Declaration", "Table of Contents",
		"Declaration Page", "Chapter Structure", "Bibliography", "Document Organization",
		"Bibliography Placement", "Appendix Placement",
	},
	check: checkStructure,
}

func checkStructure(doc *model.Document, dt model.DocumentType, g *guide.StyleGuide) []Issue {
	var issues []Issue
	text := doc.Content.Text
	rules := &g.Structure

	// Pattern checks cannot be evaluated with an invalid guide.
	if g.Compile() == nil {
		switch dt {
		case model.Assignment:
			issues = append(issues, checkAssignmentCover(text, rules)...)
		case model.Dissertation:
			issues = append(issues, checkDissertationParts(doc, rules)...)
		}
	}

	if !doc.Structure.HasBibliography && doc.Structure.WordCount > rules.BibliographyWords {
		issues = append(issues, Issue{
			Category: CategoryStructure,
			Severity: SeverityHigh,
			Rule:     "Bibliography",
			Message:  "Document must include Bibliography section",
			Expected: "Bibliography at end of document",
			Found:    "No Bibliography section found",
			Location: section("End of document"),
			Fix:      "Add Bibliography section at the end",
		})
	}

	intro := heuristic.KeywordOffset(text, "introduction")
	biblio := heuristic.KeywordOffset(text, "bibliography")
	appendix := heuristic.KeywordOffset(text, "appendix")

	if intro > rules.IntroductionOffset {
		issues = append(issues, Issue{
			Category: CategoryStructure,
			Severity: SeverityLow,
			Rule:     "Document Organization",
			Message:  "Introduction should appear at the beginning of the document",
			Expected: "Introduction as first section",
			Found:    "Introduction appears later in document",
			Location: section("Document structure"),
		})
	}

	if biblio != -1 && biblio < utf8.RuneCountInString(text)-rules.BibliographyTail {
		issues = append(issues, Issue{
			Category: CategoryStructure,
			Severity: SeverityMedium,
			Rule:     "Bibliography Placement",
			Message:  "Bibliography should be at the end of the document",
			Expected: "Bibliography as final section",
			Found:    "Bibliography appears before end",
			Location: section("Bibliography"),
		})
	}

	if appendix != -1 && biblio != -1 && appendix > biblio {
		issues = append(issues, Issue{
			Category: CategoryStructure,
			Severity: SeverityMedium,
			Rule:     "Appendix Placement",
			Message:  "Appendices should come before Bibliography",
			Expected: "Order: Main text → Appendices → Bibliography",
			Found:    "Appendix appears after Bibliography",
			Location: section("End matter"),
			Fix:      "Move appendices before Bibliography",
		})
	}
	return issues
}

func checkAssignmentCover(text string, rules *guide.StructureRules) []Issue {
	var issues []Issue
	for _, el := range rules.CoverElements {
		if el.Match(text) {
			continue
		}
		issues = append(issues, Issue{
			Category: CategoryStructure,
			Severity: SeverityHigh,
			Rule:     "Cover Page Format",
			Message:  "Cover page must include " + el.Name,
			Expected: el.Name + " on cover page",
			Found:    el.Name + " not found",
			Location: section("Cover Page"),
			Fix:      fmt.Sprintf("Add %s to cover page as per sample format", el.Name),
		})
	}

	if !rules.HasHonestyDeclaration(text) {
		issues = append(issues, Issue{
			Category: CategoryStructure,
			Severity: SeverityCritical,
			Rule:     "Academic Honesty Declaration",
			Message:  "Cover page must include academic honesty declaration",
			Expected: rules.HonestyText,
			Found:    "No declaration found",
			Location: section("Cover Page (bottom section)"),
			Fix:      "Add required declaration on cover page above signature line",
		})
	}

	if !rules.HasSignature(text) {
		issues = append(issues, Issue{
			Category: CategoryStructure,
			Severity: SeverityMedium,
			Rule:     "Cover Page Format",
			Message:  "Cover page should include signature line",
			Expected: "Signature: _________________",
			Found:    "No signature line found",
			Location: section("Cover Page"),
			Fix:      `Add "Signature: _________________" after declaration`,
		})
	}
	return issues
}

func checkDissertationParts(doc *model.Document, rules *guide.StructureRules) []Issue {
	var issues []Issue

	if !doc.Structure.HasTableOfContents {
		issues = append(issues, Issue{
			Category: CategoryStructure,
			Severity: SeverityHigh,
			Rule:     "Table of Contents",
			Message:  "Dissertation must include Table of Contents",
			Expected: "Table of Contents after Declaration page",
			Found:    "No Table of Contents found",
			Location: section("Preliminary pages"),
			Fix:      "Add Table of Contents",
		})
	}

	if !rules.HasDeclarationPage(doc.Content.Text) {
		issues = append(issues, Issue{
			Category: CategoryStructure,
			Severity: SeverityHigh,
			Rule:     "Declaration Page",
			Message:  "Dissertation must include Declaration page",
			Expected: "Declaration page with required statements",
			Found:    "No Declaration page found",
			Location: section("Preliminary pages"),
			Fix:      "Add Declaration page after Signatory page",
		})
	}

	chapters := 0
	for _, h := range doc.Content.Headings {
		if h.Level == 1 && rules.IsChapterTitle(h.Text) {
			chapters++
		}
	}
	if chapters < rules.MinChapters {
		issues = append(issues, Issue{
			Category: CategoryStructure,
			Severity: SeverityMedium,
			Rule:     "Chapter Structure",
			Message:  "Dissertation should have at least Introduction + body chapters + Conclusion",
			Expected: fmt.Sprintf("Minimum %d chapters", rules.MinChapters),
			Found:    fmt.Sprintf("%d chapters detected", chapters),
			Location: section("Document structure"),
			Fix:      "Ensure proper chapter division",
		})
	}
	return issues
}
