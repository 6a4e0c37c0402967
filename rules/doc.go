// Package rules contains the style rules evaluated against a document.
//
// Each rule is a stateless module over a read-only *model.Document and a
// *guide.StyleGuide. The built-in rules are registered in order by Default:
//
//   - formatting: fonts, sizes, margins, spacing, alignment, footnote
//     formatting and page numbers
//   - citations: footnote abbreviations, quotation citations and the
//     bibliography
//   - structure: cover page, declarations, table of contents, chapters and
//     section order
//   - quotations: block quotations, quotation marks and the placement of
//     footnote numbers and punctuation
//   - headings: hierarchy, depth and numbering format
//
// A rule reports zero or more Issue values. Rules never fail: a check that
// cannot be evaluated, such as margins missing from the document, is
// skipped rather than reported.
//
// # Using the Registry
//
//	for _, rule := range rules.Default().All() {
//	    issues := rule.Check(doc, model.Assignment, guide.Default())
//	    ...
//	}
package rules
