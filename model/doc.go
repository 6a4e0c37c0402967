// Package model provides the document model produced by the extractor and
// consumed by the rule modules.
//
// A [Document] is built once per validation by the docx package and is only
// read afterwards. Rule modules receive a pointer to it and must not modify
// any field; the orchestrator runs them concurrently over the same value.
//
// # Document Structure
//
// The model is split into three sections that mirror the questions the style
// rules ask:
//
//   - [Content] - flattened text, paragraphs, footnotes, headings, quotations
//   - [Formatting] - fonts and sizes used, margins, line spacing, page numbers
//   - [Structure] - word count, page estimate, table of contents, bibliography
//
// # Inherited Formatting
//
// Per-paragraph fonts and sizes are recorded once per text-bearing run. A run
// without explicit formatting is recorded as an inherited value rather than
// dropped, so a paragraph whose formatting comes entirely from its style is
// distinguishable from one with no text:
//
//	for _, f := range para.Formatting.Fonts {
//	    if name, ok := f.Name(); ok {
//	        // explicit font on the run
//	    }
//	}
package model
