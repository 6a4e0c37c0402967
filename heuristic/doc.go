// Package heuristic holds the pattern-based predicates used to approximate
// structure that a word-processing document does not encode explicitly:
// quotations, bibliographies, cover pages, citation markers and heading
// numbering.
//
// Each predicate is a plain function over text so that its accuracy can be
// improved and tested without touching the rule that consumes it. The
// predicates approximate what a reader would check by eye; several of them
// are known to be imprecise and are documented as such.
//
// # Quotations
//
// FindQuotations scans flattened document text for double-quoted spans:
//
//	quotes := heuristic.FindQuotations(text, 80, 4)
//	for _, q := range quotes {
//	    if q.NeedsBlockFormat {
//	        // longer than four estimated lines
//	    }
//	}
//
// Offsets are in runes, so they can be used to slice []rune(text).
package heuristic
