// Package stylecheck provides a fluent API for checking Word documents
// against an academic style guide.
//
// Basic usage:
//
//	rep, err := stylecheck.Open("essay.docx").Validate(ctx)
//	if err != nil {
//	    // the document could not be read
//	}
//	fmt.Println(rep.Summary.TotalIssues)
//
// With options:
//
//	rep, err := stylecheck.Open("thesis.docx").
//	    As(model.Dissertation).
//	    Guide(myGuide).
//	    Logger(logger).
//	    Validate(ctx)
//
// For uploads already held in memory use FromBytes. The lower-level docx,
// rules and validate packages are available for finer control.
package stylecheck

import (
	"errors"
)

// ErrUnreadable is wrapped by every error caused by a document that cannot
// be opened or parsed. No partial report is produced for such documents.
var ErrUnreadable = errors.New("document could not be read")

// Open returns a Checker for the DOCX file at path. The file is read when a
// terminal operation such as Validate runs.
//
// Example:
//
//	rep, err := stylecheck.Open("essay.docx").Validate(ctx)
func Open(path string) *Checker {
	return &Checker{
		path:    path,
		name:    path,
		options: defaultOptions(),
	}
}

// FromBytes returns a Checker for a DOCX package held in memory. name is
// used in the report and in error messages.
//
// Example:
//
//	rep, err := stylecheck.FromBytes(header.Filename, data).As(model.Dissertation).Validate(ctx)
func FromBytes(name string, data []byte) *Checker {
	return &Checker{
		name:    name,
		data:    data,
		inline:  true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	rep := stylecheck.Must(stylecheck.Open("essay.docx").Validate(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
