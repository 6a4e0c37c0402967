package stylecheck

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tsawler/stylecheck/docx"
	"github.com/tsawler/stylecheck/format"
	"github.com/tsawler/stylecheck/guide"
	"github.com/tsawler/stylecheck/model"
	"github.com/tsawler/stylecheck/report"
	"github.com/tsawler/stylecheck/rules"
	"github.com/tsawler/stylecheck/validate"
)

// ExtractionObserver is implemented by recorders that also want the time
// spent building the document model.
type ExtractionObserver interface {
	ObserveExtraction(took time.Duration, err error)
}

// Checker provides a fluent interface for checking a document.
// Each configuration method returns a new Checker instance, making it
// safe for concurrent use and allowing method chaining.
type Checker struct {
	// Source: a path, or bytes when inline is set.
	path   string
	name   string
	data   []byte
	inline bool

	options CheckOptions
}

// clone creates a shallow copy of the Checker with a copy of its options.
func (c *Checker) clone() *Checker {
	return &Checker{
		path:    c.path,
		name:    c.name,
		data:    c.data,
		inline:  c.inline,
		options: c.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Checker instance)
// ============================================================================

// As selects the document type. Invalid values fall back to assignment.
//
// Example:
//
//	rep, err := stylecheck.Open("thesis.docx").As(model.Dissertation).Validate(ctx)
func (c *Checker) As(dt model.DocumentType) *Checker {
	n := c.clone()
	if !dt.IsValid() {
		dt = model.Assignment
	}
	n.options.docType = dt
	return n
}

// Guide sets the style guide to check against.
func (c *Checker) Guide(g *guide.StyleGuide) *Checker {
	n := c.clone()
	n.options.guide = g
	return n
}

// Rules replaces the built-in rule set.
func (c *Checker) Rules(r *rules.Registry) *Checker {
	n := c.clone()
	n.options.registry = r
	return n
}

// Logger sets the logger for extraction and validation diagnostics.
func (c *Checker) Logger(l *slog.Logger) *Checker {
	n := c.clone()
	if l != nil {
		n.options.logger = l
	}
	return n
}

// Recorder sets a recorder for rule timings and report summaries. If r
// also implements ExtractionObserver, extraction time is recorded too.
func (c *Checker) Recorder(r validate.Recorder) *Checker {
	n := c.clone()
	n.options.recorder = r
	return n
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document extracts the document model without running any rules.
func (c *Checker) Document() (*model.Document, error) {
	r, err := c.openReader()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	start := time.Now()
	doc := r.Model()
	c.observeExtraction(time.Since(start), nil)
	return doc, nil
}

// StyleUsage returns the paragraph styles the document uses with their
// resolved fonts and sizes.
func (c *Checker) StyleUsage() ([]docx.StyleUsage, error) {
	r, err := c.openReader()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.StyleUsage(), nil
}

// Validate extracts the document model and checks it against the guide.
//
// Example:
//
//	rep, err := stylecheck.Open("essay.docx").Validate(ctx)
func (c *Checker) Validate(ctx context.Context) (*report.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := c.Document()
	if err != nil {
		return nil, err
	}

	opts := []validate.Option{
		validate.WithGuide(c.options.styleGuide()),
		validate.WithLogger(c.options.logger),
		validate.WithFileName(c.name),
	}
	if c.options.registry != nil {
		opts = append(opts, validate.WithRegistry(c.options.registry))
	}
	if c.options.recorder != nil {
		opts = append(opts, validate.WithRecorder(c.options.recorder))
	}
	return validate.Validate(ctx, doc, c.options.docType, opts...)
}

// openReader sniffs the source and opens it as a DOCX package. Every
// failure wraps ErrUnreadable.
func (c *Checker) openReader() (*docx.Reader, error) {
	g := c.options.styleGuide()
	opts := []docx.Option{
		docx.WithLogger(c.options.logger),
		docx.WithQuoteLayout(g.Quotations.CharsPerLine, g.Quotations.MaxInlineLines),
	}

	if c.inline {
		ra := bytes.NewReader(c.data)
		return c.open(ra, int64(len(c.data)), nil, opts)
	}

	if c.path == "" {
		return nil, fmt.Errorf("%w: no file specified", ErrUnreadable)
	}
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return c.open(f, info.Size(), f, opts)
}

func (c *Checker) open(ra io.ReaderAt, size int64, closer io.Closer, opts []docx.Option) (*docx.Reader, error) {
	fail := func(err error) (*docx.Reader, error) {
		if closer != nil {
			closer.Close()
		}
		c.observeExtraction(0, err)
		c.options.logger.Warn("document unreadable", "file", c.name, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, c.name, err)
	}

	if err := format.RequireDOCX(ra, size); err != nil {
		return fail(err)
	}
	r, err := docx.NewReader(ra, size, append(opts, docx.WithCloser(closer))...)
	if err != nil {
		return fail(err)
	}
	return r, nil
}

func (c *Checker) observeExtraction(took time.Duration, err error) {
	if obs, ok := c.options.recorder.(ExtractionObserver); ok {
		obs.ObserveExtraction(took, err)
	}
}
