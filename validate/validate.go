// Package validate runs the rule modules against a document model and
// assembles the report.
package validate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/stylecheck/guide"
	"github.com/tsawler/stylecheck/model"
	"github.com/tsawler/stylecheck/report"
	"github.com/tsawler/stylecheck/rules"
)

// ErrNilDocument is returned when Validate is called without a document.
var ErrNilDocument = errors.New("validate: nil document")

// Recorder receives measurements of a validation run.
type Recorder interface {
	// ObserveRule is called once per rule that ran.
	ObserveRule(rule string, took time.Duration, issues int)
	// ObserveReport is called once per finished report.
	ObserveReport(dt model.DocumentType, s report.Summary)
}

type options struct {
	registry *rules.Registry
	guide    *guide.StyleGuide
	logger   *slog.Logger
	recorder Recorder
	fileName string
}

// Option configures a validation run.
type Option func(*options)

// WithRegistry replaces the built-in rule set.
func WithRegistry(r *rules.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithGuide sets the style guide. The default is guide.Default().
func WithGuide(g *guide.StyleGuide) Option {
	return func(o *options) { o.guide = g }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRecorder reports per-rule timings and the final summary to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithFileName sets the file name recorded in the report.
func WithFileName(name string) Option {
	return func(o *options) { o.fileName = name }
}

// Validate runs every enabled rule against doc and returns the merged,
// tallied and sorted report.
//
// Rules run concurrently, each on its own copy of doc. Their results are
// merged in registry order and then sorted by severity rank and paragraph
// index with a stable sort, so the report does not depend on which rule
// finished first. The context is only consulted before the rules are
// dispatched.
func Validate(ctx context.Context, doc *model.Document, dt model.DocumentType, opts ...Option) (*report.Report, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = rules.Default()
	}
	if o.guide == nil {
		o.guide = guide.Default()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	if doc == nil {
		return nil, ErrNilDocument
	}
	if !dt.IsValid() {
		return nil, fmt.Errorf("validate: unknown document type %q", dt)
	}
	if err := o.guide.Compile(); err != nil {
		return nil, fmt.Errorf("validate: style guide: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var enabled []rules.Rule
	for _, r := range o.registry.All() {
		if o.guide.Rules.IsDisabled(r.ID()) {
			o.logger.Debug("rule disabled", "rule", r.ID())
			continue
		}
		enabled = append(enabled, r)
	}

	results := make([][]rules.Issue, len(enabled))
	var g errgroup.Group
	for i, r := range enabled {
		g.Go(func() error {
			start := time.Now()
			results[i] = r.Check(doc.Clone(), dt, o.guide)
			took := time.Since(start)

			o.logger.Debug("rule finished", "rule", r.ID(), "issues", len(results[i]), "took", took)
			if o.recorder != nil {
				o.recorder.ObserveRule(r.ID(), took, len(results[i]))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var issues []rules.Issue
	for _, res := range results {
		issues = append(issues, res...)
	}
	issues = applyOverrides(issues, o.guide.Rules, o.logger)
	Sort(issues)

	rep := &report.Report{
		DocumentType: dt,
		FileName:     o.fileName,
		Summary:      report.Tally(issues),
		Issues:       issues,
	}
	if rep.Issues == nil {
		rep.Issues = []rules.Issue{}
	}
	if o.recorder != nil {
		o.recorder.ObserveReport(dt, rep.Summary)
	}
	o.logger.Info("validation finished",
		"document_type", dt,
		"issues", rep.Summary.TotalIssues,
		"critical", rep.Summary.Critical)
	return rep, nil
}

// applyOverrides drops issues whose rule name is disabled and re-grades
// issues whose rule name has a severity override. Invalid override values
// are logged and ignored.
func applyOverrides(issues []rules.Issue, ov guide.RuleOverrides, logger *slog.Logger) []rules.Issue {
	if len(ov.Disabled) == 0 && len(ov.Severity) == 0 {
		return issues
	}

	grades := make(map[string]rules.Severity, len(ov.Severity))
	for name, value := range ov.Severity {
		sev, ok := rules.ParseSeverity(value)
		if !ok {
			logger.Warn("ignoring invalid severity override", "rule", name, "severity", value)
			continue
		}
		grades[name] = sev
	}

	out := issues[:0]
	for _, i := range issues {
		if ov.IsDisabled(i.Rule) {
			continue
		}
		if sev, ok := grades[i.Rule]; ok {
			i.Severity = sev
		}
		out = append(out, i)
	}
	return out
}

// Sort orders issues by severity rank, most serious first, then by
// ascending paragraph index. Issues without a paragraph sort as index 0.
// The sort is stable, so equal issues keep their merge order.
func Sort(issues []rules.Issue) {
	sort.SliceStable(issues, func(a, b int) bool {
		ra, rb := issues[a].Severity.Rank(), issues[b].Severity.Rank()
		if ra != rb {
			return ra < rb
		}
		return issues[a].ParagraphIndex() < issues[b].ParagraphIndex()
	})
}
