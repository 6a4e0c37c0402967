package rules

import (
	"github.com/tsawler/stylecheck/guide"
	"github.com/tsawler/stylecheck/model"
)

// Rule is a style check module. Implementations are stateless: all context
// comes through Check's parameters, and Check must not modify doc or g.
type Rule interface {
	// ID returns the unique identifier, e.g., "formatting"
	ID() string

	// Name returns the human-readable name, e.g., "Formatting"
	Name() string

	// Description returns a human-readable description
	Description() string

	// Checks returns the rule names the module can report, as used in
	// Issue.Rule.
	Checks() []string

	// Check evaluates the document and returns the issues found.
	Check(doc *model.Document, dt model.DocumentType, g *guide.StyleGuide) []Issue
}

// RuleInfo provides metadata about a rule for documentation and tooling.
type RuleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Checks      []string `json:"checks"`
}

// GetRuleInfo extracts metadata from a Rule.
func GetRuleInfo(r Rule) RuleInfo {
	return RuleInfo{
		ID:          r.ID(),
		Name:        r.Name(),
		Description: r.Description(),
		Checks:      r.Checks(),
	}
}

// ruleDef is a data-driven Rule.
type ruleDef struct {
	id          string
	name        string
	description string
	checks      []string
	check       func(doc *model.Document, dt model.DocumentType, g *guide.StyleGuide) []Issue
}

func (d *ruleDef) ID() string          { return d.id }
func (d *ruleDef) Name() string        { return d.name }
func (d *ruleDef) Description() string { return d.description }
func (d *ruleDef) Checks() []string    { return append([]string(nil), d.checks...) }

func (d *ruleDef) Check(doc *model.Document, dt model.DocumentType, g *guide.StyleGuide) []Issue {
	if doc == nil || g == nil {
		return nil
	}
	return d.check(doc, dt, g)
}
