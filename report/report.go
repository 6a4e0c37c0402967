package report

import (
	"github.com/tsawler/stylecheck/model"
	"github.com/tsawler/stylecheck/rules"
)

// Report is the result of one validation run. It is built once by the
// validate package and only read afterwards.
type Report struct {
	DocumentType model.DocumentType `json:"documentType"`
	FileName     string             `json:"fileName"`
	Summary      Summary            `json:"summary"`
	Issues       []rules.Issue      `json:"issues"`
}

// Summary counts issues by severity.
type Summary struct {
	TotalIssues int `json:"totalIssues"`
	Critical    int `json:"critical"`
	High        int `json:"high"`
	Medium      int `json:"medium"`
	Low         int `json:"low"`
}

// Tally counts issues by severity. TotalIssues is len(issues); issues with
// an unknown severity are counted in the total only.
func Tally(issues []rules.Issue) Summary {
	s := Summary{TotalIssues: len(issues)}
	for _, i := range issues {
		switch i.Severity {
		case rules.SeverityCritical:
			s.Critical++
		case rules.SeverityHigh:
			s.High++
		case rules.SeverityMedium:
			s.Medium++
		case rules.SeverityLow:
			s.Low++
		}
	}
	return s
}

// Count returns the number of issues with severity sev.
func (s Summary) Count(sev rules.Severity) int {
	switch sev {
	case rules.SeverityCritical:
		return s.Critical
	case rules.SeverityHigh:
		return s.High
	case rules.SeverityMedium:
		return s.Medium
	case rules.SeverityLow:
		return s.Low
	}
	return 0
}

// AtLeast reports whether the report holds an issue at least as serious as
// sev.
func (r *Report) AtLeast(sev rules.Severity) bool {
	for _, i := range r.Issues {
		if i.Severity.Rank() <= sev.Rank() {
			return true
		}
	}
	return false
}

// BySeverity returns the report's issues with severity sev, in report order.
func (r *Report) BySeverity(sev rules.Severity) []rules.Issue {
	var out []rules.Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}
