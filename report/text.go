package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tsawler/stylecheck/rules"
)

// styles holds the lipgloss styles of the text renderer.
type styles struct {
	title    lipgloss.Style
	muted    lipgloss.Style
	severity map[rules.Severity]lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{title: plain, muted: plain, severity: map[rules.Severity]lipgloss.Style{}}
	}
	re := lipgloss.NewRenderer(w)
	return styles{
		title: re.NewStyle().Bold(true),
		muted: re.NewStyle().Foreground(lipgloss.Color("8")),
		severity: map[rules.Severity]lipgloss.Style{
			rules.SeverityCritical: re.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			rules.SeverityHigh:     re.NewStyle().Foreground(lipgloss.Color("208")),
			rules.SeverityMedium:   re.NewStyle().Foreground(lipgloss.Color("11")),
			rules.SeverityLow:      re.NewStyle().Foreground(lipgloss.Color("12")),
		},
	}
}

func (s styles) sev(sev rules.Severity) string {
	if st, ok := s.severity[sev]; ok {
		return st.Render(string(sev))
	}
	return string(sev)
}

// Text writes the report as a table followed by a summary line.
func Text(w io.Writer, r *Report, opts Options) error {
	st := newStyles(w, opts.Color)

	if _, err := fmt.Fprintf(w, "%s (%s)\n\n", st.title.Render(title(r)), r.DocumentType); err != nil {
		return err
	}

	if len(r.Issues) == 0 {
		_, err := fmt.Fprintln(w, "No issues found.")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Severity", "Category", "Rule", "Location", "Message"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Message", WidthMax: 60},
	})

	for n, i := range r.Issues {
		msg := i.Message
		if i.Fix != "" {
			msg += "\n" + st.muted.Render("Fix: "+i.Fix)
		}
		t.AppendRow(table.Row{n + 1, st.sev(i.Severity), string(i.Category), i.Rule, FormatLocation(i.Location), msg})
	}
	t.Render()

	_, err := fmt.Fprintln(w, "\n"+summaryLine(r.Summary))
	return err
}
