package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/stylecheck/rules"
)

// Format selects a renderer.
type Format string

// Supported output formats.
const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat converts a flag value into a Format. "md" is accepted for
// markdown; an empty value selects text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "html":
		return FormatHTML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Options controls rendering.
type Options struct {
	// Color enables severity styling in text output.
	Color bool
}

// Render writes r to w in format f.
func Render(w io.Writer, r *Report, f Format, opts Options) error {
	switch f {
	case FormatJSON:
		return JSON(w, r)
	case FormatHTML:
		return HTML(w, r)
	case FormatMarkdown:
		return Markdown(w, r)
	case FormatText, "":
		return Text(w, r, opts)
	}
	return fmt.Errorf("unknown output format %q", f)
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// FormatLocation returns a short human-readable location: "paragraph 12",
// "footnote 3" or a section name. It returns "" for a nil location.
func FormatLocation(loc *rules.Location) string {
	if loc == nil {
		return ""
	}
	var parts []string
	if loc.Paragraph > 0 {
		parts = append(parts, fmt.Sprintf("paragraph %d", loc.Paragraph))
	}
	if loc.Footnote != "" {
		parts = append(parts, "footnote "+loc.Footnote)
	}
	if loc.Section != "" {
		parts = append(parts, loc.Section)
	}
	return strings.Join(parts, ", ")
}

func title(r *Report) string {
	if r.FileName == "" {
		return "Style report"
	}
	return "Style report: " + r.FileName
}

func summaryLine(s Summary) string {
	return fmt.Sprintf("%d issues (%d critical, %d high, %d medium, %d low)",
		s.TotalIssues, s.Critical, s.High, s.Medium, s.Low)
}
