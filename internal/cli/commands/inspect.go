package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tsawler/stylecheck"
	"github.com/tsawler/stylecheck/docx"
	"github.com/tsawler/stylecheck/internal/logging"
	"github.com/tsawler/stylecheck/model"
)

// InspectOptions holds options for the inspect command.
type InspectOptions struct {
	Format string // text or json
}

// InspectJSONOutput is the JSON shape of inspect.
type InspectJSONOutput struct {
	File          string              `json:"file"`
	Paragraphs    int                 `json:"paragraphs"`
	Footnotes     int                 `json:"footnotes"`
	WordCount     int                 `json:"wordCount"`
	PageEstimate  int                 `json:"pageCountEstimate"`
	Fonts         []string            `json:"fonts"`
	FontSizes     []float64           `json:"fontSizes"`
	Margins       *model.Margins      `json:"margins,omitempty"`
	PageNumbering model.PageNumbering `json:"pageNumbering"`
	Headings      []model.Heading     `json:"headings"`
	Styles        []docx.StyleUsage   `json:"styles"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect <file.docx>",
		Short: "Show the formatting facts extracted from a document",
		Long: `Show what the checker sees in a document: fonts, sizes, margins, page
numbering, headings and the paragraph styles in use with the font, size,
alignment, line spacing and emphasis each resolves to.`,
		Example: `  stylecheck inspect essay.docx
  stylecheck inspect essay.docx --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runInspect(cmd *cobra.Command, path string, opts *InspectOptions) error {
	c := stylecheck.Open(path).Logger(logging.FromContext(cmd.Context()))

	doc, err := c.Document()
	if err != nil {
		return err
	}
	styles, err := c.StyleUsage()
	if err != nil {
		return err
	}

	out := InspectJSONOutput{
		File:          path,
		Paragraphs:    len(doc.Content.Paragraphs),
		Footnotes:     len(doc.Content.Footnotes),
		WordCount:     doc.Structure.WordCount,
		PageEstimate:  doc.Structure.PageCountEstimate,
		Fonts:         doc.Formatting.FontsUsed,
		FontSizes:     doc.Formatting.FontSizesUsed,
		Margins:       doc.Formatting.Margins,
		PageNumbering: doc.Formatting.PageNumbering,
		Headings:      doc.Content.Headings,
		Styles:        styles,
	}

	switch strings.ToLower(opts.Format) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "", "text":
		return inspectText(cmd.OutOrStdout(), out)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", opts.Format)
	}
}

func inspectText(w io.Writer, out InspectJSONOutput) error {
	_, _ = fmt.Fprintf(w, "%s\n\n", out.File)
	_, _ = fmt.Fprintf(w, "Paragraphs:     %d\n", out.Paragraphs)
	_, _ = fmt.Fprintf(w, "Footnotes:      %d\n", out.Footnotes)
	_, _ = fmt.Fprintf(w, "Words:          %d (about %d pages)\n", out.WordCount, out.PageEstimate)
	_, _ = fmt.Fprintf(w, "Fonts:          %s\n", orNone(strings.Join(out.Fonts, ", ")))
	_, _ = fmt.Fprintf(w, "Font sizes:     %s\n", orNone(joinSizes(out.FontSizes)))
	if m := out.Margins; m != nil {
		_, _ = fmt.Fprintf(w, "Margins:        top %.2fin, bottom %.2fin, left %.2fin, right %.2fin\n", m.Top, m.Bottom, m.Left, m.Right)
	} else {
		_, _ = fmt.Fprintln(w, "Margins:        none")
	}
	if out.PageNumbering.Present {
		_, _ = fmt.Fprintf(w, "Page numbers:   %s\n", out.PageNumbering.Location)
	} else {
		_, _ = fmt.Fprintln(w, "Page numbers:   none")
	}

	if len(out.Headings) > 0 {
		_, _ = fmt.Fprintln(w, "\nHeadings")
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Paragraph", "Level", "Style", "Text"})
		for _, h := range out.Headings {
			t.AppendRow(table.Row{h.Index, h.Level, h.StyleID, model.Snippet(h.Text, 50)})
		}
		t.Render()
	}

	_, _ = fmt.Fprintln(w, "\nParagraph styles")
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Style", "Name", "Font", "Size", "Align", "Spacing", "Emphasis", "Paragraphs"})
	for _, s := range out.Styles {
		size := ""
		if s.Size > 0 {
			size = strconv.FormatFloat(s.Size, 'f', -1, 64) + "pt"
		}
		spacing := "auto"
		if s.LineSpacing > 0 {
			spacing = strconv.FormatFloat(s.LineSpacing, 'f', 2, 64)
		}
		t.AppendRow(table.Row{orNone(s.StyleID), s.Name, s.Font, size, s.Alignment, spacing, emphasis(s), s.Paragraphs})
	}
	t.Render()
	return nil
}

func emphasis(s docx.StyleUsage) string {
	var parts []string
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	return strings.Join(parts, " ")
}

func joinSizes(sizes []float64) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.FormatFloat(s, 'f', -1, 64) + "pt"
	}
	return strings.Join(parts, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
