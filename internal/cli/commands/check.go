package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/stylecheck"
	"github.com/tsawler/stylecheck/internal/config"
	"github.com/tsawler/stylecheck/internal/logging"
	"github.com/tsawler/stylecheck/model"
	"github.com/tsawler/stylecheck/report"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Type   string // assignment or dissertation
	Format string // text, json, html, markdown
	Out    string // report file; empty writes to stdout
	FailOn string // lowest severity that fails the run
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check <file.docx>",
		Short: "Check a document against the style guide",
		Long: `Check a .docx document against the style guide and print a report.

Issues are ordered by severity, then by paragraph. With --fail-on the command
exits with status 1 when any issue at or above that severity is found.`,
		Example: `  # Check an assignment
  stylecheck check essay.docx

  # Check a dissertation and write an HTML report
  stylecheck check thesis.docx --type dissertation --format html --out report.html

  # Fail a CI job on critical issues
  stylecheck check essay.docx --fail-on critical`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", string(model.Assignment), "Document type: assignment, dissertation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, html, markdown")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "Write the report to a file")
	cmd.Flags().StringVar(&opts.FailOn, "fail-on", "", "Exit 1 on issues at or above: critical, high, medium, low, none")

	_ = cmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(model.Assignment), string(model.Dissertation)}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "html", "markdown"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCheck(cmd *cobra.Command, path string, opts *CheckOptions) error {
	cfg := config.FromContext(cmd.Context())
	logger := logging.FromContext(cmd.Context())

	dt := model.DocumentType(strings.ToLower(strings.TrimSpace(opts.Type)))
	if !dt.IsValid() {
		return fmt.Errorf("unknown document type %q (want assignment or dissertation)", opts.Type)
	}
	format, err := report.ParseFormat(flagOr(cmd, "format", cfg.Format))
	if err != nil {
		return err
	}
	failOn, err := parseFailOn(flagOr(cmd, "fail-on", cfg.FailOn))
	if err != nil {
		return err
	}
	g, err := cfg.StyleGuide()
	if err != nil {
		return err
	}

	rep, err := stylecheck.Open(path).
		As(dt).
		Guide(g).
		Logger(logger).
		Validate(cmd.Context())
	if err != nil {
		return err
	}

	if err := writeReport(cmd.OutOrStdout(), opts.Out, rep, format); err != nil {
		return err
	}

	if failOn != "" && rep.AtLeast(failOn) {
		return &ExitError{
			Code: 1,
			Err:  fmt.Errorf("%s: issues at or above %s severity found", path, failOn),
		}
	}
	return nil
}

func writeReport(stdout io.Writer, out string, rep *report.Report, format report.Format) error {
	if out == "" {
		return report.Render(stdout, rep, format, report.Options{Color: isTerminal(stdout)})
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := report.Render(f, rep, format, report.Options{}); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
