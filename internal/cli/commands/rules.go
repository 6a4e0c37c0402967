package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tsawler/stylecheck/rules"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Format string // text or json
}

// RulesJSONOutput is the JSON shape of the rules listing.
type RulesJSONOutput struct {
	Count int              `json:"count"`
	Rules []rules.RuleInfo `json:"rules"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List the rule modules and the checks they report",
		Long: `List the rule modules in evaluation order with the check names each one
reports. Module ids and check names are the keys accepted by the style guide's
rules.disabled and rules.severity settings.`,
		Example: `  stylecheck rules
  stylecheck rules headings
  stylecheck rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runRules(cmd *cobra.Command, args []string, opts *RulesOptions) error {
	infos := rules.Default().Info()
	if len(args) == 1 {
		var found []rules.RuleInfo
		for _, info := range infos {
			if info.ID == args[0] {
				found = append(found, info)
			}
		}
		if len(found) == 0 {
			return fmt.Errorf("rule %q not found", args[0])
		}
		infos = found
	}

	w := cmd.OutOrStdout()
	switch strings.ToLower(opts.Format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(RulesJSONOutput{Count: len(infos), Rules: infos})
	case "", "text":
	default:
		return fmt.Errorf("unknown format %q (want text or json)", opts.Format)
	}

	bold := lipgloss.NewRenderer(w).NewStyle().Bold(true)
	if !isTerminal(w) {
		bold = lipgloss.NewStyle()
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Checks"})
	for _, info := range infos {
		t.AppendRow(table.Row{bold.Render(info.ID), info.Name, strings.Join(info.Checks, "\n")})
		t.AppendSeparator()
	}
	t.Render()

	if len(infos) == 1 {
		_, _ = fmt.Fprintf(w, "\n%s\n", infos[0].Description)
	}
	return nil
}
