package commands

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/stylecheck/internal/config"
)

// NewGuideCommand creates the guide command.
func NewGuideCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Print the effective style guide as YAML",
		Long: `Print the style guide in effect: the file given by --guide (or the guide
setting of the config file), or the built-in guide. The output is a valid
guide file and can be edited and passed back with --guide.`,
		Example: `  stylecheck guide > my-guide.yaml
  stylecheck check essay.docx --guide my-guide.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := config.FromContext(cmd.Context()).StyleGuide()
			if err != nil {
				return err
			}
			data, err := g.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
