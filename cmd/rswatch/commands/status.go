package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/rswatch/cmd/rswatch/handlers"
)

// Status returns the command that prints the deployment state once.
//
// Optional flags:
//
//	--output, -o: Output format (text, json, yaml)
func Status(opts *handlers.Options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the current deployment state",
		Long: `Run one reconciliation cycle and print the resulting snapshot.

Examples:
  # Human readable summary
  rswatch status

  # Full snapshot for scripts
  rswatch status -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), *opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", handlers.OutputText, "Output format: text, json or yaml")

	return cmd
}
