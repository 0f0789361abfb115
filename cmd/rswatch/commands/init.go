package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/rswatch/cmd/rswatch/handlers"
	"github.com/imamik/rswatch/internal/config"
)

// Init returns the command for interactively creating a configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "rswatch.yaml")
//	--full, -f: Output full YAML with all options (default: minimal output)
func Init() *cobra.Command {
	var (
		outputPath string
		fullOutput bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create an rswatch configuration",
		Long: `Interactively create an rswatch configuration file.

The wizard asks for:

  - Project name and AWS region
  - Number of consumer workgroups and targets per consumer
  - AWS profile (optional)
  - Whether to record Prometheus metrics
  - An S3 bucket for snapshot history (optional)

Use --full to output every option with its default value.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, fullOutput)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultFileName, "Output file path")
	cmd.Flags().BoolVarP(&fullOutput, "full", "f", false, "Output full YAML with all options")

	return cmd
}
