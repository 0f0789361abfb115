package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/rswatch/cmd/rswatch/handlers"
)

// Watch returns the command that follows a deployment live.
//
// Optional flags:
//
//	--exit-on-complete: Exit once every phase is complete
func Watch(opts *handlers.Options) *cobra.Command {
	var exitOnComplete bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow a deployment live",
		Long: `Follow a Redshift Serverless deployment while it is provisioned.

On a terminal a dashboard shows the ten deployment phases, the provisioning
lock, detected issues and an ETA. The poll rate adapts to the active phase.
When output is not a terminal one line is printed whenever the state changes.

Teardown is detected automatically and switches the progress bar to a
countdown of remaining resources.

Examples:
  # Watch the default project
  rswatch watch

  # Watch another project and stop when it is ready
  rswatch watch --project airline --exit-on-complete`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Watch(cmd.Context(), *opts, exitOnComplete)
		},
	}

	cmd.Flags().BoolVar(&exitOnComplete, "exit-on-complete", false, "Exit once the deployment is complete")

	return cmd
}
