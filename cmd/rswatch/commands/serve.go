package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/rswatch/cmd/rswatch/handlers"
	"github.com/imamik/rswatch/internal/server"
)

// Serve returns the command that publishes snapshots over HTTP.
//
// Optional flags:
//
//	--addr: Listen address (default ":8080")
func Serve(opts *handlers.Options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve deployment snapshots over HTTP",
		Long: `Run the reconciliation loop and serve its snapshots.

Endpoints:
  GET /api/v1/snapshot           full snapshot
  GET /api/v1/phases             phases and progress
  GET /api/v1/resources/:family  cached records of one resource family
  GET /healthz                   liveness
  GET /readyz                    ready after the first poll
  GET /metrics                   Prometheus metrics`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Serve(cmd.Context(), *opts, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "Listen address")

	return cmd
}
