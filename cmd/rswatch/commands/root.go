// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/rswatch/cmd/rswatch/handlers"
)

// Root returns the root command for the rswatch CLI.
//
// The persistent flags select the deployment and override the values of
// the configuration file for every subcommand.
func Root() *cobra.Command {
	opts := &handlers.Options{}

	cmd := &cobra.Command{
		Use:          "rswatch",
		Short:        "Watch a Redshift Serverless deployment converge",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: rswatch.yaml)")
	flags.StringVarP(&opts.Project, "project", "p", "", "Project name embedded in every resource name")
	flags.StringVarP(&opts.Region, "region", "r", "", "AWS region")
	flags.IntVar(&opts.Consumers, "consumers", 0, "Expected consumer workgroups (default: detect)")
	flags.IntVar(&opts.Replicas, "replicas", 0, "Load balancer targets per consumer (default: one per subnet zone)")
	flags.StringVar(&opts.LockDir, "lock-dir", "", "Provisioning lock directory")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&opts.LogFile, "log-file", "", "Write logs to a file instead of stderr")
	flags.StringVar(&opts.ArchiveBucket, "archive-bucket", "", "S3 bucket that receives snapshot history")

	// Observation commands
	cmd.AddCommand(Watch(opts))
	cmd.AddCommand(Status(opts))
	cmd.AddCommand(Serve(opts))

	// Utility commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
