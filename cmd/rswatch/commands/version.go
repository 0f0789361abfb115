package commands

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// buildInfo is set from main through SetVersionInfo.
var buildInfo = struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}{"dev", "none", "unknown"}

// SetVersionInfo records the values injected at link time.
func SetVersionInfo(version, commit, date string) {
	buildInfo.Version, buildInfo.Commit, buildInfo.Date = version, commit, date
}

// Version returns the version command.
func Version() *cobra.Command {
	var short, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch {
			case short:
				_, err := fmt.Fprintln(out, buildInfo.Version)
				return err
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(buildInfo)
			}
			_, err := fmt.Fprintf(out, "rswatch %s\n  commit: %s\n  built:  %s\n  go:     %s %s/%s\n",
				buildInfo.Version, buildInfo.Commit, buildInfo.Date,
				runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version information as JSON")
	cmd.MarkFlagsMutuallyExclusive("short", "json")
	return cmd
}
