// Package main is the entry point for the rswatch CLI.
//
// rswatch follows a Redshift Serverless producer/consumer deployment while
// it is provisioned or torn down. It polls the AWS control plane, folds the
// observations into ten ordered deployment phases and shows the result as a
// terminal dashboard, a one-shot status report or an HTTP API.
//
// Commands: watch, status, serve, init.
//
// For detailed usage information, run:
//
//	rswatch --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/rswatch/cmd/rswatch/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
