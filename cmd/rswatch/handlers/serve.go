package handlers

import (
	"context"

	"github.com/imamik/rswatch/internal/server"
)

// Serve runs the reconciliation loop and the HTTP API until ctx is cancelled.
// Metrics are always recorded so /metrics has data.
func Serve(ctx context.Context, opts Options, addr string) error {
	log, flush, err := newLogger(opts.Verbose, opts.LogFile, false)
	if err != nil {
		return err
	}
	defer flush()

	s, err := newSession(ctx, opts, log, sessionOptions{watchLock: true, enableMetrics: true, archive: true})
	if err != nil {
		return err
	}

	srv := server.New(addr, s.reconciler, log)
	return s.run(ctx, srv.Run)
}
