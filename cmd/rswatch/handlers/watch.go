package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/imamik/rswatch/internal/deploy"
	"github.com/imamik/rswatch/internal/ui/tui"
)

var (
	// runWatchTUI runs the dashboard. Replaceable in tests.
	runWatchTUI = tui.RunWatchTUI

	// plainRefreshInterval is how often plain output checks for changes.
	plainRefreshInterval = time.Second
)

// Watch follows the deployment until the user quits, ctx is cancelled or,
// with exitOnComplete, every phase is complete.
func Watch(ctx context.Context, opts Options, exitOnComplete bool) error {
	interactive := isInteractiveTTY()

	log, flush, err := newLogger(opts.Verbose, opts.LogFile, interactive)
	if err != nil {
		return err
	}
	defer flush()

	s, err := newSession(ctx, opts, log, sessionOptions{watchLock: true, archive: true})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if interactive {
		return s.run(ctx, func(ctx context.Context) error {
			defer cancel()
			return runWatchTUI(ctx, s.reconciler.Snapshot, s.cfg.Project, s.cfg.Region, exitOnComplete)
		})
	}

	return s.run(ctx, func(ctx context.Context) error {
		defer cancel()
		watchPlain(ctx, s.reconciler.Snapshot, exitOnComplete)
		return nil
	})
}

// watchPlain prints one line whenever the published state changes.
func watchPlain(ctx context.Context, source func() deploy.Snapshot, exitOnComplete bool) {
	ticker := time.NewTicker(plainRefreshInterval)
	defer ticker.Stop()

	last := ""
	for {
		s := source()
		if s.Cycles > 0 {
			if line := snapshotLine(s); line != last {
				fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05"), line)
				last = line
			}
			if exitOnComplete && s.DeploymentComplete {
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// snapshotLine summarizes a snapshot in one line.
func snapshotLine(s deploy.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %3d%%", s.Project, s.Progress)

	switch {
	case s.TeardownDetected:
		b.WriteString(" teardown")
		if s.Teardown != nil {
			fmt.Fprintf(&b, " (%d/%d resources remaining)", s.Teardown.Remaining, s.Teardown.Baseline)
		}
	case s.DeploymentComplete:
		b.WriteString(" complete")
	default:
		active := s.Active()
		fmt.Fprintf(&b, " %s: %s", active.Name, active.Status)
		if active.Detail != "" {
			fmt.Fprintf(&b, " (%s)", active.Detail)
		}
	}

	fmt.Fprintf(&b, " | %d/%d phases", s.Completed(), len(s.Phases))
	if s.Lock.Held() {
		fmt.Fprintf(&b, " | lock held by %s", s.Lock.Owner)
	}
	if n := len(s.Issues); n > 0 {
		fmt.Fprintf(&b, " | %d issue(s)", n)
	}
	return b.String()
}
