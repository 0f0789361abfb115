// Package tui provides a Bubble Tea-based terminal dashboard for a deployment.
package tui

import "github.com/imamik/rswatch/internal/deploy"

// SnapshotMsg carries the latest published snapshot.
type SnapshotMsg struct {
	Snapshot deploy.Snapshot
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that watching has finished.
type DoneMsg struct{}
