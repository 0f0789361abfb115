package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/imamik/rswatch/internal/deploy"
	"github.com/imamik/rswatch/internal/lockfile"
)

const (
	contentType = "application/json"
	// DefaultInterval is how often the snapshot is checked for changes.
	DefaultInterval = 5 * time.Second
	historyLayout   = "20060102T150405Z"
	finalTimeout    = 10 * time.Second
)

// ObjectStore stores objects by key.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
}

// Source provides the latest snapshot.
type Source interface {
	Snapshot() deploy.Snapshot
}

// Options configures an Archiver.
type Options struct {
	Prefix   string
	Interval time.Duration
	Clock    clock.WithTicker
	Logger   logr.Logger
}

// fingerprint is the part of a snapshot whose change triggers an upload.
type fingerprint struct {
	progress   int
	complete   bool
	teardown   bool
	statuses   string
	issues     int
	lock       lockfile.State
	owner      string
	highlights deploy.Highlights
}

func fingerprintOf(s deploy.Snapshot) fingerprint {
	var b strings.Builder
	for _, p := range s.Phases {
		b.WriteString(p.Status.String())
		b.WriteByte(';')
	}
	return fingerprint{
		progress:   s.Progress,
		complete:   s.DeploymentComplete,
		teardown:   s.TeardownDetected,
		statuses:   b.String(),
		issues:     len(s.Issues),
		lock:       s.Lock.State,
		owner:      s.Lock.Owner,
		highlights: s.Highlights,
	}
}

// Archiver uploads snapshots whenever the observed state changes.
type Archiver struct {
	store    ObjectStore
	source   Source
	prefix   string
	interval time.Duration
	clock    clock.WithTicker
	log      logr.Logger

	last    fingerprint
	written bool
}

// New creates an Archiver.
func New(store ObjectStore, source Source, opts Options) *Archiver {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}
	return &Archiver{
		store:    store,
		source:   source,
		prefix:   strings.Trim(opts.Prefix, "/"),
		interval: opts.Interval,
		clock:    opts.Clock,
		log:      opts.Logger.WithName("archive"),
	}
}

// LatestKey returns the key of the project's most recent snapshot.
func (a *Archiver) LatestKey(project string) string {
	return path.Join(a.prefix, project, "latest.json")
}

// HistoryKey returns the key a snapshot is kept under in the history.
func (a *Archiver) HistoryKey(s deploy.Snapshot) string {
	at := s.LastPoll
	if at.IsZero() {
		at = a.clock.Now()
	}
	name := fmt.Sprintf("%s-%03d.json", at.UTC().Format(historyLayout), s.Progress)
	return path.Join(a.prefix, s.Project, "history", name)
}

// Sync uploads the current snapshot if it changed since the last upload.
// Nothing is written before the first reconciliation cycle.
func (a *Archiver) Sync(ctx context.Context) (bool, error) {
	s := a.source.Snapshot()
	if s.Cycles == 0 {
		return false, nil
	}
	fp := fingerprintOf(s)
	if a.written && fp == a.last {
		return false, nil
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := a.store.PutObject(ctx, a.HistoryKey(s), data, contentType); err != nil {
		return false, err
	}
	if err := a.store.PutObject(ctx, a.LatestKey(s.Project), data, contentType); err != nil {
		return false, err
	}

	a.last = fp
	a.written = true
	a.log.V(1).Info("snapshot archived", "progress", s.Progress, "cycle", s.Cycles)
	return true, nil
}

// Run syncs on every interval until ctx is cancelled, then writes the final
// state once more. Upload failures are logged and retried on the next tick.
func (a *Archiver) Run(ctx context.Context) error {
	ticker := a.clock.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalTimeout)
			defer cancel()
			if _, err := a.Sync(fctx); err != nil {
				a.log.Error(err, "final snapshot upload failed")
			}
			return nil
		case <-ticker.C():
			if _, err := a.Sync(ctx); err != nil {
				a.log.Error(err, "snapshot upload failed")
			}
		}
	}
}
