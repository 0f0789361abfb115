package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/imamik/rswatch/internal/archive"
	"github.com/imamik/rswatch/internal/config"
	"github.com/imamik/rswatch/internal/deploy"
	"github.com/imamik/rswatch/internal/lockfile"
	"github.com/imamik/rswatch/internal/platform/aws"
	"github.com/imamik/rswatch/internal/platform/s3"
	"github.com/imamik/rswatch/internal/resource"
)

// Factory function variables - can be replaced in tests.
var (
	// newQuerier creates the AWS query adapter.
	newQuerier = func(ctx context.Context, cfg *config.Config, log logr.Logger) (resource.Querier, error) {
		return aws.NewClient(ctx, aws.Options{
			Region:   cfg.Region,
			Profile:  cfg.AWSProfile,
			Endpoint: cfg.AWSEndpoint,
			Timeouts: aws.Timeouts{
				Network:      cfg.QueryTimeouts.Network,
				Clusters:     cfg.QueryTimeouts.Clusters,
				Endpoints:    cfg.QueryTimeouts.Endpoints,
				LoadBalancer: cfg.QueryTimeouts.LoadBalancer,
				Targets:      cfg.QueryTimeouts.Targets,
			},
			EnableMetrics: cfg.Metrics,
			Logger:        log,
		})
	}

	// newArchiveStore opens the snapshot archive bucket.
	newArchiveStore = func(ctx context.Context, cfg *config.Config) (archive.ObjectStore, error) {
		c, err := s3.NewClient(ctx, s3.Options{
			Bucket:    cfg.Archive.Bucket,
			Region:    cfg.Region,
			Profile:   cfg.AWSProfile,
			Endpoint:  cfg.Archive.Endpoint,
			PathStyle: cfg.Archive.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		ok, err := c.BucketExists(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("archive bucket %s does not exist", cfg.Archive.Bucket)
		}
		return c, nil
	}

	// newLockWatcher watches the provisioning lock directory.
	newLockWatcher = lockfile.NewWatcher

	// isInteractiveTTY reports whether stdout is a terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// session is one observation of a deployment: the resolved configuration,
// the reconciler and the lock source feeding it.
type session struct {
	cfg        *config.Config
	reconciler *deploy.Reconciler
	watcher    *lockfile.Watcher
	archiver   *archive.Archiver
	log        logr.Logger
}

type sessionOptions struct {
	// watchLock follows the lock with filesystem events instead of reading
	// it on every snapshot.
	watchLock bool

	enableMetrics bool

	// archive uploads snapshot changes when a bucket is configured.
	archive bool
}

func newSession(ctx context.Context, opts Options, log logr.Logger, so sessionOptions) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	q, err := newQuerier(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	resolveConsumerCount(ctx, cfg, q, log)
	if err := cfg.ValidateResolved(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &session{cfg: cfg, log: log}
	lock := s.openLock(so.watchLock)

	r, err := deploy.NewReconciler(q, deploy.Options{
		Project:             cfg.Project,
		ConsumerCount:       cfg.ConsumerCount,
		ReplicasPerConsumer: cfg.ReplicasPerConsumer,
		StuckThreshold:      cfg.StuckThreshold,
		Intervals: deploy.Intervals{
			Complete:     cfg.Poll.Complete,
			Targets:      cfg.Poll.Targets,
			LoadBalancer: cfg.Poll.LoadBalancer,
			Active:       cfg.Poll.Active,
			Idle:         cfg.Poll.Idle,
		},
		Lock:          lock,
		Logger:        log.WithName("reconciler"),
		EnableMetrics: cfg.Metrics || so.enableMetrics,
	})
	if err != nil {
		return nil, err
	}
	s.reconciler = r

	if so.archive && cfg.Archive.Enabled() {
		store, err := newArchiveStore(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot archive: %w", err)
		}
		s.archiver = archive.New(store, r, archive.Options{
			Prefix:   cfg.Archive.Prefix,
			Interval: cfg.Archive.Interval,
			Logger:   log,
		})
		log.Info("archiving snapshots", "bucket", cfg.Archive.Bucket, "prefix", cfg.Archive.Prefix)
	}

	log.Info("watching deployment",
		"project", cfg.Project,
		"region", cfg.Region,
		"consumers", cfg.ConsumerCount)
	return s, nil
}

// openLock picks the lock source. The watcher needs the lock's parent
// directory to exist; otherwise the lock is read on demand.
func (s *session) openLock(watch bool) lockfile.Source {
	dir := s.cfg.LockDir
	if dir == "" {
		return lockfile.Disabled{}
	}
	if !watch {
		return lockfile.Reader{Dir: dir}
	}

	w, err := newLockWatcher(dir, s.log)
	if err != nil {
		s.log.V(1).Info("lock watcher unavailable, reading on demand", "dir", dir, "error", err)
		return lockfile.Reader{Dir: dir}
	}
	s.watcher = w
	return w
}

// run drives the reconciliation loop, the lock watcher, the archiver and
// the given consumers until ctx is done or one of them fails.
func (s *session) run(ctx context.Context, consumers ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.reconciler.Run(gctx) })
	if s.watcher != nil {
		g.Go(func() error { return s.watcher.Run(gctx) })
	}
	if s.archiver != nil {
		g.Go(func() error { return s.archiver.Run(gctx) })
	}
	for _, fn := range consumers {
		g.Go(func() error { return fn(gctx) })
	}

	return g.Wait()
}
