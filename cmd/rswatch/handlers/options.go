package handlers

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/imamik/rswatch/internal/config"
	"github.com/imamik/rswatch/internal/deploy"
	"github.com/imamik/rswatch/internal/resource"
)

// Options holds the flags shared by every command. Zero values leave the
// configuration file untouched.
type Options struct {
	ConfigPath string
	Project    string
	Region     string
	Consumers  int
	Replicas   int
	LockDir    string
	Verbose    bool
	LogFile    string

	// ArchiveBucket enables the snapshot archive.
	ArchiveBucket string
}

// detectConsumerCount reads consumer_count from tfvars files. Replaceable in tests.
var detectConsumerCount = config.DetectConsumerCount

// loadConfig loads the configuration file and applies flag overrides. The
// consumer count may still be zero afterwards.
func loadConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.Project != "" {
		cfg.Project = opts.Project
	}
	if opts.Region != "" {
		cfg.Region = opts.Region
	}
	if opts.Consumers > 0 {
		cfg.ConsumerCount = opts.Consumers
	}
	if opts.Replicas > 0 {
		cfg.ReplicasPerConsumer = opts.Replicas
	}
	if opts.LockDir != "" {
		cfg.LockDir = opts.LockDir
	}
	if opts.ArchiveBucket != "" {
		cfg.Archive.Bucket = opts.ArchiveBucket
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// resolveConsumerCount fills in a missing consumer count from the tfvars
// files, then from the consumer workgroups that already exist, then from the
// default.
func resolveConsumerCount(ctx context.Context, cfg *config.Config, q resource.Querier, log logr.Logger) {
	if cfg.ConsumerCount > 0 {
		log.V(1).Info("using configured consumer count", "count", cfg.ConsumerCount)
		return
	}

	if n, path, ok := detectConsumerCount(cfg.TFVarsPaths); ok {
		log.Info("detected consumer count from tfvars", "count", n, "file", path)
		cfg.ConsumerCount = n
		return
	}

	if n, ok := deploy.DetectConsumers(ctx, q, cfg.Project); ok {
		log.Info("detected consumer count from existing workgroups", "count", n)
		cfg.ConsumerCount = n
		return
	}

	log.Info("consumer count not found, using default", "count", config.DefaultConsumerCount)
	cfg.ConsumerCount = config.DefaultConsumerCount
}
