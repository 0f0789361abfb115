package config

import (
	"slices"
	"time"
)

// Config is the top-level rswatch configuration.
type Config struct {
	// Project is the identifier embedded in every resource name and tag.
	Project string `yaml:"project"`
	Region  string `yaml:"region"`

	// ConsumerCount is the expected number of consumer workgroups.
	// Zero means "detect at startup".
	ConsumerCount int `yaml:"consumer_count,omitempty"`

	// ReplicasPerConsumer is the number of load balancer targets each
	// consumer registers. Zero means "derive from observed subnets".
	ReplicasPerConsumer int `yaml:"replicas_per_consumer,omitempty"`

	AWSProfile  string `yaml:"aws_profile,omitempty"`
	AWSEndpoint string `yaml:"aws_endpoint,omitempty"`

	LockDir     string   `yaml:"lock_dir,omitempty"`
	TFVarsPaths []string `yaml:"tfvars_paths,omitempty"`

	Poll          PollIntervals `yaml:"poll,omitempty"`
	QueryTimeouts QueryTimeouts `yaml:"query_timeouts,omitempty"`

	// StuckThreshold is how long a resource may stay CREATING or MODIFYING
	// before it is reported as an issue.
	StuckThreshold time.Duration `yaml:"stuck_threshold,omitempty"`

	Metrics bool `yaml:"metrics,omitempty"`

	// Archive uploads snapshots to an S3 bucket when Bucket is set.
	Archive ArchiveConfig `yaml:"archive,omitempty"`
}

// ArchiveConfig configures the snapshot archive.
type ArchiveConfig struct {
	Bucket string `yaml:"bucket,omitempty"`
	Prefix string `yaml:"prefix,omitempty"`
	// Endpoint overrides the S3 endpoint, e.g. for MinIO or LocalStack.
	Endpoint  string `yaml:"endpoint,omitempty"`
	PathStyle bool   `yaml:"path_style,omitempty"`
	// Interval is how often the snapshot is checked for changes.
	Interval time.Duration `yaml:"interval,omitempty"`
}

// Enabled reports whether a bucket is configured.
func (a ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// PollIntervals holds the reconciliation cadence for each urgency level.
type PollIntervals struct {
	Complete     time.Duration `yaml:"complete,omitempty"`
	Targets      time.Duration `yaml:"targets,omitempty"`
	LoadBalancer time.Duration `yaml:"load_balancer,omitempty"`
	Active       time.Duration `yaml:"active,omitempty"`
	Idle         time.Duration `yaml:"idle,omitempty"`
}

// QueryTimeouts bounds each control-plane call per resource family group.
type QueryTimeouts struct {
	Network      time.Duration `yaml:"network,omitempty"`
	Clusters     time.Duration `yaml:"clusters,omitempty"`
	Endpoints    time.Duration `yaml:"endpoints,omitempty"`
	LoadBalancer time.Duration `yaml:"load_balancer,omitempty"`
	Targets      time.Duration `yaml:"targets,omitempty"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields. ConsumerCount and ReplicasPerConsumer are
// left at zero so they can be detected later.
func (c *Config) ApplyDefaults() {
	if c.Project == "" {
		c.Project = DefaultProject
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.LockDir == "" {
		c.LockDir = DefaultLockDir
	}
	if len(c.TFVarsPaths) == 0 {
		c.TFVarsPaths = slices.Clone(DefaultTFVarsPaths)
	}
	if c.StuckThreshold == 0 {
		c.StuckThreshold = DefaultStuckThreshold
	}
	if c.Archive.Prefix == "" {
		c.Archive.Prefix = DefaultArchivePrefix
	}
	c.Archive.Interval = orDefault(c.Archive.Interval, DefaultArchiveInterval)
	c.Poll.applyDefaults()
	c.QueryTimeouts.applyDefaults()
}

func (p *PollIntervals) applyDefaults() {
	p.Complete = orDefault(p.Complete, DefaultPollComplete)
	p.Targets = orDefault(p.Targets, DefaultPollTargets)
	p.LoadBalancer = orDefault(p.LoadBalancer, DefaultPollLoadBalancer)
	p.Active = orDefault(p.Active, DefaultPollActive)
	p.Idle = orDefault(p.Idle, DefaultPollIdle)
}

func (q *QueryTimeouts) applyDefaults() {
	q.Network = orDefault(q.Network, DefaultTimeoutNetwork)
	q.Clusters = orDefault(q.Clusters, DefaultTimeoutClusters)
	q.Endpoints = orDefault(q.Endpoints, DefaultTimeoutEndpoints)
	q.LoadBalancer = orDefault(q.LoadBalancer, DefaultTimeoutLoadBalancer)
	q.Targets = orDefault(q.Targets, DefaultTimeoutTargets)
}

func orDefault(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}
	return d
}
