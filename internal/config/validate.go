package config

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors.
var (
	ErrMissingProject       = errors.New("project is required")
	ErrMissingRegion        = errors.New("region is required")
	ErrInvalidConsumerCount = errors.New("consumer_count must be at least 1")
	ErrInvalidReplicas      = errors.New("replicas_per_consumer must not be negative")
	ErrInvalidInterval      = errors.New("interval must be positive")
)

// Validate checks the configuration for errors. A zero ConsumerCount is
// accepted because it is resolved after loading; use ValidateResolved once it
// has been filled in.
func (c *Config) Validate() error {
	if c.Project == "" {
		return ErrMissingProject
	}
	if c.Region == "" {
		return ErrMissingRegion
	}
	if c.ConsumerCount < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidConsumerCount, c.ConsumerCount)
	}
	if c.ReplicasPerConsumer < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidReplicas, c.ReplicasPerConsumer)
	}

	intervals := []struct {
		name string
		val  time.Duration
	}{
		{"poll.complete", c.Poll.Complete},
		{"poll.targets", c.Poll.Targets},
		{"poll.load_balancer", c.Poll.LoadBalancer},
		{"poll.active", c.Poll.Active},
		{"poll.idle", c.Poll.Idle},
		{"query_timeouts.network", c.QueryTimeouts.Network},
		{"query_timeouts.clusters", c.QueryTimeouts.Clusters},
		{"query_timeouts.endpoints", c.QueryTimeouts.Endpoints},
		{"query_timeouts.load_balancer", c.QueryTimeouts.LoadBalancer},
		{"query_timeouts.targets", c.QueryTimeouts.Targets},
		{"stuck_threshold", c.StuckThreshold},
		{"archive.interval", c.Archive.Interval},
	}
	for _, iv := range intervals {
		if iv.val <= 0 {
			return fmt.Errorf("%s: %w (got %s)", iv.name, ErrInvalidInterval, iv.val)
		}
	}

	return nil
}

// ValidateResolved runs Validate and additionally requires a resolved
// consumer count.
func (c *Config) ValidateResolved() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ConsumerCount < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidConsumerCount, c.ConsumerCount)
	}
	return nil
}
