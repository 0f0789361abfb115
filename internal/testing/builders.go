package testing

import (
	"time"

	"github.com/imamik/rswatch/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with every default applied
// and three consumers.
func NewConfigBuilder() *ConfigBuilder {
	cfg := config.Default()
	cfg.ConsumerCount = 3
	return &ConfigBuilder{cfg: *cfg}
}

// WithProject sets the project name.
func (b *ConfigBuilder) WithProject(project string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Project = project
	return nb
}

// WithConsumers sets the expected consumer count.
func (b *ConfigBuilder) WithConsumers(n int) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.ConsumerCount = n
	return nb
}

// WithReplicas sets the targets expected per consumer.
func (b *ConfigBuilder) WithReplicas(n int) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.ReplicasPerConsumer = n
	return nb
}

// WithStuckThreshold sets the stuck resource threshold.
func (b *ConfigBuilder) WithStuckThreshold(d time.Duration) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.StuckThreshold = d
	return nb
}

// WithMetrics enables metric recording.
func (b *ConfigBuilder) WithMetrics() *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Metrics = true
	return nb
}

// Build returns a copy of the configuration.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.clone().cfg
	return &cfg
}

func (b *ConfigBuilder) clone() *ConfigBuilder {
	cfg := b.cfg
	cfg.TFVarsPaths = append([]string(nil), b.cfg.TFVarsPaths...)
	return &ConfigBuilder{cfg: cfg}
}
