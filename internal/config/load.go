package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses the configuration from a YAML file, applies
// environment overrides and defaults, and validates the result.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load is like LoadFile but tolerates a missing file. An empty path looks for
// DefaultFileName in the working directory. The result is not validated so
// callers can apply flag overrides first.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	// #nosec G304
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return Parse(data)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		cfg := &Config{}
		ApplyEnv(cfg)
		cfg.ApplyDefaults()
		return cfg, nil
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
}

// Parse decodes YAML and applies environment overrides and defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	ApplyEnv(&cfg)
	cfg.ApplyDefaults()

	return &cfg, nil
}

// ApplyEnv overlays environment variables on cfg. Invalid numbers and
// durations are ignored.
func ApplyEnv(cfg *Config) {
	cfg.Project = parseString("PROJECT_NAME", cfg.Project)
	cfg.Region = parseString("AWS_REGION", cfg.Region)
	cfg.ConsumerCount = parseInt("CONSUMER_COUNT", cfg.ConsumerCount)
	cfg.ReplicasPerConsumer = parseInt("REPLICAS_PER_CONSUMER", cfg.ReplicasPerConsumer)
	cfg.LockDir = parseString("RSWATCH_LOCK_DIR", cfg.LockDir)
	cfg.StuckThreshold = parseDuration("RSWATCH_STUCK_THRESHOLD", cfg.StuckThreshold)
	cfg.Archive.Bucket = parseString("RSWATCH_ARCHIVE_BUCKET", cfg.Archive.Bucket)
	cfg.Poll = LoadPollIntervals(cfg.Poll)
	cfg.QueryTimeouts = LoadQueryTimeouts(cfg.QueryTimeouts)
}
