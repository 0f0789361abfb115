// Package config provides configuration loading and validation for rswatch.
//
// Configuration is resolved in layers: built-in defaults, an optional YAML
// file (rswatch.yaml), environment variables, and finally command-line flags
// applied by the CLI handlers. The resolved Config is validated once before
// the reconciliation loop starts and treated as immutable afterwards.
//
// # Environment Variables
//
//   - PROJECT_NAME: project identifier used by every naming convention
//   - AWS_REGION: region of the deployment
//   - CONSUMER_COUNT: expected number of consumer workgroups
//   - REPLICAS_PER_CONSUMER: expected load balancer targets per consumer
//   - RSWATCH_LOCK_DIR: directory of the provisioning lock marker
//   - RSWATCH_POLL_*: reconciliation cadence overrides (see LoadPollIntervals)
//   - RSWATCH_QUERY_TIMEOUT_*: per-family query timeouts (see LoadQueryTimeouts)
//
// # Consumer count
//
// When no consumer count is configured, DetectConsumerCount looks for a
// "consumer_count = N" assignment in the configured terraform.tfvars paths.
// The CLI falls back to counting existing consumer workgroups, then to
// DefaultConsumerCount.
package config
