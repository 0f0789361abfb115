package config

import (
	"os"
	"strconv"
	"time"
)

// LoadPollIntervals overlays cadence overrides from environment variables on
// base. If a variable is not set or invalid, the base value is kept.
//
// Environment Variables:
//   - RSWATCH_POLL_COMPLETE (default: 10s)
//   - RSWATCH_POLL_TARGETS (default: 1s)
//   - RSWATCH_POLL_LOAD_BALANCER (default: 1.5s)
//   - RSWATCH_POLL_ACTIVE (default: 2s)
//   - RSWATCH_POLL_IDLE (default: 3s)
func LoadPollIntervals(base PollIntervals) PollIntervals {
	return PollIntervals{
		Complete:     parseDuration("RSWATCH_POLL_COMPLETE", base.Complete),
		Targets:      parseDuration("RSWATCH_POLL_TARGETS", base.Targets),
		LoadBalancer: parseDuration("RSWATCH_POLL_LOAD_BALANCER", base.LoadBalancer),
		Active:       parseDuration("RSWATCH_POLL_ACTIVE", base.Active),
		Idle:         parseDuration("RSWATCH_POLL_IDLE", base.Idle),
	}
}

// LoadQueryTimeouts overlays per-family query timeouts from environment
// variables on base.
//
// Environment Variables:
//   - RSWATCH_QUERY_TIMEOUT_NETWORK (default: 10s)
//   - RSWATCH_QUERY_TIMEOUT_CLUSTERS (default: 5s)
//   - RSWATCH_QUERY_TIMEOUT_ENDPOINTS (default: 5s)
//   - RSWATCH_QUERY_TIMEOUT_LOAD_BALANCER (default: 5s)
//   - RSWATCH_QUERY_TIMEOUT_TARGETS (default: 5s)
func LoadQueryTimeouts(base QueryTimeouts) QueryTimeouts {
	return QueryTimeouts{
		Network:      parseDuration("RSWATCH_QUERY_TIMEOUT_NETWORK", base.Network),
		Clusters:     parseDuration("RSWATCH_QUERY_TIMEOUT_CLUSTERS", base.Clusters),
		Endpoints:    parseDuration("RSWATCH_QUERY_TIMEOUT_ENDPOINTS", base.Endpoints),
		LoadBalancer: parseDuration("RSWATCH_QUERY_TIMEOUT_LOAD_BALANCER", base.LoadBalancer),
		Targets:      parseDuration("RSWATCH_QUERY_TIMEOUT_TARGETS", base.Targets),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}

// parseString returns the variable's value, or defaultVal when unset.
func parseString(envVar, defaultVal string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return defaultVal
}
