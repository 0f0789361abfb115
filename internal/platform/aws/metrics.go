package aws

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	apiCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rswatch",
			Subsystem: "aws",
			Name:      "api_calls_total",
			Help:      "Total number of AWS API calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	apiLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rswatch",
			Subsystem: "aws",
			Name:      "api_latency_seconds",
			Help:      "Latency of AWS API calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 9), // 50ms to ~13s
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(apiCallsTotal, apiLatency)
}

// recordAPICallMetric records an AWS API call.
func recordAPICallMetric(operation, result string, latency float64) {
	apiCallsTotal.WithLabelValues(operation, result).Inc()
	apiLatency.WithLabelValues(operation).Observe(latency)
}

func (c *Client) recordAPICall(operation, result string, latency float64) {
	if c.enableMetrics {
		recordAPICallMetric(operation, result, latency)
	}
}
