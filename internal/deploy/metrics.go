package deploy

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	cyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rswatch",
			Subsystem: "reconciler",
			Name:      "cycles_total",
			Help:      "Total number of reconciliation cycles by result",
		},
		[]string{"result"},
	)

	cycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rswatch",
			Subsystem: "reconciler",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of reconciliation cycles in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 8), // 100ms to ~13s
		},
	)

	phaseStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rswatch",
			Name:      "phase_status",
			Help:      "Phase status (0=pending, 1=in_progress, 2=complete)",
		},
		[]string{"phase"},
	)

	deploymentProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rswatch",
			Name:      "deployment_progress_percent",
			Help:      "Deployment progress in percent, or teardown progress while tearing down",
		},
	)

	healthyTargets = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rswatch",
			Name:      "healthy_targets",
			Help:      "Number of healthy load balancer targets",
		},
	)

	teardownDetected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rswatch",
			Name:      "teardown_detected",
			Help:      "Whether a teardown has been detected (1) or not (0)",
		},
	)
)

func init() {
	prometheus.MustRegister(
		cyclesTotal,
		cycleDuration,
		phaseStatus,
		deploymentProgress,
		healthyTargets,
		teardownDetected,
	)
}

// Cycle results. A cycle is degraded when any of its queries failed.
const (
	cycleOK       = "ok"
	cycleDegraded = "degraded"
)

// recordCycleMetric records a finished reconciliation cycle.
func recordCycleMetric(duration float64, failed int) {
	result := cycleOK
	if failed > 0 {
		result = cycleDegraded
	}
	cyclesTotal.WithLabelValues(result).Inc()
	cycleDuration.Observe(duration)
}

// recordSnapshotMetrics exports the state of a published snapshot.
func recordSnapshotMetrics(s Snapshot) {
	for _, p := range s.Phases {
		phaseStatus.WithLabelValues(string(p.Key)).Set(float64(p.Status))
	}
	deploymentProgress.Set(float64(s.Progress))
	healthyTargets.Set(float64(s.Highlights.HealthyTargets))
	if s.TeardownDetected {
		teardownDetected.Set(1)
	} else {
		teardownDetected.Set(0)
	}
}

func (r *Reconciler) recordCycle(duration float64, failed int, s Snapshot) {
	if r.enableMetrics {
		recordCycleMetric(duration, failed)
		recordSnapshotMetrics(s)
	}
}
