// Package benchmarks provides timing estimates for deployment phases.
package benchmarks

import (
	"time"

	"github.com/imamik/rswatch/internal/deploy"
)

// DefaultTimings are typical phase durations of a three-consumer deployment
// in seconds.
var DefaultTimings = map[deploy.PhaseKey]int{
	deploy.PhaseNetwork:            60,
	deploy.PhaseSecurity:           15,
	deploy.PhaseProducerNamespace:  30,
	deploy.PhaseProducerWorkgroup:  300,
	deploy.PhaseConsumerNamespaces: 60,
	deploy.PhaseConsumerWorkgroups: 480,
	deploy.PhaseEndpoints:          180,
	deploy.PhaseLoadBalancer:       180,
	deploy.PhaseTargets:            60,
	deploy.PhaseHealth:             90,
}

// Expected returns the benchmark duration of a phase.
func Expected(phase deploy.PhaseKey) (time.Duration, bool) {
	secs, ok := DefaultTimings[phase]
	if !ok {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// EstimateRemaining calculates the estimated time remaining based on the
// active phase and the phase history of a snapshot.
func EstimateRemaining(phases []deploy.PhaseView, active deploy.PhaseKey, now time.Time) time.Duration {
	return EstimateRemainingWithScale(phases, active, now, PerformanceScale(phases, active, now))
}

// EstimateRemainingWithScale calculates ETA while applying a performance scale factor.
func EstimateRemainingWithScale(phases []deploy.PhaseView, active deploy.PhaseKey, now time.Time, scale float64) time.Duration {
	var remaining time.Duration

	currentIdx := -1
	for i, p := range phases {
		if p.Key == active {
			currentIdx = i
			break
		}
	}
	if currentIdx < 0 {
		return 0
	}

	current := phases[currentIdx]
	if current.Status == deploy.StatusComplete {
		return 0
	}

	// For the current phase: max(0, expected - elapsed)
	if expected, ok := Expected(current.Key); ok {
		expected = time.Duration(float64(expected) * scale)
		if elapsed := phaseElapsed(current, now); expected > elapsed {
			remaining += expected - elapsed
		}
	}

	for _, p := range phases[currentIdx+1:] {
		if p.Status == deploy.StatusComplete {
			continue
		}
		if expected, ok := Expected(p.Key); ok {
			remaining += time.Duration(float64(expected) * scale)
		}
	}

	return remaining
}

// PerformanceScale derives a speed multiplier from observed-vs-expected durations.
// Example: expected 3m, observed 4m30s => scale=1.5 (future ETAs are stretched by 50%).
// Phases completed by inference in a single observation carry no timing
// information and are skipped.
func PerformanceScale(phases []deploy.PhaseView, active deploy.PhaseKey, now time.Time) float64 {
	var expectedTotal time.Duration
	var actualTotal time.Duration

	for _, p := range phases {
		expected, ok := Expected(p.Key)
		if !ok || p.Status != deploy.StatusComplete || p.StartedAt.IsZero() {
			continue
		}
		actual := p.CompletedAt.Sub(p.StartedAt)
		if actual <= 0 {
			continue
		}
		expectedTotal += expected
		actualTotal += actual
	}

	// If the active phase is overrunning, fold it in immediately so ETA adapts quickly.
	for _, p := range phases {
		if p.Key != active || p.Status != deploy.StatusInProgress {
			continue
		}
		if expected, ok := Expected(p.Key); ok {
			if elapsed := phaseElapsed(p, now); elapsed > expected {
				expectedTotal += expected
				actualTotal += elapsed
			}
		}
	}

	if expectedTotal == 0 || actualTotal == 0 {
		return 1.0
	}

	scale := float64(actualTotal) / float64(expectedTotal)
	if scale < 0.6 {
		return 0.6
	}
	if scale > 3.0 {
		return 3.0
	}
	return scale
}

// TotalEstimate returns the total estimated deployment time.
func TotalEstimate() time.Duration {
	var total time.Duration
	for _, def := range deploy.PhaseOrder {
		if expected, ok := Expected(def.Key); ok {
			total += expected
		}
	}
	return total
}

func phaseElapsed(p deploy.PhaseView, now time.Time) time.Duration {
	if p.StartedAt.IsZero() || now.Before(p.StartedAt) {
		return 0
	}
	return now.Sub(p.StartedAt)
}
