package deploy

import "time"

// Default polling cadence.
const (
	DefaultCompleteInterval     = 10 * time.Second
	DefaultTargetsInterval      = time.Second
	DefaultLoadBalancerInterval = 1500 * time.Millisecond
	DefaultActiveInterval       = 2 * time.Second
	DefaultIdleInterval         = 3 * time.Second
)

// Intervals configures how long the loop sleeps between cycles.
type Intervals struct {
	// Complete applies once the deployment is complete.
	Complete time.Duration
	// Targets applies while target registration or health checks are in progress.
	Targets time.Duration
	// LoadBalancer applies while the load balancer is provisioning.
	LoadBalancer time.Duration
	// Active applies while any other phase is in progress.
	Active time.Duration
	// Idle applies when nothing is in progress.
	Idle time.Duration
}

// DefaultIntervals returns the default cadence.
func DefaultIntervals() Intervals {
	return Intervals{
		Complete:     DefaultCompleteInterval,
		Targets:      DefaultTargetsInterval,
		LoadBalancer: DefaultLoadBalancerInterval,
		Active:       DefaultActiveInterval,
		Idle:         DefaultIdleInterval,
	}
}

func (i Intervals) withDefaults() Intervals {
	d := DefaultIntervals()
	if i.Complete <= 0 {
		i.Complete = d.Complete
	}
	if i.Targets <= 0 {
		i.Targets = d.Targets
	}
	if i.LoadBalancer <= 0 {
		i.LoadBalancer = d.LoadBalancer
	}
	if i.Active <= 0 {
		i.Active = d.Active
	}
	if i.Idle <= 0 {
		i.Idle = d.Idle
	}
	return i
}

// NextInterval picks the sleep before the next cycle from the phase state.
func (e *Engine) NextInterval(i Intervals) time.Duration {
	switch {
	case e.DeploymentComplete():
		return i.Complete
	case e.phases.status(PhaseTargets) == StatusInProgress,
		e.phases.status(PhaseHealth) == StatusInProgress:
		return i.Targets
	case e.phases.status(PhaseLoadBalancer) == StatusInProgress:
		return i.LoadBalancer
	}
	for _, p := range e.phases.list {
		if p.Status() == StatusInProgress {
			return i.Active
		}
	}
	return i.Idle
}
