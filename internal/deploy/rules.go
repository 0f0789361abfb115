package deploy

import (
	"time"

	"github.com/imamik/rswatch/internal/resource"
)

// evaluateNetwork marks network and security complete when the project VPC
// was found directly. Both are provisioned together.
func (e *Engine) evaluateNetwork(now time.Time) {
	if e.phases.complete(PhaseNetwork) && e.phases.complete(PhaseSecurity) {
		return
	}
	if _, ok := e.cache.First(resource.FamilyNetwork); ok {
		e.set(PhaseNetwork, StatusComplete, now)
		e.set(PhaseSecurity, StatusComplete, now)
	}
}

type clusterCounts struct {
	available    int
	transitional int
}

func countStates(items []resource.Resource) clusterCounts {
	var c clusterCounts
	for _, r := range items {
		switch {
		case r.StatusIs(resource.StatusAvailable):
			c.available++
		case r.Transitional():
			c.transitional++
		}
	}
	return c
}

// evaluateClusters applies the producer and consumer rules to the cached
// namespaces and workgroups.
func (e *Engine) evaluateClusters(now time.Time) {
	producerNS, consumerNS := split(e.owned(resource.FamilyNamespaces))
	producerWG, consumerWG := split(e.owned(resource.FamilyWorkgroups))

	e.evaluateNamespaces(producerNS, consumerNS, now)

	wgCounts := countStates(append(append([]resource.Resource(nil), producerWG...), consumerWG...))
	if wgCounts.available == 0 && wgCounts.transitional == 0 {
		return
	}

	// Every expected workgroup is up.
	if wgCounts.available >= e.settings.ConsumerCount+1 {
		e.set(PhaseProducerNamespace, StatusComplete, now)
		e.set(PhaseProducerWorkgroup, StatusComplete, now)
		e.set(PhaseConsumerNamespaces, StatusComplete, now)
		e.set(PhaseConsumerWorkgroups, StatusComplete, now)
		return
	}

	// A workgroup can only exist inside its namespace.
	for _, wg := range producerWG {
		switch {
		case wg.StatusIs(resource.StatusAvailable):
			e.set(PhaseProducerNamespace, StatusComplete, now)
			e.set(PhaseProducerWorkgroup, StatusComplete, now)
		case wg.Transitional():
			e.set(PhaseProducerNamespace, StatusComplete, now)
			e.set(PhaseProducerWorkgroup, StatusInProgress, now)
		}
	}

	consumers := countStates(consumerWG)
	if consumers.available > 0 || consumers.transitional > 0 {
		e.set(PhaseConsumerNamespaces, StatusComplete, now)
	}
	switch {
	case consumers.transitional > 0:
		e.set(PhaseConsumerWorkgroups, StatusInProgress, now)
	case consumers.available >= e.settings.ConsumerCount:
		e.set(PhaseConsumerWorkgroups, StatusComplete, now)
	case consumers.available > 0:
		e.set(PhaseConsumerWorkgroups, StatusInProgress, now)
	}
}

// evaluateNamespaces uses namespace records as direct evidence for the
// namespace phases.
func (e *Engine) evaluateNamespaces(producers, consumers []resource.Resource, now time.Time) {
	p := countStates(producers)
	switch {
	case p.available > 0:
		e.set(PhaseProducerNamespace, StatusComplete, now)
	case p.transitional > 0:
		e.set(PhaseProducerNamespace, StatusInProgress, now)
	}

	c := countStates(consumers)
	switch {
	case c.available >= e.settings.ConsumerCount && c.available > 0:
		e.set(PhaseConsumerNamespaces, StatusComplete, now)
	case c.available > 0 || c.transitional > 0:
		e.set(PhaseConsumerNamespaces, StatusInProgress, now)
	}
}

// evaluateEndpoints counts project endpoints once the consumer workgroups
// are complete.
func (e *Engine) evaluateEndpoints(now time.Time) {
	if !e.EndpointsReady() || e.phases.complete(PhaseEndpoints) {
		return
	}
	items := e.owned(resource.FamilyEndpoints)
	if len(items) == 0 {
		return
	}

	var active, creating int
	for _, ep := range items {
		switch {
		case ep.StatusIs(resource.StatusActive):
			active++
		case ep.StatusIs(resource.StatusCreating, resource.StatusModifying):
			creating++
		}
	}

	switch {
	case creating > 0:
		e.set(PhaseEndpoints, StatusInProgress, now)
	case active >= e.settings.ConsumerCount:
		e.set(PhaseEndpoints, StatusComplete, now)
	default:
		e.set(PhaseEndpoints, StatusPending, now)
	}
}

// evaluateTransitive completes network and security whenever any namespace
// or workgroup exists: none could have been created without them.
func (e *Engine) evaluateTransitive(now time.Time) {
	if e.phases.complete(PhaseNetwork) && e.phases.complete(PhaseSecurity) {
		return
	}
	for _, family := range []resource.Family{resource.FamilyWorkgroups, resource.FamilyNamespaces} {
		for _, r := range e.owned(family) {
			if r.StatusIs(resource.StatusAvailable) || r.Transitional() {
				if _, ok := e.cache.First(resource.FamilyNetwork); !ok {
					e.vpcInferred = true
				}
				e.set(PhaseNetwork, StatusComplete, now)
				e.set(PhaseSecurity, StatusComplete, now)
				return
			}
		}
	}
}

// evaluateLoadBalancer inspects the load balancer once endpoints are complete.
func (e *Engine) evaluateLoadBalancer(now time.Time) {
	if !e.LoadBalancerReady() {
		return
	}
	lb, ok := e.loadBalancer()
	if !ok {
		return
	}
	switch {
	case lb.StatusIs(resource.StatusActive):
		e.set(PhaseLoadBalancer, StatusComplete, now)
	case lb.StatusIs(resource.StatusProvisioning, resource.StatusActiveImpaired):
		e.set(PhaseLoadBalancer, StatusInProgress, now)
	}
}

// targetCounts summarizes the cached target health records.
type targetCounts struct {
	total   int
	healthy int
	initial int
}

func (e *Engine) targetCounts() targetCounts {
	var c targetCounts
	for _, t := range e.cache.Get(resource.FamilyTargetHealth) {
		c.total++
		switch {
		case t.StatusIs(resource.TargetHealthy):
			c.healthy++
		case t.StatusIs(resource.TargetInitial):
			c.initial++
		}
	}
	return c
}

// evaluateTargets compares healthy targets against the expected count once
// a load balancer has been found.
func (e *Engine) evaluateTargets(now time.Time) {
	lb, ok := e.loadBalancer()
	if !ok || !e.LoadBalancerReady() {
		return
	}

	if _, ok := e.targetGroup(); !ok {
		if lb.StatusIs(resource.StatusActive) {
			e.set(PhaseTargets, StatusInProgress, now)
		}
		return
	}

	c := e.targetCounts()
	switch {
	case c.healthy >= e.ExpectedTargets() && c.healthy > 0:
		e.set(PhaseTargets, StatusComplete, now)
		e.set(PhaseHealth, StatusComplete, now)
	case c.total > 0:
		e.set(PhaseTargets, StatusInProgress, now)
		if c.healthy > 0 || c.initial > 0 {
			e.set(PhaseHealth, StatusInProgress, now)
		}
	}
}
