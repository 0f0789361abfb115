package deploy

import (
	"time"

	"github.com/imamik/rswatch/internal/resource"
)

// trackedFamilies are counted for the teardown countdown.
var trackedFamilies = []resource.Family{
	resource.FamilyNamespaces,
	resource.FamilyWorkgroups,
	resource.FamilyEndpoints,
	resource.FamilyLoadBalancer,
	resource.FamilyTargetGroups,
}

// teardownState latches once a deletion is observed.
type teardownState struct {
	detected   bool
	detectedAt time.Time
	baseline   int
}

// detectTeardown latches teardown mode when a cluster resource or the load
// balancer is being deleted, and keeps the countdown baseline current.
func (e *Engine) detectTeardown(now time.Time) {
	if !e.teardown.detected {
		trigger, ok := e.deletingResource()
		if !ok {
			return
		}
		e.teardown = teardownState{detected: true, detectedAt: now}
		e.log.Info("teardown detected", "resource", trigger.Name, "status", trigger.Status)
	}
	if remaining := e.remainingResources(); remaining > e.teardown.baseline {
		e.teardown.baseline = remaining
	}
}

func (e *Engine) deletingResource() (resource.Resource, bool) {
	for _, family := range []resource.Family{resource.FamilyWorkgroups, resource.FamilyNamespaces} {
		for _, r := range e.owned(family) {
			if r.Deleting() {
				return r, true
			}
		}
	}
	if lb, ok := e.loadBalancer(); ok && lb.Deleting() {
		return lb, true
	}
	return resource.Resource{}, false
}

// remainingResources counts tracked project resources that still exist.
func (e *Engine) remainingResources() int {
	n := 0
	for _, family := range trackedFamilies {
		for _, r := range e.owned(family) {
			if !r.StatusIs(resource.StatusDeleted) {
				n++
			}
		}
	}
	return n
}

// teardownProgress is the share of the baseline that has disappeared.
func (e *Engine) teardownProgress() int {
	if e.teardown.baseline == 0 {
		return 0
	}
	gone := e.teardown.baseline - e.remainingResources()
	if gone < 0 {
		gone = 0
	}
	return gone * 100 / e.teardown.baseline
}
