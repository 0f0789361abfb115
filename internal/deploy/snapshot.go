package deploy

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/imamik/rswatch/internal/lockfile"
	"github.com/imamik/rswatch/internal/resource"
)

// InferredVPC is shown in place of a VPC id when the network phase was
// inferred from workgroup evidence.
const InferredVPC = "inferred-from-workgroups"

// PhaseView is the published state of one phase.
type PhaseView struct {
	Key         PhaseKey  `json:"key"`
	Name        string    `json:"name"`
	Status      Status    `json:"status"`
	Detail      string    `json:"detail,omitempty"`
	StartedAt   time.Time `json:"startedAt,omitzero"`
	CompletedAt time.Time `json:"completedAt,omitzero"`
}

// Highlights are the resource facts a dashboard shows next to the phases.
type Highlights struct {
	VPC                string `json:"vpc,omitempty"`
	Subnets            int    `json:"subnets"`
	SecurityGroups     int    `json:"securityGroups"`
	Zones              int    `json:"zones"`
	Producer           string `json:"producer,omitempty"`
	ProducerStatus     string `json:"producerStatus,omitempty"`
	ConsumersAvailable int    `json:"consumersAvailable"`
	ConsumersExpected  int    `json:"consumersExpected"`
	EndpointsActive    int    `json:"endpointsActive"`
	LoadBalancer       string `json:"loadBalancer,omitempty"`
	LoadBalancerState  string `json:"loadBalancerState,omitempty"`
	LoadBalancerDNS    string `json:"loadBalancerDns,omitempty"`
	TargetGroup        string `json:"targetGroup,omitempty"`
	HealthyTargets     int    `json:"healthyTargets"`
	TotalTargets       int    `json:"totalTargets"`
	ExpectedTargets    int    `json:"expectedTargets"`
}

// TeardownView describes the teardown countdown.
type TeardownView struct {
	DetectedAt time.Time `json:"detectedAt,omitzero"`
	Baseline   int       `json:"baseline"`
	Remaining  int       `json:"remaining"`
}

// Snapshot is a consistent, immutable copy of the reconciler state.
type Snapshot struct {
	Project            string                                  `json:"project"`
	Phases             []PhaseView                             `json:"phases"`
	ActiveIndex        int                                     `json:"activeIndex"`
	Progress           int                                     `json:"progress"`
	DeploymentComplete bool                                    `json:"deploymentComplete"`
	TeardownDetected   bool                                    `json:"teardownDetected"`
	Teardown           *TeardownView                           `json:"teardown,omitempty"`
	Highlights         Highlights                              `json:"highlights"`
	Resources          map[resource.Family][]resource.Resource `json:"resources,omitempty"`
	Issues             []Issue                                 `json:"issues,omitempty"`
	Lock               lockfile.Status                         `json:"lock"`
	LastPoll           time.Time                               `json:"lastPoll,omitzero"`
	Cycles             int                                     `json:"cycles"`
	Interval           time.Duration                           `json:"interval"`
}

// Active returns the active phase.
func (s Snapshot) Active() PhaseView {
	if s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Phases) {
		return PhaseView{}
	}
	return s.Phases[s.ActiveIndex]
}

// Completed returns the number of complete phases.
func (s Snapshot) Completed() int {
	n := 0
	for _, p := range s.Phases {
		if p.Status == StatusComplete {
			n++
		}
	}
	return n
}

// Phase returns the view of the phase with the given key.
func (s Snapshot) Phase(key PhaseKey) (PhaseView, bool) {
	for _, p := range s.Phases {
		if p.Key == key {
			return p, true
		}
	}
	return PhaseView{}, false
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	s.Phases = slices.Clone(s.Phases)
	s.Issues = slices.Clone(s.Issues)
	if s.Teardown != nil {
		td := *s.Teardown
		s.Teardown = &td
	}
	if s.Resources != nil {
		resources := make(map[resource.Family][]resource.Resource, len(s.Resources))
		for family, items := range s.Resources {
			out := make([]resource.Resource, len(items))
			for i, r := range items {
				out[i] = r.Clone()
			}
			resources[family] = out
		}
		s.Resources = resources
	}
	return s
}

// Snapshot projects the engine state. The caller adds the lock status and
// loop bookkeeping.
func (e *Engine) Snapshot() Snapshot {
	h := e.highlights()
	s := Snapshot{
		Project:            e.settings.Project,
		ActiveIndex:        e.phases.active(),
		DeploymentComplete: e.DeploymentComplete(),
		TeardownDetected:   e.teardown.detected,
		Highlights:         h,
		Resources:          e.cache.All(),
		Issues:             slices.Clone(e.issues),
		LastPoll:           e.lastPoll,
	}

	for _, p := range e.phases.list {
		s.Phases = append(s.Phases, PhaseView{
			Key:         p.Key(),
			Name:        p.Name(),
			Status:      p.Status(),
			Detail:      phaseDetail(p.Key(), h),
			StartedAt:   p.StartedAt(),
			CompletedAt: p.CompletedAt(),
		})
	}

	if e.teardown.detected {
		s.Progress = e.teardownProgress()
		s.Teardown = &TeardownView{
			DetectedAt: e.teardown.detectedAt,
			Baseline:   e.teardown.baseline,
			Remaining:  e.remainingResources(),
		}
	} else {
		s.Progress = e.phases.completed() * 100 / len(e.phases.list)
	}
	return s
}

func (e *Engine) highlights() Highlights {
	h := Highlights{
		Subnets:           e.cache.Len(resource.FamilySubnets),
		SecurityGroups:    e.cache.Len(resource.FamilySecurityGroups),
		ConsumersExpected: e.settings.ConsumerCount,
		ExpectedTargets:   e.ExpectedTargets(),
	}

	if id := e.VPCID(); id != "" {
		h.VPC = id
	} else if e.vpcInferred {
		h.VPC = InferredVPC
	}
	h.Zones = e.zoneCount()

	producers, consumers := split(e.owned(resource.FamilyWorkgroups))
	if len(producers) > 0 {
		h.Producer = producers[0].Name
		h.ProducerStatus = producers[0].Status
	}
	h.ConsumersAvailable = countStates(consumers).available

	for _, ep := range e.owned(resource.FamilyEndpoints) {
		if ep.StatusIs(resource.StatusActive) {
			h.EndpointsActive++
		}
	}

	if lb, ok := e.loadBalancer(); ok {
		h.LoadBalancer = lb.Name
		h.LoadBalancerState = lb.Status
		h.LoadBalancerDNS = lb.Attr(resource.AttrDNSName)
	}
	if tg, ok := e.targetGroup(); ok {
		h.TargetGroup = tg.Name
	}

	c := e.targetCounts()
	h.HealthyTargets = c.healthy
	h.TotalTargets = c.total
	return h
}

func phaseDetail(key PhaseKey, h Highlights) string {
	switch key {
	case PhaseNetwork:
		if h.VPC == "" {
			return ""
		}
		if h.Subnets > 0 {
			return fmt.Sprintf("%s, %d subnets in %d zones", h.VPC, h.Subnets, h.Zones)
		}
		return h.VPC
	case PhaseSecurity:
		if h.SecurityGroups > 0 {
			return fmt.Sprintf("%d groups", h.SecurityGroups)
		}
	case PhaseProducerWorkgroup:
		if h.Producer != "" {
			return fmt.Sprintf("%s (%s)", h.Producer, h.ProducerStatus)
		}
	case PhaseConsumerWorkgroups:
		return fmt.Sprintf("%d/%d available", h.ConsumersAvailable, h.ConsumersExpected)
	case PhaseEndpoints:
		return fmt.Sprintf("%d/%d active", h.EndpointsActive, h.ConsumersExpected)
	case PhaseLoadBalancer:
		if h.LoadBalancer != "" {
			return fmt.Sprintf("%s (%s)", h.LoadBalancer, h.LoadBalancerState)
		}
	case PhaseTargets:
		if h.TargetGroup != "" {
			return fmt.Sprintf("%s, %d registered", h.TargetGroup, h.TotalTargets)
		}
	case PhaseHealth:
		return fmt.Sprintf("%d/%d healthy", h.HealthyTargets, h.ExpectedTargets)
	}
	return ""
}

// SortedFamilies returns the families present in the snapshot in canonical order.
func (s Snapshot) SortedFamilies() []resource.Family {
	var out []resource.Family
	for _, f := range resource.Families {
		if _, ok := s.Resources[f]; ok {
			out = append(out, f)
		}
	}
	for _, f := range slices.Sorted(maps.Keys(s.Resources)) {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
