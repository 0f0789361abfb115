package deploy

import (
	"fmt"
	"time"
)

// PhaseKey identifies a deployment phase.
type PhaseKey string

// Deployment phases in provisioning order.
const (
	PhaseNetwork            PhaseKey = "network"
	PhaseSecurity           PhaseKey = "security"
	PhaseProducerNamespace  PhaseKey = "producer_namespace"
	PhaseProducerWorkgroup  PhaseKey = "producer_workgroup"
	PhaseConsumerNamespaces PhaseKey = "consumer_namespaces"
	PhaseConsumerWorkgroups PhaseKey = "consumer_workgroups"
	PhaseEndpoints          PhaseKey = "endpoints"
	PhaseLoadBalancer       PhaseKey = "load_balancer"
	PhaseTargets            PhaseKey = "targets"
	PhaseHealth             PhaseKey = "health"
)

// PhaseDefinition is the static description of a phase.
type PhaseDefinition struct {
	Key  PhaseKey
	Name string
}

// PhaseOrder lists every phase in provisioning order.
var PhaseOrder = []PhaseDefinition{
	{PhaseNetwork, "VPC & Networking"},
	{PhaseSecurity, "Security Groups"},
	{PhaseProducerNamespace, "Producer Namespace"},
	{PhaseProducerWorkgroup, "Producer Workgroup"},
	{PhaseConsumerNamespaces, "Consumer Namespaces"},
	{PhaseConsumerWorkgroups, "Consumer Workgroups"},
	{PhaseEndpoints, "VPC Endpoints"},
	{PhaseLoadBalancer, "Network Load Balancer"},
	{PhaseTargets, "Target Registration"},
	{PhaseHealth, "Health Checks"},
}

// Status is the progress of a phase.
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusComplete:
		return "complete"
	default:
		return "pending"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "pending":
		*s = StatusPending
	case "in_progress":
		*s = StatusInProgress
	case "complete":
		*s = StatusComplete
	default:
		return fmt.Errorf("unknown phase status %q", b)
	}
	return nil
}

// Phase is one stage of the deployment. Completion is one-way: once a phase
// is complete no later observation can move it back.
type Phase struct {
	def         PhaseDefinition
	status      Status
	startedAt   time.Time
	completedAt time.Time
}

func newPhase(def PhaseDefinition) *Phase {
	return &Phase{def: def}
}

// Key returns the phase key.
func (p *Phase) Key() PhaseKey { return p.def.Key }

// Name returns the display name.
func (p *Phase) Name() string { return p.def.Name }

// Status returns the current status.
func (p *Phase) Status() Status { return p.status }

// Complete reports whether the phase has been completed.
func (p *Phase) Complete() bool { return p.status == StatusComplete }

// StartedAt is when the phase was first seen in progress or complete.
func (p *Phase) StartedAt() time.Time { return p.startedAt }

// CompletedAt is when the phase completed.
func (p *Phase) CompletedAt() time.Time { return p.completedAt }

// advance moves the phase to s and reports the previous status and whether
// anything changed. A complete phase ignores every request.
func (p *Phase) advance(s Status, now time.Time) (Status, bool) {
	prev := p.status
	if prev == StatusComplete || prev == s {
		return prev, false
	}

	p.status = s
	if s != StatusPending && p.startedAt.IsZero() {
		p.startedAt = now
	}
	if s == StatusComplete {
		p.completedAt = now
	}
	return prev, true
}

// phaseSet is the ordered list of phases with lookup by key.
type phaseSet struct {
	list  []*Phase
	index map[PhaseKey]int
}

func newPhaseSet() *phaseSet {
	ps := &phaseSet{index: make(map[PhaseKey]int, len(PhaseOrder))}
	for i, def := range PhaseOrder {
		ps.list = append(ps.list, newPhase(def))
		ps.index[def.Key] = i
	}
	return ps
}

func (ps *phaseSet) get(key PhaseKey) *Phase {
	return ps.list[ps.index[key]]
}

func (ps *phaseSet) complete(key PhaseKey) bool {
	return ps.get(key).Complete()
}

func (ps *phaseSet) status(key PhaseKey) Status {
	return ps.get(key).Status()
}

// active returns the index of the first in-progress phase, else the first
// pending phase, else the last phase.
func (ps *phaseSet) active() int {
	for i, p := range ps.list {
		if p.status == StatusInProgress {
			return i
		}
	}
	for i, p := range ps.list {
		if p.status == StatusPending {
			return i
		}
	}
	return len(ps.list) - 1
}

func (ps *phaseSet) completed() int {
	n := 0
	for _, p := range ps.list {
		if p.Complete() {
			n++
		}
	}
	return n
}
