package deploy

import (
	"slices"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/rswatch/internal/resource"
	"github.com/imamik/rswatch/internal/util/naming"
)

// Defaults used when Settings leave a value unset.
const (
	DefaultReplicasPerConsumer = 3
	DefaultStuckThreshold      = 10 * time.Minute
	maxIssues                  = 5
)

// Settings are the immutable inputs of the phase engine.
type Settings struct {
	Project       string
	ConsumerCount int
	// ReplicasPerConsumer is the number of load balancer targets each
	// consumer registers. Zero derives it from the availability zones of
	// the project subnets.
	ReplicasPerConsumer int
	StuckThreshold      time.Duration
}

// Engine owns the resource cache and the phase state machine. It is not safe
// for concurrent use; the Reconciler serializes access.
type Engine struct {
	settings Settings
	log      logr.Logger

	cache  *resource.Cache
	phases *phaseSet

	teardown teardownState
	issues   []Issue

	// vpcInferred is set when the network phase was completed from
	// workgroup evidence without a VPC in the cache.
	vpcInferred bool

	// maxZones is the largest availability zone count seen among the
	// subnets. It never shrinks.
	maxZones int

	lastPoll time.Time
}

// NewEngine creates an engine with every phase pending.
func NewEngine(settings Settings, log logr.Logger) *Engine {
	if settings.StuckThreshold <= 0 {
		settings.StuckThreshold = DefaultStuckThreshold
	}
	return &Engine{
		settings: settings,
		log:      log,
		cache:    resource.NewCache(),
		phases:   newPhaseSet(),
	}
}

// Apply merges one query result into the cache. Failed queries leave the
// previous records in place. Successful empty results are treated the same
// way unless a teardown is underway, when they mean the resources are gone.
func (e *Engine) Apply(family resource.Family, res resource.Result, now time.Time) {
	if !res.OK {
		return
	}
	e.lastPoll = now
	if len(res.Resources) == 0 && !e.teardown.detected {
		return
	}
	e.cache.Replace(family, res.Resources, now)
	if family == resource.FamilySubnets {
		e.maxZones = max(e.maxZones, e.zoneCount())
	}
}

// Evaluate runs the inference rules against the cache.
func (e *Engine) Evaluate(now time.Time) {
	e.detectTeardown(now)
	e.evaluateNetwork(now)
	e.evaluateClusters(now)
	e.evaluateEndpoints(now)
	e.evaluateTransitive(now)
	e.evaluateLoadBalancer(now)
	e.evaluateTargets(now)
	e.issues = e.detectIssues(now)
}

// set proposes a status for a phase through the one-way guard.
func (e *Engine) set(key PhaseKey, s Status, now time.Time) {
	if prev, changed := e.phases.get(key).advance(s, now); changed {
		e.log.Info("phase transition", "phase", key, "from", prev, "to", s)
	}
}

// Phase returns the phase with the given key.
func (e *Engine) Phase(key PhaseKey) *Phase {
	return e.phases.get(key)
}

// Cache returns the resource cache.
func (e *Engine) Cache() *resource.Cache {
	return e.cache
}

// DeploymentComplete reports whether every target is healthy and no
// teardown has been detected.
func (e *Engine) DeploymentComplete() bool {
	return e.phases.complete(PhaseTargets) && e.phases.complete(PhaseHealth) && !e.teardown.detected
}

// Teardown reports whether a teardown has been detected.
func (e *Engine) Teardown() bool {
	return e.teardown.detected
}

// EndpointsReady reports whether endpoint queries are meaningful.
func (e *Engine) EndpointsReady() bool {
	return e.phases.complete(PhaseConsumerWorkgroups)
}

// LoadBalancerReady reports whether load balancer queries are meaningful.
func (e *Engine) LoadBalancerReady() bool {
	return e.phases.complete(PhaseEndpoints)
}

// TargetsReady reports whether a load balancer has been found.
func (e *Engine) TargetsReady() bool {
	_, ok := e.loadBalancer()
	return ok
}

// VPCID returns the id of the cached project VPC.
func (e *Engine) VPCID() string {
	if vpc, ok := primaryVPC(e.cache.Get(resource.FamilyNetwork)); ok {
		return vpc.ID
	}
	return ""
}

// SubnetsSettled reports whether the subnet layout can no longer change the
// expected target count.
func (e *Engine) SubnetsSettled() bool {
	return e.phases.complete(PhaseTargets)
}

// primaryVPC picks the project VPC among several matches: the one with the
// smallest id.
func primaryVPC(vpcs []resource.Resource) (resource.Resource, bool) {
	if len(vpcs) == 0 {
		return resource.Resource{}, false
	}
	return slices.MinFunc(vpcs, func(a, b resource.Resource) int {
		return strings.Compare(a.Key(), b.Key())
	}), true
}

// TargetGroupARN returns the ARN of the cached target group.
func (e *Engine) TargetGroupARN() string {
	if tg, ok := e.targetGroup(); ok {
		return tg.Attr(resource.AttrARN)
	}
	return ""
}

// ExpectedTargets is the number of healthy targets that completes the
// deployment.
func (e *Engine) ExpectedTargets() int {
	return e.settings.ConsumerCount * e.Replicas()
}

// Replicas returns the configured replicas per consumer, else the largest
// number of distinct availability zones seen among the subnets, else the
// default.
func (e *Engine) Replicas() int {
	if e.settings.ReplicasPerConsumer > 0 {
		return e.settings.ReplicasPerConsumer
	}
	if e.maxZones > 0 {
		return e.maxZones
	}
	return DefaultReplicasPerConsumer
}

// zoneCount counts the distinct availability zones of the cached subnets.
func (e *Engine) zoneCount() int {
	zones := make(map[string]struct{})
	for _, s := range e.cache.Get(resource.FamilySubnets) {
		if az := s.Attr(resource.AttrAvailabilityZone); az != "" {
			zones[az] = struct{}{}
		}
	}
	return len(zones)
}

// owned returns the cached records of a family whose names belong to the project.
func (e *Engine) owned(family resource.Family) []resource.Resource {
	var out []resource.Resource
	for _, r := range e.cache.Get(family) {
		if naming.Owned(e.settings.Project, r.Name) {
			out = append(out, r)
		}
	}
	return out
}

// split classifies namespaces or workgroups into producers and consumers.
func split(items []resource.Resource) (producers, consumers []resource.Resource) {
	for _, r := range items {
		if naming.Classify(r.Name) == naming.RoleProducer {
			producers = append(producers, r)
		} else {
			consumers = append(consumers, r)
		}
	}
	return producers, consumers
}

// matchFirst returns the record with the exact name, else the first record
// containing the project.
func (e *Engine) matchFirst(family resource.Family, exact string) (resource.Resource, bool) {
	items := e.cache.Get(family)
	for _, r := range items {
		if r.Name == exact {
			return r, true
		}
	}
	for _, r := range items {
		if naming.Owned(e.settings.Project, r.Name) {
			return r, true
		}
	}
	return resource.Resource{}, false
}

func (e *Engine) loadBalancer() (resource.Resource, bool) {
	return e.matchFirst(resource.FamilyLoadBalancer, naming.LoadBalancer(e.settings.Project))
}

func (e *Engine) targetGroup() (resource.Resource, bool) {
	return e.matchFirst(resource.FamilyTargetGroups, naming.TargetGroup(e.settings.Project))
}
