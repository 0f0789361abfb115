package deploy

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/imamik/rswatch/internal/lockfile"
	"github.com/imamik/rswatch/internal/resource"
	"github.com/imamik/rswatch/internal/util/async"
	"github.com/imamik/rswatch/internal/util/naming"
)

// ErrMissingProject is returned when the reconciler has no project to watch.
var ErrMissingProject = errors.New("project is required")

// Options configures a Reconciler.
type Options struct {
	Project             string
	ConsumerCount       int
	ReplicasPerConsumer int
	StuckThreshold      time.Duration
	Intervals           Intervals

	// Lock reports the provisioning lock. Defaults to lockfile.Disabled.
	Lock lockfile.Source
	// Clock defaults to the real clock.
	Clock         clock.Clock
	Logger        logr.Logger
	EnableMetrics bool
}

// Reconciler runs the polling loop and publishes snapshots. The loop is the
// only writer; Snapshot may be called from any goroutine.
type Reconciler struct {
	querier       resource.Querier
	project       string
	intervals     Intervals
	lock          lockfile.Source
	clock         clock.Clock
	log           logr.Logger
	enableMetrics bool

	mu        sync.Mutex
	engine    *Engine
	published Snapshot
	cycles    int
}

// NewReconciler creates a reconciler for one deployment observation session.
func NewReconciler(q resource.Querier, opts Options) (*Reconciler, error) {
	if strings.TrimSpace(opts.Project) == "" {
		return nil, ErrMissingProject
	}
	if opts.ConsumerCount < 1 {
		opts.ConsumerCount = 1
	}
	if opts.Lock == nil {
		opts.Lock = lockfile.Disabled{}
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}

	engine := NewEngine(Settings{
		Project:             opts.Project,
		ConsumerCount:       opts.ConsumerCount,
		ReplicasPerConsumer: opts.ReplicasPerConsumer,
		StuckThreshold:      opts.StuckThreshold,
	}, opts.Logger.WithName("engine"))

	r := &Reconciler{
		querier:       q,
		project:       opts.Project,
		intervals:     opts.Intervals.withDefaults(),
		lock:          opts.Lock,
		clock:         opts.Clock,
		log:           opts.Logger,
		enableMetrics: opts.EnableMetrics,
		engine:        engine,
	}
	r.published = r.initialSnapshot()
	return r, nil
}

// initialSnapshot is published before the first cycle.
func (r *Reconciler) initialSnapshot() Snapshot {
	s := r.engine.Snapshot()
	s.Interval = r.engine.NextInterval(r.intervals)
	return s
}

// Run polls until ctx is cancelled. Cancellation is observed between cycles;
// a cycle that has started runs to completion.
func (r *Reconciler) Run(ctx context.Context) error {
	r.log.Info("starting reconciliation loop", "project", r.project)
	for {
		if ctx.Err() != nil {
			r.log.Info("reconciliation loop stopped", "cycles", r.Cycles())
			return nil
		}

		r.RunOnce(ctx)

		timer := r.clock.NewTimer(r.Interval())
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C():
		}
	}
}

type fetched struct {
	family resource.Family
	result resource.Result
}

// RunOnce performs one full reconciliation cycle. Queries run on a context
// detached from ctx's cancellation so in-flight calls complete or time out.
func (r *Reconciler) RunOnce(ctx context.Context) {
	start := r.clock.Now()
	qctx := context.WithoutCancel(ctx)

	failed := r.merge(r.fetchFoundation(qctx))
	failed += r.merge(r.fetchEndpoints(qctx))
	failed += r.merge(r.fetchLoadBalancer(qctx))
	failed += r.merge(r.fetchTargets(qctx))

	r.mu.Lock()
	r.cycles++
	r.published.Cycles = r.cycles
	snap := r.published
	r.mu.Unlock()

	elapsed := r.clock.Since(start)
	r.recordCycle(elapsed.Seconds(), failed, snap)
	r.log.V(1).Info("reconciliation cycle finished",
		"cycle", snap.Cycles,
		"duration", elapsed,
		"failedQueries", failed,
		"progress", snap.Progress,
		"active", snap.Active().Key,
		"next", snap.Interval)
}

// merge applies one tier of results and evaluates the rules under the lock.
// It returns the number of failed queries in the tier.
func (r *Reconciler) merge(results []fetched) int {
	if len(results) == 0 {
		return 0
	}
	now := r.clock.Now()
	failed := 0

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range results {
		if !f.result.OK {
			failed++
		}
		r.engine.Apply(f.family, f.result, now)
	}
	r.engine.Evaluate(now)

	s := r.engine.Snapshot()
	s.Cycles = r.cycles
	s.Interval = r.engine.NextInterval(r.intervals)
	r.published = s
	return failed
}

// gates reads the state that decides which families are worth querying.
type gates struct {
	networkDone    bool
	vpcID          string
	subnetsSettled bool
	endpointsReady bool
	lbReady        bool
	targetsReady   bool
	targetGroupARN string
}

func (r *Reconciler) gates() gates {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.engine
	return gates{
		networkDone:    e.phases.complete(PhaseNetwork),
		vpcID:          e.VPCID(),
		subnetsSettled: e.SubnetsSettled(),
		endpointsReady: e.EndpointsReady(),
		lbReady:        e.LoadBalancerReady(),
		targetsReady:   e.TargetsReady(),
		targetGroupARN: e.TargetGroupARN(),
	}
}

// fetchFoundation queries the network chain and the clusters in parallel.
func (r *Reconciler) fetchFoundation(ctx context.Context) []fetched {
	g := r.gates()
	one := func(family resource.Family) func(context.Context) ([]fetched, error) {
		return func(ctx context.Context) ([]fetched, error) {
			return []fetched{r.query(ctx, family, resource.Containing(r.project))}, nil
		}
	}

	results, _ := async.Gather(ctx, []async.Task[fetched]{
		{Name: "network", Func: func(ctx context.Context) ([]fetched, error) {
			return r.fetchNetwork(ctx, g), nil
		}},
		{Name: "namespaces", Func: one(resource.FamilyNamespaces)},
		{Name: "workgroups", Func: one(resource.FamilyWorkgroups)},
	})
	return results
}

// fetchNetwork queries the VPC until the network phase completes, then the
// subnets and security groups of that VPC until the targets phase completes.
// Subnets keep arriving after the VPC and decide the expected target count.
func (r *Reconciler) fetchNetwork(ctx context.Context, g gates) []fetched {
	var out []fetched
	vpcID := g.vpcID
	if !g.networkDone {
		vpc := r.query(ctx, resource.FamilyNetwork, resource.Containing(r.project))
		out = append(out, vpc)
		if found, ok := primaryVPC(vpc.result.Resources); ok {
			vpcID = found.ID
		}
	}
	if vpcID == "" || g.subnetsSettled {
		return out
	}
	return append(out,
		r.query(ctx, resource.FamilySubnets, resource.Under(vpcID)),
		r.query(ctx, resource.FamilySecurityGroups, resource.Under(vpcID)),
	)
}

func (r *Reconciler) fetchEndpoints(ctx context.Context) []fetched {
	if !r.gates().endpointsReady {
		return nil
	}
	return []fetched{r.query(ctx, resource.FamilyEndpoints, resource.Containing(r.project))}
}

func (r *Reconciler) fetchLoadBalancer(ctx context.Context) []fetched {
	if !r.gates().lbReady {
		return nil
	}
	return []fetched{r.queryWithFallback(ctx, resource.FamilyLoadBalancer, naming.LoadBalancer(r.project))}
}

// fetchTargets queries the target group and then its target health.
func (r *Reconciler) fetchTargets(ctx context.Context) []fetched {
	g := r.gates()
	if !g.targetsReady {
		return nil
	}

	tg := r.queryWithFallback(ctx, resource.FamilyTargetGroups, naming.TargetGroup(r.project))
	out := []fetched{tg}

	arn := g.targetGroupARN
	if found, ok := pickByName(tg.result.Resources, naming.TargetGroup(r.project), r.project); ok {
		arn = found.Attr(resource.AttrARN)
	}
	if arn == "" {
		return out
	}
	return append(out, r.query(ctx, resource.FamilyTargetHealth, resource.Under(arn)))
}

// queryWithFallback looks a family up by exact name and falls back to
// records containing the project when the exact lookup finds nothing.
func (r *Reconciler) queryWithFallback(ctx context.Context, family resource.Family, exact string) fetched {
	f := r.query(ctx, family, resource.ByName(exact))
	if !f.result.Empty() {
		return f
	}
	fallback := r.query(ctx, family, resource.Containing(r.project))
	if !fallback.result.OK && f.result.OK {
		return f
	}
	if len(fallback.result.Resources) > 0 {
		r.log.V(1).Info("exact lookup missed, using project match",
			"family", family, "name", exact, "match", fallback.result.Resources[0].Name)
	}
	return fallback
}

func (r *Reconciler) query(ctx context.Context, family resource.Family, filter resource.Filter) fetched {
	return fetched{family: family, result: r.querier.Query(ctx, family, filter)}
}

// pickByName returns the record with the exact name, else the first record
// containing project.
func pickByName(items []resource.Resource, exact, project string) (resource.Resource, bool) {
	for _, it := range items {
		if it.Name == exact {
			return it, true
		}
	}
	for _, it := range items {
		if naming.Owned(project, it.Name) {
			return it, true
		}
	}
	return resource.Resource{}, false
}

// Snapshot returns a deep copy of the latest published state.
func (r *Reconciler) Snapshot() Snapshot {
	r.mu.Lock()
	s := r.published.Clone()
	r.mu.Unlock()

	s.Lock = r.lock.Status()
	return s
}

// Interval returns the sleep before the next cycle.
func (r *Reconciler) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.NextInterval(r.intervals)
}

// Cycles returns the number of completed cycles.
func (r *Reconciler) Cycles() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycles
}

// Ready reports whether at least one cycle has completed.
func (r *Reconciler) Ready() bool {
	return r.Cycles() > 0
}

// DetectConsumers counts the consumer workgroups of a project. It reports
// false when the query failed or found none.
func DetectConsumers(ctx context.Context, q resource.Querier, project string) (int, bool) {
	res := q.Query(ctx, resource.FamilyWorkgroups, resource.Containing(naming.ConsumerPrefix(project)))
	if !res.OK {
		return 0, false
	}
	n := 0
	for _, wg := range res.Resources {
		if strings.Contains(wg.Name, naming.ConsumerPrefix(project)) {
			n++
		}
	}
	return n, n > 0
}
