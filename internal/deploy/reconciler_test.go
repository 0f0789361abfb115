package deploy

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/imamik/rswatch/internal/lockfile"
	"github.com/imamik/rswatch/internal/resource"
	rstesting "github.com/imamik/rswatch/internal/testing"
	"github.com/imamik/rswatch/internal/util/naming"
)

type staticLock lockfile.Status

func (l staticLock) Status() lockfile.Status { return lockfile.Status(l) }

var _ = Describe("Reconciler", func() {
	var (
		q         *rstesting.ScriptedQuerier
		d         *rstesting.Deployment
		fakeClock *testingclock.FakeClock
		ctx       context.Context
	)

	newReconciler := func(mutate ...func(*Options)) *Reconciler {
		opts := Options{
			Project:             "airline",
			ConsumerCount:       3,
			ReplicasPerConsumer: 3,
			Clock:               fakeClock,
			Logger:              logr.Discard(),
		}
		for _, m := range mutate {
			m(&opts)
		}
		r, err := NewReconciler(q, opts)
		Expect(err).NotTo(HaveOccurred())
		return r
	}

	scriptDeployment := func(healthy int) {
		q.Set(resource.FamilyNetwork, resource.Found(d.VPC()))
		q.Set(resource.FamilySubnets, resource.Found(d.Subnets()...))
		q.Set(resource.FamilySecurityGroups, resource.Found(d.SecurityGroups()...))
		q.Set(resource.FamilyNamespaces, resource.Found(d.Namespaces(resource.StatusAvailable)...))
		q.Set(resource.FamilyWorkgroups, resource.Found(d.Workgroups(resource.StatusAvailable)...))
		q.Set(resource.FamilyEndpoints, resource.Found(d.Endpoints(resource.StatusActive)...))
		q.Set(resource.FamilyLoadBalancer, resource.Found(d.LoadBalancer("active")))
		q.Set(resource.FamilyTargetGroups, resource.Found(d.TargetGroup()))
		q.Set(resource.FamilyTargetHealth, resource.Found(d.Targets(healthy, 0, 0)...))
	}

	expectAllComplete := func(s Snapshot) {
		for _, p := range s.Phases {
			Expect(p.Status).To(Equal(StatusComplete), "phase %s", p.Key)
		}
	}

	BeforeEach(func() {
		q = rstesting.NewScriptedQuerier()
		d = rstesting.NewDeployment("airline", 3)
		fakeClock = testingclock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
		ctx = context.Background()
	})

	Describe("construction", func() {
		It("requires a project", func() {
			_, err := NewReconciler(q, Options{})
			Expect(err).To(MatchError(ErrMissingProject))
		})

		It("publishes an all-pending snapshot before the first cycle", func() {
			r := newReconciler()

			s := r.Snapshot()
			Expect(s.Phases).To(HaveLen(len(PhaseOrder)))
			for _, p := range s.Phases {
				Expect(p.Status).To(Equal(StatusPending))
			}
			Expect(s.Progress).To(BeZero())
			Expect(s.LastPoll.IsZero()).To(BeTrue())
			Expect(r.Ready()).To(BeFalse())
			Expect(r.Interval()).To(Equal(DefaultIdleInterval))
		})
	})

	Describe("target threshold", func() {
		DescribeTable("nine expected targets",
			func(healthy int, want Status, complete bool) {
				scriptDeployment(healthy)
				r := newReconciler()

				r.RunOnce(ctx)

				s := r.Snapshot()
				targets, _ := s.Phase(PhaseTargets)
				health, _ := s.Phase(PhaseHealth)
				Expect(targets.Status).To(Equal(want))
				Expect(health.Status).To(Equal(want))
				Expect(s.DeploymentComplete).To(Equal(complete))
				Expect(s.Highlights.ExpectedTargets).To(Equal(9))
				Expect(s.Highlights.HealthyTargets).To(Equal(healthy))
			},
			Entry("nine healthy completes the deployment", 9, StatusComplete, true),
			Entry("eight healthy stays in progress", 8, StatusInProgress, false),
		)
	})

	Describe("monotonicity", func() {
		It("keeps completed phases when every query fails", func() {
			scriptDeployment(9)
			r := newReconciler()
			r.RunOnce(ctx)
			expectAllComplete(r.Snapshot())

			q.FailAll()
			for range 3 {
				r.RunOnce(ctx)
			}

			s := r.Snapshot()
			expectAllComplete(s)
			Expect(s.DeploymentComplete).To(BeTrue())
			Expect(s.Progress).To(Equal(100))
		})

		It("ignores empty results after the cache was populated", func() {
			scriptDeployment(9)
			r := newReconciler()
			r.RunOnce(ctx)
			before := r.Snapshot()

			for _, family := range resource.Families {
				q.Set(family, resource.Found())
			}
			for range 3 {
				fakeClock.Step(time.Second)
				r.RunOnce(ctx)
			}

			after := r.Snapshot()
			Expect(after.Phases).To(Equal(before.Phases))
			Expect(after.Resources).To(Equal(before.Resources))
			Expect(after.Cycles).To(Equal(4))
		})
	})

	Describe("transitive inference", func() {
		It("completes network and security from a consumer workgroup alone", func() {
			q.Set(resource.FamilyNetwork, resource.Found())
			q.Set(resource.FamilyWorkgroups, resource.Found(d.Consumer(1, resource.StatusAvailable)))
			r := newReconciler()

			r.RunOnce(ctx)

			s := r.Snapshot()
			network, _ := s.Phase(PhaseNetwork)
			security, _ := s.Phase(PhaseSecurity)
			Expect(network.Status).To(Equal(StatusComplete))
			Expect(security.Status).To(Equal(StatusComplete))
			Expect(s.Highlights.VPC).To(Equal(InferredVPC))
		})
	})

	Describe("ordering", func() {
		It("does not query endpoints before the consumer workgroups are complete", func() {
			scriptDeployment(9)
			q.Set(resource.FamilyWorkgroups, resource.Found(d.Workgroups(resource.StatusCreating)...))
			r := newReconciler()

			r.RunOnce(ctx)
			r.RunOnce(ctx)

			Expect(q.Calls(resource.FamilyEndpoints)).To(BeZero())
			Expect(q.Calls(resource.FamilyLoadBalancer)).To(BeZero())
			Expect(q.Calls(resource.FamilyTargetHealth)).To(BeZero())
			endpoints, _ := r.Snapshot().Phase(PhaseEndpoints)
			Expect(endpoints.Status).To(Equal(StatusPending))
		})

		It("scopes child queries to their parents", func() {
			scriptDeployment(9)
			r := newReconciler()

			r.RunOnce(ctx)

			Expect(q.Filters(resource.FamilySubnets)).To(ConsistOf(resource.Under("vpc-0a1b2c3d")))
			Expect(q.Filters(resource.FamilyTargetHealth)).To(ConsistOf(resource.Under(rstesting.TargetGroupARN)))
			Expect(q.Filters(resource.FamilyWorkgroups)).To(ConsistOf(resource.Containing("airline")))
		})

		It("stops polling the VPC once it is known but keeps polling subnets until targets settle", func() {
			scriptDeployment(0)
			r := newReconciler()
			r.RunOnce(ctx)
			q.ResetCalls()

			r.RunOnce(ctx)

			Expect(q.Calls(resource.FamilyNetwork)).To(BeZero())
			Expect(q.Calls(resource.FamilySubnets)).To(Equal(1))
			Expect(q.Calls(resource.FamilyWorkgroups)).To(Equal(1))
		})

		It("stops polling subnets once the targets are complete", func() {
			scriptDeployment(9)
			r := newReconciler()
			r.RunOnce(ctx)
			q.ResetCalls()

			r.RunOnce(ctx)

			Expect(q.Calls(resource.FamilyNetwork)).To(BeZero())
			Expect(q.Calls(resource.FamilySubnets)).To(BeZero())
			Expect(q.Calls(resource.FamilySecurityGroups)).To(BeZero())
		})

		It("scopes subnets to the same VPC the snapshot reports", func() {
			scriptDeployment(0)
			other := d.VPC()
			other.ID = "vpc-ffff0000"
			q.Set(resource.FamilyNetwork, resource.Found(other, d.VPC()))
			r := newReconciler()

			r.RunOnce(ctx)

			Expect(q.Filters(resource.FamilySubnets)).To(ConsistOf(resource.Under("vpc-0a1b2c3d")))
			Expect(r.Snapshot().Highlights.VPC).To(Equal("vpc-0a1b2c3d"))
		})
	})

	Describe("expected targets from zones", func() {
		It("does not complete on a partial subnet layout", func() {
			partial := rstesting.NewDeployment("airline", 3)
			partial.Zones = partial.Zones[:1]
			q.Set(resource.FamilyNetwork, resource.Found(d.VPC()))
			q.Set(resource.FamilySubnets, resource.Found(partial.Subnets()...))
			q.Set(resource.FamilyWorkgroups, resource.Found(d.Workgroups(resource.StatusCreating)...))
			r := newReconciler(func(o *Options) { o.ReplicasPerConsumer = 0 })

			r.RunOnce(ctx)
			Expect(r.Snapshot().Highlights.ExpectedTargets).To(Equal(3))

			scriptDeployment(3)
			r.RunOnce(ctx)

			s := r.Snapshot()
			Expect(s.Highlights.ExpectedTargets).To(Equal(9))
			Expect(s.Highlights.HealthyTargets).To(Equal(3))
			Expect(s.DeploymentComplete).To(BeFalse())
			targets, _ := s.Phase(PhaseTargets)
			Expect(targets.Status).NotTo(Equal(StatusComplete))
		})
	})

	Describe("fallback match", func() {
		It("treats a project match like an exact match", func() {
			renamed := d.LoadBalancer("active")
			renamed.Name = "airline-nlb-7f3a"
			scriptDeployment(9)
			q.SetFor(resource.FamilyLoadBalancer, resource.MatchExact, resource.Found())
			q.SetFor(resource.FamilyLoadBalancer, resource.MatchContains, resource.Found(renamed))
			r := newReconciler()

			r.RunOnce(ctx)

			Expect(q.Filters(resource.FamilyLoadBalancer)).To(Equal([]resource.Filter{
				resource.ByName(naming.LoadBalancer("airline")),
				resource.Containing("airline"),
			}))
			s := r.Snapshot()
			lb, _ := s.Phase(PhaseLoadBalancer)
			Expect(lb.Status).To(Equal(StatusComplete))
			Expect(s.Highlights.LoadBalancer).To(Equal("airline-nlb-7f3a"))
			Expect(s.DeploymentComplete).To(BeTrue())
		})

		It("does not fall back when the exact lookup succeeds", func() {
			scriptDeployment(9)
			r := newReconciler()

			r.RunOnce(ctx)

			Expect(q.Filters(resource.FamilyLoadBalancer)).To(ConsistOf(resource.ByName(naming.LoadBalancer("airline"))))
		})
	})

	Describe("teardown", func() {
		It("overrides a completed deployment", func() {
			scriptDeployment(9)
			r := newReconciler()
			r.RunOnce(ctx)
			Expect(r.Snapshot().DeploymentComplete).To(BeTrue())

			wgs := d.Workgroups(resource.StatusAvailable)
			wgs[1].Status = resource.StatusDeleting
			q.Set(resource.FamilyWorkgroups, resource.Found(wgs...))
			r.RunOnce(ctx)

			s := r.Snapshot()
			Expect(s.TeardownDetected).To(BeTrue())
			Expect(s.DeploymentComplete).To(BeFalse())
			Expect(s.Teardown).NotTo(BeNil())
			Expect(s.Teardown.Baseline).To(Equal(13))
			expectAllComplete(s)

			q.Set(resource.FamilyWorkgroups, resource.Found())
			q.Set(resource.FamilyEndpoints, resource.Found())
			r.RunOnce(ctx)

			s = r.Snapshot()
			Expect(s.Teardown.Remaining).To(Equal(6))
			Expect(s.Progress).To(Equal(53))
		})
	})

	Describe("loop", func() {
		It("runs cycles on the clock and stops between cycles", func() {
			scriptDeployment(3)
			r := newReconciler()
			runCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			done := make(chan error, 1)
			go func() { done <- r.Run(runCtx) }()

			Eventually(r.Cycles).Should(Equal(1))
			Eventually(fakeClock.HasWaiters).Should(BeTrue())
			Expect(r.Interval()).To(Equal(DefaultTargetsInterval))

			fakeClock.Step(DefaultTargetsInterval)
			Eventually(r.Cycles).Should(Equal(2))

			cancel()
			Eventually(done).Should(Receive(BeNil()))
		})

		It("lets in-flight queries finish after cancellation", func() {
			var (
				mu   sync.Mutex
				errs []error
			)
			querier := resource.QuerierFunc(func(ctx context.Context, family resource.Family, filter resource.Filter) resource.Result {
				mu.Lock()
				errs = append(errs, ctx.Err())
				mu.Unlock()
				return q.Query(ctx, family, filter)
			})
			scriptDeployment(9)
			r, err := NewReconciler(querier, Options{Project: "airline", ConsumerCount: 3, ReplicasPerConsumer: 3, Clock: fakeClock})
			Expect(err).NotTo(HaveOccurred())

			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			r.RunOnce(cancelled)

			Expect(errs).NotTo(BeEmpty())
			for _, e := range errs {
				Expect(e).NotTo(HaveOccurred())
			}
			Expect(r.Snapshot().DeploymentComplete).To(BeTrue())
			Expect(r.Run(cancelled)).To(Succeed())
			Expect(r.Cycles()).To(Equal(1))
		})

		It("adapts the interval to the deployment state", func() {
			scriptDeployment(9)
			r := newReconciler(func(o *Options) {
				o.Intervals = Intervals{Complete: 30 * time.Second}
			})

			r.RunOnce(ctx)

			Expect(r.Interval()).To(Equal(30 * time.Second))
			Expect(r.Snapshot().Interval).To(Equal(30 * time.Second))
		})
	})

	Describe("snapshot", func() {
		It("includes the lock status", func() {
			r := newReconciler(func(o *Options) {
				o.Lock = staticLock{State: lockfile.StateLocked, Owner: "ci-runner", Workgroup: "airline-consumer-2"}
			})

			s := r.Snapshot()
			Expect(s.Lock.Held()).To(BeTrue())
			Expect(s.Lock.Owner).To(Equal("ci-runner"))
		})

		It("is safe to read while the loop writes", func() {
			scriptDeployment(5)
			r := newReconciler()

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 20 {
					r.RunOnce(ctx)
				}
			}()
			for range 200 {
				s := r.Snapshot()
				Expect(s.Phases).To(HaveLen(len(PhaseOrder)))
			}
			wg.Wait()
			Expect(r.Cycles()).To(Equal(20))
		})

		It("returns copies", func() {
			scriptDeployment(9)
			r := newReconciler()
			r.RunOnce(ctx)

			s := r.Snapshot()
			s.Phases[0].Status = StatusPending
			s.Resources[resource.FamilyWorkgroups] = nil

			fresh := r.Snapshot()
			Expect(fresh.Phases[0].Status).To(Equal(StatusComplete))
			Expect(fresh.Resources[resource.FamilyWorkgroups]).To(HaveLen(4))
		})
	})
})

var _ = Describe("DetectConsumers", func() {
	It("counts consumer workgroups", func() {
		d := rstesting.NewDeployment("airline", 4)
		q := rstesting.NewScriptedQuerier().Set(resource.FamilyWorkgroups, resource.Found(d.Workgroups(resource.StatusAvailable)...))

		n, ok := DetectConsumers(context.Background(), q, "airline")
		Expect(ok).To(BeTrue())
		Expect(n).To(Equal(4))
		Expect(q.Filters(resource.FamilyWorkgroups)).To(ConsistOf(resource.Containing("airline-consumer")))
	})

	It("reports nothing when the query fails", func() {
		n, ok := DetectConsumers(context.Background(), rstesting.NewScriptedQuerier(), "airline")
		Expect(ok).To(BeFalse())
		Expect(n).To(BeZero())
	})
})
