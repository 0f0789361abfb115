package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/rswatch/internal/resource"
	"github.com/imamik/rswatch/internal/util/retry"
)

var _ resource.Querier = (*Client)(nil)

// Query implements resource.Querier. It never blocks longer than the
// family's timeout and never returns an error: not-found answers become a
// successful empty result, every other failure an absent one.
func (c *Client) Query(ctx context.Context, family resource.Family, filter resource.Filter) resource.Result {
	fetch, timeout, ok := c.route(family)
	if !ok {
		c.log.Info("unknown resource family", "family", family)
		return resource.Absent()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	items, err := fetch(ctx, filter)
	if err != nil {
		if IsNotFound(err) {
			c.log.V(1).Info("no resources found", "family", family, "filter", filter.Name)
			return resource.Found()
		}
		c.log.Info("query failed", "family", family, "filter", filter.Name, "result", classify(err), "error", err.Error())
		return resource.Absent()
	}

	now := time.Now()
	for i := range items {
		items[i].ObservedAt = now
	}
	return resource.Found(items...)
}

type fetchFunc func(ctx context.Context, f resource.Filter) ([]resource.Resource, error)

func (c *Client) route(family resource.Family) (fetchFunc, time.Duration, bool) {
	switch family {
	case resource.FamilyNetwork:
		return c.describeVpcs, c.timeouts.Network, true
	case resource.FamilySubnets:
		return c.describeSubnets, c.timeouts.Network, true
	case resource.FamilySecurityGroups:
		return c.describeSecurityGroups, c.timeouts.Network, true
	case resource.FamilyNamespaces:
		return c.listNamespaces, c.timeouts.Clusters, true
	case resource.FamilyWorkgroups:
		return c.listWorkgroups, c.timeouts.Clusters, true
	case resource.FamilyEndpoints:
		return c.listEndpoints, c.timeouts.Endpoints, true
	case resource.FamilyLoadBalancer:
		return c.describeLoadBalancers, c.timeouts.LoadBalancer, true
	case resource.FamilyTargetGroups:
		return c.describeTargetGroups, c.timeouts.Targets, true
	case resource.FamilyTargetHealth:
		return c.describeTargetHealth, c.timeouts.Targets, true
	default:
		return nil, 0, false
	}
}

// call waits for the shared rate limiter, runs one API request, and records
// its outcome. Throttled requests are retried with backoff until the
// family timeout runs out.
func (c *Client) call(ctx context.Context, operation string, fn func(context.Context) error) error {
	err := retry.Do(ctx, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		start := time.Now()
		err := fn(ctx)
		c.recordAPICall(operation, classify(err), time.Since(start).Seconds())
		if IsThrottled(err) {
			c.log.V(1).Info("request throttled", "operation", operation)
		}
		return err
	}, retry.WithRetryIf(IsThrottled), retry.WithMaxRetries(c.throttleRetries))
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}
