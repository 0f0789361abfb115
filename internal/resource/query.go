package resource

import (
	"context"
	"strings"
)

// MatchMode selects how a Filter name is compared against resource names.
type MatchMode int

const (
	// MatchAny ignores the name.
	MatchAny MatchMode = iota
	// MatchExact requires the resource name to equal Filter.Name.
	MatchExact
	// MatchContains requires the resource name to contain Filter.Name.
	MatchContains
)

func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchContains:
		return "contains"
	default:
		return "any"
	}
}

// Filter narrows a family query.
type Filter struct {
	Name  string
	Match MatchMode
	// Parent scopes child families: the VPC id for subnets and security
	// groups, the target group ARN for target health.
	Parent string
}

// ByName returns a filter matching the exact name.
func ByName(name string) Filter {
	return Filter{Name: name, Match: MatchExact}
}

// Containing returns a filter matching names that contain s.
func Containing(s string) Filter {
	return Filter{Name: s, Match: MatchContains}
}

// Under returns a filter scoped to a parent resource.
func Under(parent string) Filter {
	return Filter{Parent: parent}
}

// Matches reports whether name satisfies the filter.
func (f Filter) Matches(name string) bool {
	switch f.Match {
	case MatchExact:
		return name == f.Name
	case MatchContains:
		return strings.Contains(name, f.Name)
	default:
		return true
	}
}

// Result is the outcome of one family query. OK is false when the call
// failed, timed out, or returned a malformed response.
type Result struct {
	Resources []Resource
	OK        bool
}

// Found returns a successful result.
func Found(rs ...Resource) Result {
	return Result{Resources: rs, OK: true}
}

// Absent returns the result of a failed query.
func Absent() Result {
	return Result{}
}

// Empty reports whether the result carries no resources, either because the
// call failed or because nothing matched.
func (r Result) Empty() bool {
	return !r.OK || len(r.Resources) == 0
}

// Querier issues read-only describe and list calls against the control plane.
// Implementations must never block beyond their per-call timeout.
type Querier interface {
	Query(ctx context.Context, family Family, filter Filter) Result
}

// QuerierFunc adapts a function to the Querier interface.
type QuerierFunc func(ctx context.Context, family Family, filter Filter) Result

// Query implements Querier.
func (f QuerierFunc) Query(ctx context.Context, family Family, filter Filter) Result {
	return f(ctx, family, filter)
}
