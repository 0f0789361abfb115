package testing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/imamik/rswatch/internal/resource"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

type scriptKey struct {
	family resource.Family
	match  resource.MatchMode
}

// ScriptedQuerier answers queries from canned results. Families without a
// result answer absent. It records every call and is safe for concurrent use.
type ScriptedQuerier struct {
	mu      sync.Mutex
	results map[scriptKey]resource.Result
	calls   map[resource.Family][]resource.Filter
}

// NewScriptedQuerier creates an empty querier.
func NewScriptedQuerier() *ScriptedQuerier {
	return &ScriptedQuerier{
		results: make(map[scriptKey]resource.Result),
		calls:   make(map[resource.Family][]resource.Filter),
	}
}

// Set answers every query of a family with r.
func (q *ScriptedQuerier) Set(family resource.Family, r resource.Result) *ScriptedQuerier {
	return q.SetFor(family, resource.MatchAny, r)
}

// SetFor answers queries of a family using the given match mode with r. It
// takes precedence over Set.
func (q *ScriptedQuerier) SetFor(family resource.Family, match resource.MatchMode, r resource.Result) *ScriptedQuerier {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.results[scriptKey{family, match}] = r
	return q
}

// FailAll makes every family answer absent.
func (q *ScriptedQuerier) FailAll() {
	q.mu.Lock()
	defer q.mu.Unlock()
	clear(q.results)
}

// Query implements resource.Querier.
func (q *ScriptedQuerier) Query(_ context.Context, family resource.Family, filter resource.Filter) resource.Result {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.calls[family] = append(q.calls[family], filter)

	if r, ok := q.results[scriptKey{family, filter.Match}]; ok {
		return r
	}
	return q.results[scriptKey{family, resource.MatchAny}]
}

// Calls returns the number of queries issued for a family.
func (q *ScriptedQuerier) Calls(family resource.Family) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.calls[family])
}

// Filters returns the filters of every query issued for a family.
func (q *ScriptedQuerier) Filters(family resource.Family) []resource.Filter {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]resource.Filter(nil), q.calls[family]...)
}

// ResetCalls forgets recorded calls.
func (q *ScriptedQuerier) ResetCalls() {
	q.mu.Lock()
	defer q.mu.Unlock()
	clear(q.calls)
}
