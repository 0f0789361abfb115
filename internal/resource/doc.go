// Package resource holds the last-known state of every cloud resource family
// observed for a deployment.
//
// A [Resource] is a flat record decoupled from the cloud SDK types: a status
// string as reported by the platform, timestamps, and family specific
// attributes. Records are grouped by [Family] in a [Cache], which replaces a
// family wholesale on every successful poll and never merges incrementally.
//
// The [Querier] interface is the read-only contract of the cloud query
// adapter. It never returns an error: every failure collapses into an absent
// [Result] so callers can keep their previous state.
package resource
