// Package retry provides exponential backoff for transient failures.
//
// [Do] retries an operation while a predicate classifies its error as
// transient. The AWS query adapter uses it to absorb throttling inside the
// per-family query timeout.
package retry
