// Package server exposes published deployment snapshots over HTTP.
//
// Routes:
//
//	GET /api/v1/snapshot          full snapshot
//	GET /api/v1/phases            phase list with progress
//	GET /api/v1/resources/:family cached records of one family
//	GET /healthz                  liveness
//	GET /readyz                   503 until the first cycle finished
//	GET /metrics                  Prometheus metrics
package server
