// Package deploy reconciles the observed state of a Redshift Serverless data
// sharing deployment into an ordered list of phases.
//
// The Engine owns the resource cache and the phase state machine. Phases only
// move forward: a complete phase stays complete even when the resources that
// proved it disappear from later polls. Later resources corroborate earlier
// phases, so a running workgroup completes the network phases without a VPC
// ever being observed.
//
// The Reconciler drives the Engine. Each cycle fetches resource families in
// dependency tiers through a resource.Querier, merges every tier under a
// single lock and publishes an immutable Snapshot for presentation layers.
// The sleep between cycles adapts to how much is currently changing.
package deploy
