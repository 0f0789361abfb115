// Package naming provides the naming conventions of the warehouse deployment.
//
// Resources are created as {project}-{role}[-{n}] for namespaces and
// workgroups and {project}-redshift-{type} for the load balancer and target
// group. Ownership and producer/consumer classification are derived from
// these names because the serverless list calls do not return tags.
package naming
