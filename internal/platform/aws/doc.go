// Package aws implements the cloud query adapter over the AWS SDK v2.
//
// Client answers read-only queries for every resource family: VPCs,
// subnets and security groups (EC2), namespaces, workgroups and endpoint
// access (Redshift Serverless), and load balancers, target groups and
// target health (Elastic Load Balancing v2). Query never returns an error:
// failures, timeouts and malformed responses collapse to an absent result
// and are logged here, so callers only ever see data or nothing.
package aws
