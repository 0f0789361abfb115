// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - Deployment: Resource fixtures for a project at any provisioning stage
//   - ScriptedQuerier: A resource.Querier answering from canned results
//   - MockEC2API, MockServerlessAPI, MockELBAPI: testify mocks of the AWS APIs
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithProject("airline").
//	    WithConsumers(3).
//	    Build()
//
//	d := testing.NewDeployment("airline", 3)
//	q := testing.NewScriptedQuerier()
//	q.Set(resource.FamilyWorkgroups, resource.Found(d.Workgroups(resource.StatusAvailable)...))
package testing
