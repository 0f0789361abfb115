package testing

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/redshiftserverless"
	"github.com/stretchr/testify/mock"
)

// MockEC2API is a mock of the EC2 calls used by the query adapter.
type MockEC2API struct {
	mock.Mock
}

// DescribeVpcs returns the mocked VPC page.
func (m *MockEC2API) DescribeVpcs(ctx context.Context, in *ec2.DescribeVpcsInput, _ ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ec2.DescribeVpcsOutput), args.Error(1)
}

// DescribeSubnets returns the mocked subnet page.
func (m *MockEC2API) DescribeSubnets(ctx context.Context, in *ec2.DescribeSubnetsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ec2.DescribeSubnetsOutput), args.Error(1)
}

// DescribeSecurityGroups returns the mocked security group page.
func (m *MockEC2API) DescribeSecurityGroups(ctx context.Context, in *ec2.DescribeSecurityGroupsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ec2.DescribeSecurityGroupsOutput), args.Error(1)
}

// MockServerlessAPI is a mock of the Redshift Serverless calls used by the query adapter.
type MockServerlessAPI struct {
	mock.Mock
}

// ListNamespaces returns the mocked namespace page.
func (m *MockServerlessAPI) ListNamespaces(ctx context.Context, in *redshiftserverless.ListNamespacesInput, _ ...func(*redshiftserverless.Options)) (*redshiftserverless.ListNamespacesOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redshiftserverless.ListNamespacesOutput), args.Error(1)
}

// ListWorkgroups returns the mocked workgroup page.
func (m *MockServerlessAPI) ListWorkgroups(ctx context.Context, in *redshiftserverless.ListWorkgroupsInput, _ ...func(*redshiftserverless.Options)) (*redshiftserverless.ListWorkgroupsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redshiftserverless.ListWorkgroupsOutput), args.Error(1)
}

// ListEndpointAccess returns the mocked endpoint page.
func (m *MockServerlessAPI) ListEndpointAccess(ctx context.Context, in *redshiftserverless.ListEndpointAccessInput, _ ...func(*redshiftserverless.Options)) (*redshiftserverless.ListEndpointAccessOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redshiftserverless.ListEndpointAccessOutput), args.Error(1)
}

// MockELBAPI is a mock of the Elastic Load Balancing v2 calls used by the query adapter.
type MockELBAPI struct {
	mock.Mock
}

// DescribeLoadBalancers returns the mocked load balancer page.
func (m *MockELBAPI) DescribeLoadBalancers(ctx context.Context, in *elbv2.DescribeLoadBalancersInput, _ ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elbv2.DescribeLoadBalancersOutput), args.Error(1)
}

// DescribeTargetGroups returns the mocked target group page.
func (m *MockELBAPI) DescribeTargetGroups(ctx context.Context, in *elbv2.DescribeTargetGroupsInput, _ ...func(*elbv2.Options)) (*elbv2.DescribeTargetGroupsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elbv2.DescribeTargetGroupsOutput), args.Error(1)
}

// DescribeTargetHealth returns the mocked target health.
func (m *MockELBAPI) DescribeTargetHealth(ctx context.Context, in *elbv2.DescribeTargetHealthInput, _ ...func(*elbv2.Options)) (*elbv2.DescribeTargetHealthOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elbv2.DescribeTargetHealthOutput), args.Error(1)
}
