package aws

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	rstypes "github.com/aws/aws-sdk-go-v2/service/redshiftserverless/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"load balancer typed", &elbtypes.LoadBalancerNotFoundException{Message: aws.String("x")}, true},
		{"target group typed", &elbtypes.TargetGroupNotFoundException{}, true},
		{"serverless typed", &rstypes.ResourceNotFoundException{}, true},
		{"wrapped typed", fmt.Errorf("DescribeLoadBalancers: %w", &elbtypes.LoadBalancerNotFoundException{}), true},
		{"ec2 code", &smithy.GenericAPIError{Code: "InvalidVpcID.NotFound"}, true},
		{"other code suffix", &smithy.GenericAPIError{Code: "InvalidRouteTableID.NotFound"}, true},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "success", classify(nil))
	assert.Equal(t, "not_found", classify(&rstypes.ResourceNotFoundException{}))
	assert.Equal(t, "throttled", classify(&smithy.GenericAPIError{Code: "ThrottlingException"}))
	assert.Equal(t, "throttled", classify(fmt.Errorf("ListWorkgroups: %w", &smithy.GenericAPIError{Code: "RequestLimitExceeded"})))
	assert.Equal(t, "timeout", classify(fmt.Errorf("call: %w", context.DeadlineExceeded)))
	assert.Equal(t, "error", classify(errors.New("boom")))
	assert.False(t, IsThrottled(nil))
}
