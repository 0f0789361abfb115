package aws

import (
	"context"
	"errors"
	"strings"

	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	rstypes "github.com/aws/aws-sdk-go-v2/service/redshiftserverless/types"
	"github.com/aws/smithy-go"
)

// Error codes that mean "nothing matched" rather than "the call failed".
var notFoundCodes = map[string]bool{
	"LoadBalancerNotFound":      true,
	"TargetGroupNotFound":       true,
	"ResourceNotFoundException": true,
	"InvalidVpcID.NotFound":     true,
	"InvalidSubnetID.NotFound":  true,
	"InvalidGroup.NotFound":     true,
}

var throttleCodes = map[string]bool{
	"Throttling":                             true,
	"ThrottlingException":                    true,
	"RequestLimitExceeded":                   true,
	"TooManyRequestsException":               true,
	"RequestThrottled":                       true,
	"RequestThrottledException":              true,
	"ProvisionedThroughputExceededException": true,
}

// IsNotFound checks if the error means the requested resource does not exist.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	// Check for typed SDK errors first
	var lbnf *elbtypes.LoadBalancerNotFoundException
	if errors.As(err, &lbnf) {
		return true
	}

	var tgnf *elbtypes.TargetGroupNotFoundException
	if errors.As(err, &tgnf) {
		return true
	}

	var rnf *rstypes.ResourceNotFoundException
	if errors.As(err, &rnf) {
		return true
	}

	// Fall back to API error code checking
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return notFoundCodes[code] || strings.HasSuffix(code, ".NotFound")
	}

	return false
}

// IsThrottled checks if the error is a rate limit rejection.
func IsThrottled(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return throttleCodes[apiErr.ErrorCode()]
	}

	return false
}

// IsTimeout checks if the error was caused by the per-call deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// classify returns the metric result label for an error.
func classify(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsNotFound(err):
		return "not_found"
	case IsThrottled(err):
		return "throttled"
	case IsTimeout(err):
		return "timeout"
	default:
		return "error"
	}
}
