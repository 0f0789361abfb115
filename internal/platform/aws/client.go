package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/redshiftserverless"
	"github.com/go-logr/logr"
	"golang.org/x/time/rate"
)

// Default call budget shared by all families. A full reconciliation cycle
// issues at most nine calls.
const (
	DefaultRateLimit = rate.Limit(10)
	DefaultBurst     = 10

	// DefaultThrottleRetries is how often a throttled request is retried.
	DefaultThrottleRetries = 2

	// maxPages bounds pagination of list calls.
	maxPages = 20
)

// Timeouts bounds each query by family group.
type Timeouts struct {
	Network      time.Duration
	Clusters     time.Duration
	Endpoints    time.Duration
	LoadBalancer time.Duration
	Targets      time.Duration
}

// DefaultTimeouts returns the per-family timeouts used when none are configured.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Network:      10 * time.Second,
		Clusters:     5 * time.Second,
		Endpoints:    5 * time.Second,
		LoadBalancer: 5 * time.Second,
		Targets:      5 * time.Second,
	}
}

// Options configures a Client.
type Options struct {
	Region string
	// Profile selects a shared config profile. Empty uses the default chain.
	Profile string
	// Endpoint overrides the service endpoints, e.g. for LocalStack.
	Endpoint string
	// Static credentials, used only when both are set.
	AccessKeyID     string
	SecretAccessKey string

	Timeouts  Timeouts
	RateLimit rate.Limit
	Burst     int
	// ThrottleRetries bounds retries of throttled requests. Negative disables them.
	ThrottleRetries int

	EnableMetrics bool
	Logger        logr.Logger
}

// Client answers resource family queries against AWS.
type Client struct {
	ec2        EC2API
	serverless ServerlessAPI
	elb        ELBAPI

	region          string
	timeouts        Timeouts
	limiter         *rate.Limiter
	throttleRetries int
	log             logr.Logger
	enableMetrics   bool
}

// NewClient loads the AWS configuration and creates the service clients.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var endpoint *string
	if opts.Endpoint != "" {
		endpoint = aws.String(opts.Endpoint)
	}

	return New(
		ec2.NewFromConfig(cfg, func(o *ec2.Options) { o.BaseEndpoint = endpoint }),
		redshiftserverless.NewFromConfig(cfg, func(o *redshiftserverless.Options) { o.BaseEndpoint = endpoint }),
		elbv2.NewFromConfig(cfg, func(o *elbv2.Options) { o.BaseEndpoint = endpoint }),
		opts,
	), nil
}

// New creates a Client from existing service clients.
func New(ec2API EC2API, serverlessAPI ServerlessAPI, elbAPI ELBAPI, opts Options) *Client {
	timeouts := opts.Timeouts
	def := DefaultTimeouts()
	if timeouts.Network <= 0 {
		timeouts.Network = def.Network
	}
	if timeouts.Clusters <= 0 {
		timeouts.Clusters = def.Clusters
	}
	if timeouts.Endpoints <= 0 {
		timeouts.Endpoints = def.Endpoints
	}
	if timeouts.LoadBalancer <= 0 {
		timeouts.LoadBalancer = def.LoadBalancer
	}
	if timeouts.Targets <= 0 {
		timeouts.Targets = def.Targets
	}

	limit, burst := opts.RateLimit, opts.Burst
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if burst <= 0 {
		burst = DefaultBurst
	}

	retries := opts.ThrottleRetries
	switch {
	case retries == 0:
		retries = DefaultThrottleRetries
	case retries < 0:
		retries = 0
	}

	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	return &Client{
		ec2:             ec2API,
		serverless:      serverlessAPI,
		elb:             elbAPI,
		region:          opts.Region,
		timeouts:        timeouts,
		limiter:         rate.NewLimiter(limit, burst),
		throttleRetries: retries,
		log:             log.WithName("aws"),
		enableMetrics:   opts.EnableMetrics,
	}
}

// Region returns the region the client queries.
func (c *Client) Region() string {
	return c.region
}

// logTruncated notes a list call that still had pages after maxPages.
func (c *Client) logTruncated(operation string) {
	c.log.V(1).Info("pagination limit reached, results truncated",
		"operation", operation, "pages", maxPages)
}
