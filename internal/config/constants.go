package config

import "time"

// Defaults applied when neither the file nor the environment set a value.
const (
	DefaultProject             = "airline"
	DefaultRegion              = "us-west-2"
	DefaultConsumerCount       = 3
	DefaultReplicasPerConsumer = 3
	DefaultLockDir             = "/tmp/redshift-consumer-lock.d/lock"
	DefaultFileName            = "rswatch.yaml"

	DefaultStuckThreshold = 10 * time.Minute

	DefaultArchivePrefix   = "rswatch"
	DefaultArchiveInterval = 5 * time.Second
)

// Reconciliation cadence defaults.
const (
	DefaultPollComplete     = 10 * time.Second
	DefaultPollTargets      = 1 * time.Second
	DefaultPollLoadBalancer = 1500 * time.Millisecond
	DefaultPollActive       = 2 * time.Second
	DefaultPollIdle         = 3 * time.Second
)

// Query timeout defaults.
const (
	DefaultTimeoutNetwork      = 10 * time.Second
	DefaultTimeoutClusters     = 5 * time.Second
	DefaultTimeoutEndpoints    = 5 * time.Second
	DefaultTimeoutLoadBalancer = 5 * time.Second
	DefaultTimeoutTargets      = 5 * time.Second
)

// DefaultTFVarsPaths are searched for a consumer_count assignment.
var DefaultTFVarsPaths = []string{
	"environments/dev/terraform.tfvars",
	"terraform.tfvars",
}
