package resource

import (
	"maps"
	"strings"
	"time"
)

// Status values reported by the control plane. Comparisons are case-insensitive
// because the serverless API reports upper case and the load balancer API lower case.
const (
	StatusAvailable      = "AVAILABLE"
	StatusCreating       = "CREATING"
	StatusModifying      = "MODIFYING"
	StatusDeleting       = "DELETING"
	StatusDeleted        = "DELETED"
	StatusError          = "ERROR"
	StatusFailed         = "FAILED"
	StatusActive         = "ACTIVE"
	StatusProvisioning   = "PROVISIONING"
	StatusActiveImpaired = "ACTIVE_IMPAIRED"

	TargetHealthy     = "healthy"
	TargetInitial     = "initial"
	TargetUnhealthy   = "unhealthy"
	TargetUnused      = "unused"
	TargetDraining    = "draining"
	TargetUnavailable = "unavailable"
)

// Attribute keys shared between the adapter and the consumers of the cache.
const (
	AttrARN                = "arn"
	AttrCIDR               = "cidr"
	AttrVPC                = "vpc_id"
	AttrAvailabilityZone   = "availability_zone"
	AttrGroupName          = "group_name"
	AttrDescription        = "description"
	AttrNamespace          = "namespace"
	AttrWorkgroup          = "workgroup"
	AttrBaseCapacity       = "base_capacity"
	AttrMaxCapacity        = "max_capacity"
	AttrAddress            = "address"
	AttrPort               = "port"
	AttrDNSName            = "dns_name"
	AttrType               = "type"
	AttrScheme             = "scheme"
	AttrProtocol           = "protocol"
	AttrReason             = "reason"
	AttrPubliclyAccessible = "publicly_accessible"
	AttrEnhancedVPCRouting = "enhanced_vpc_routing"
	AttrDatabase           = "database"
)

// Resource is the last observed record of one cloud resource.
type Resource struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Status     string            `json:"status"`
	CreatedAt  time.Time         `json:"createdAt,omitzero"`
	ObservedAt time.Time         `json:"observedAt,omitzero"`
	Since      time.Time         `json:"since,omitzero"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Key returns the identifier the cache indexes the record by.
func (r Resource) Key() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Name
}

// Attr returns an attribute value, or "" when the platform did not report it.
func (r Resource) Attr(key string) string {
	return r.Attributes[key]
}

// StatusIs reports whether the status equals any of the given states.
func (r Resource) StatusIs(states ...string) bool {
	for _, s := range states {
		if strings.EqualFold(r.Status, s) {
			return true
		}
	}
	return false
}

// Transitional reports whether the resource is being created or modified.
func (r Resource) Transitional() bool {
	return r.StatusIs(StatusCreating, StatusModifying)
}

// Deleting reports whether the resource is being torn down.
func (r Resource) Deleting() bool {
	return r.StatusIs(StatusDeleting, StatusDeleted)
}

// Clone returns a deep copy.
func (r Resource) Clone() Resource {
	r.Attributes = maps.Clone(r.Attributes)
	return r
}
