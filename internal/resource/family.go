package resource

// Family identifies a group of resources fetched by one control-plane call.
type Family string

// Resource families in dependency order.
const (
	FamilyNetwork        Family = "network"
	FamilySubnets        Family = "subnets"
	FamilySecurityGroups Family = "security-groups"
	FamilyNamespaces     Family = "namespaces"
	FamilyWorkgroups     Family = "workgroups"
	FamilyEndpoints      Family = "endpoints"
	FamilyLoadBalancer   Family = "load-balancer"
	FamilyTargetGroups   Family = "target-groups"
	FamilyTargetHealth   Family = "target-health"
)

// Families lists every family in the order the reconciler polls them.
var Families = []Family{
	FamilyNetwork,
	FamilySubnets,
	FamilySecurityGroups,
	FamilyNamespaces,
	FamilyWorkgroups,
	FamilyEndpoints,
	FamilyLoadBalancer,
	FamilyTargetGroups,
	FamilyTargetHealth,
}

// ParseFamily returns the family with the given name.
func ParseFamily(name string) (Family, bool) {
	for _, f := range Families {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// IsCluster reports whether the family holds compute cluster resources
// (serverless namespaces and workgroups).
func (f Family) IsCluster() bool {
	return f == FamilyNamespaces || f == FamilyWorkgroups
}
