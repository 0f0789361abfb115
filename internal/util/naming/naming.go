package naming

import (
	"fmt"
	"strings"
)

// Role classifies a warehouse cluster.
type Role string

// Cluster roles.
const (
	RoleProducer Role = "producer"
	RoleConsumer Role = "consumer"
)

func LoadBalancer(project string) string {
	return fmt.Sprintf("%s-redshift-nlb", project)
}

func TargetGroup(project string) string {
	return fmt.Sprintf("%s-redshift-tg", project)
}

func Producer(project string) string {
	return fmt.Sprintf("%s-producer", project)
}

func Consumer(project string, index int) string {
	return fmt.Sprintf("%s-consumer-%d", project, index)
}

// ConsumerPrefix is the common prefix of every consumer namespace and workgroup.
func ConsumerPrefix(project string) string {
	return fmt.Sprintf("%s-consumer", project)
}

// NetworkTagPattern is the tag:Name filter value used to find the project VPC.
func NetworkTagPattern(project string) string {
	return fmt.Sprintf("*%s*", project)
}

// Owned reports whether a resource name belongs to the project.
func Owned(project, name string) bool {
	return project != "" && strings.Contains(name, project)
}

// Classify returns the role of a namespace or workgroup by name.
func Classify(name string) Role {
	if strings.Contains(strings.ToLower(name), string(RoleProducer)) {
		return RoleProducer
	}
	return RoleConsumer
}
