package testing

import (
	"fmt"

	"github.com/imamik/rswatch/internal/resource"
	"github.com/imamik/rswatch/internal/util/naming"
)

// Deployment builds resource records for a project at any provisioning stage.
type Deployment struct {
	Project   string
	Consumers int
	Zones     []string
}

// NewDeployment creates a fixture spread over three availability zones.
func NewDeployment(project string, consumers int) *Deployment {
	return &Deployment{
		Project:   project,
		Consumers: consumers,
		Zones:     []string{"us-west-2a", "us-west-2b", "us-west-2c"},
	}
}

// VPC returns the project network.
func (d *Deployment) VPC() resource.Resource {
	return resource.Resource{
		ID:         "vpc-0a1b2c3d",
		Name:       d.Project + "-vpc",
		Status:     "available",
		Attributes: map[string]string{resource.AttrCIDR: "10.0.0.0/16"},
	}
}

// Subnets returns one subnet per zone.
func (d *Deployment) Subnets() []resource.Resource {
	out := make([]resource.Resource, 0, len(d.Zones))
	for i, az := range d.Zones {
		out = append(out, resource.Resource{
			ID:     fmt.Sprintf("subnet-%02d", i),
			Name:   fmt.Sprintf("%s-private-%s", d.Project, az),
			Status: "available",
			Attributes: map[string]string{
				resource.AttrCIDR:             fmt.Sprintf("10.0.%d.0/24", i),
				resource.AttrAvailabilityZone: az,
			},
		})
	}
	return out
}

// SecurityGroups returns the project security group.
func (d *Deployment) SecurityGroups() []resource.Resource {
	return []resource.Resource{{
		ID:         "sg-0123",
		Name:       d.Project + "-redshift-sg",
		Status:     resource.StatusAvailable,
		Attributes: map[string]string{resource.AttrGroupName: d.Project + "-redshift-sg"},
	}}
}

// Producer returns the producer workgroup in the given state.
func (d *Deployment) Producer(status string) resource.Resource {
	name := naming.Producer(d.Project)
	return resource.Resource{
		Name:       name,
		Status:     status,
		Attributes: map[string]string{resource.AttrNamespace: name},
	}
}

// Consumer returns consumer workgroup i (1-based) in the given state.
func (d *Deployment) Consumer(i int, status string) resource.Resource {
	name := naming.Consumer(d.Project, i)
	return resource.Resource{
		Name:       name,
		Status:     status,
		Attributes: map[string]string{resource.AttrNamespace: name},
	}
}

// Workgroups returns the producer and every consumer in the same state.
func (d *Deployment) Workgroups(status string) []resource.Resource {
	out := []resource.Resource{d.Producer(status)}
	for i := 1; i <= d.Consumers; i++ {
		out = append(out, d.Consumer(i, status))
	}
	return out
}

// Namespaces returns the namespaces matching Workgroups.
func (d *Deployment) Namespaces(status string) []resource.Resource {
	out := []resource.Resource{{Name: naming.Producer(d.Project), Status: status}}
	for i := 1; i <= d.Consumers; i++ {
		out = append(out, resource.Resource{Name: naming.Consumer(d.Project, i), Status: status})
	}
	return out
}

// Endpoints returns one endpoint per consumer in the given state.
func (d *Deployment) Endpoints(status string) []resource.Resource {
	out := make([]resource.Resource, 0, d.Consumers)
	for i := 1; i <= d.Consumers; i++ {
		wg := naming.Consumer(d.Project, i)
		out = append(out, resource.Resource{
			Name:       wg + "-endpoint",
			Status:     status,
			Attributes: map[string]string{resource.AttrWorkgroup: wg},
		})
	}
	return out
}

// LoadBalancer returns the load balancer in the given state.
func (d *Deployment) LoadBalancer(state string) resource.Resource {
	return resource.Resource{
		Name:   naming.LoadBalancer(d.Project),
		Status: state,
		Attributes: map[string]string{
			resource.AttrARN:     "arn:aws:elasticloadbalancing:us-west-2:123456789012:loadbalancer/net/" + naming.LoadBalancer(d.Project) + "/abc",
			resource.AttrDNSName: naming.LoadBalancer(d.Project) + ".elb.us-west-2.amazonaws.com",
		},
	}
}

// TargetGroup returns the target group.
func (d *Deployment) TargetGroup() resource.Resource {
	return resource.Resource{
		Name:   naming.TargetGroup(d.Project),
		Status: resource.StatusActive,
		Attributes: map[string]string{
			resource.AttrARN:  TargetGroupARN,
			resource.AttrPort: "5439",
		},
	}
}

// TargetGroupARN is the ARN of the fixture target group.
const TargetGroupARN = "arn:aws:elasticloadbalancing:us-west-2:123456789012:targetgroup/redshift-tg/def"

// Targets returns registered targets in the given health states, in order.
func (d *Deployment) Targets(healthy, initial, unhealthy int) []resource.Resource {
	var out []resource.Resource
	add := func(n int, state string) {
		for range n {
			i := len(out)
			ip := fmt.Sprintf("10.0.%d.%d", i%3, 10+i)
			out = append(out, resource.Resource{
				ID:     ip + ":5439",
				Name:   ip,
				Status: state,
				Attributes: map[string]string{
					resource.AttrAvailabilityZone: d.Zones[i%len(d.Zones)],
					resource.AttrPort:             "5439",
				},
			})
		}
	}
	add(healthy, resource.TargetHealthy)
	add(initial, resource.TargetInitial)
	add(unhealthy, resource.TargetUnhealthy)
	return out
}
