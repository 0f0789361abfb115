package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"github.com/imamik/rswatch/internal/resource"
)

var errMissingTargetGroup = errors.New("query requires a parent target group ARN")

// namesFor returns the server-side name filter. The API only filters on
// exact names; other match modes list everything and filter locally.
func namesFor(f resource.Filter) []string {
	if f.Match == resource.MatchExact && f.Name != "" {
		return []string{f.Name}
	}
	return nil
}

func (c *Client) describeLoadBalancers(ctx context.Context, f resource.Filter) ([]resource.Resource, error) {
	input := &elbv2.DescribeLoadBalancersInput{Names: namesFor(f)}

	var out []resource.Resource
	for range maxPages {
		var page *elbv2.DescribeLoadBalancersOutput
		err := c.call(ctx, "DescribeLoadBalancers", func(ctx context.Context) error {
			var err error
			page, err = c.elb.DescribeLoadBalancers(ctx, input)
			return err
		})
		if err != nil {
			return nil, err
		}
		if page == nil {
			return nil, errEmptyResponse
		}

		for _, lb := range page.LoadBalancers {
			name := aws.ToString(lb.LoadBalancerName)
			if !f.Matches(name) {
				continue
			}
			attrs := map[string]string{
				resource.AttrARN:     aws.ToString(lb.LoadBalancerArn),
				resource.AttrDNSName: aws.ToString(lb.DNSName),
				resource.AttrType:    string(lb.Type),
				resource.AttrScheme:  string(lb.Scheme),
				resource.AttrVPC:     aws.ToString(lb.VpcId),
			}
			var status string
			if lb.State != nil {
				status = string(lb.State.Code)
				if reason := aws.ToString(lb.State.Reason); reason != "" {
					attrs[resource.AttrReason] = reason
				}
			}
			out = append(out, resource.Resource{
				Name:       name,
				Status:     status,
				CreatedAt:  toTime(lb.CreatedTime),
				Attributes: attrs,
			})
		}

		if aws.ToString(page.NextMarker) == "" {
			return out, nil
		}
		input.Marker = page.NextMarker
	}
	c.logTruncated("DescribeLoadBalancers")
	return out, nil
}

func (c *Client) describeTargetGroups(ctx context.Context, f resource.Filter) ([]resource.Resource, error) {
	input := &elbv2.DescribeTargetGroupsInput{Names: namesFor(f)}

	var out []resource.Resource
	for range maxPages {
		var page *elbv2.DescribeTargetGroupsOutput
		err := c.call(ctx, "DescribeTargetGroups", func(ctx context.Context) error {
			var err error
			page, err = c.elb.DescribeTargetGroups(ctx, input)
			return err
		})
		if err != nil {
			return nil, err
		}
		if page == nil {
			return nil, errEmptyResponse
		}

		for _, tg := range page.TargetGroups {
			name := aws.ToString(tg.TargetGroupName)
			if !f.Matches(name) {
				continue
			}
			out = append(out, resource.Resource{
				Name:   name,
				Status: resource.StatusActive,
				Attributes: map[string]string{
					resource.AttrARN:      aws.ToString(tg.TargetGroupArn),
					resource.AttrPort:     formatInt32(tg.Port),
					resource.AttrProtocol: string(tg.Protocol),
					resource.AttrType:     string(tg.TargetType),
					resource.AttrVPC:      aws.ToString(tg.VpcId),
				},
			})
		}

		if aws.ToString(page.NextMarker) == "" {
			return out, nil
		}
		input.Marker = page.NextMarker
	}
	c.logTruncated("DescribeTargetGroups")
	return out, nil
}

func (c *Client) describeTargetHealth(ctx context.Context, f resource.Filter) ([]resource.Resource, error) {
	if f.Parent == "" {
		return nil, errMissingTargetGroup
	}

	var page *elbv2.DescribeTargetHealthOutput
	err := c.call(ctx, "DescribeTargetHealth", func(ctx context.Context) error {
		var err error
		page, err = c.elb.DescribeTargetHealth(ctx, &elbv2.DescribeTargetHealthInput{
			TargetGroupArn: aws.String(f.Parent),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, errEmptyResponse
	}

	out := make([]resource.Resource, 0, len(page.TargetHealthDescriptions))
	for _, d := range page.TargetHealthDescriptions {
		out = append(out, targetResource(d))
	}
	return out, nil
}

func targetResource(d elbtypes.TargetHealthDescription) resource.Resource {
	var id, az, port string
	if d.Target != nil {
		id = aws.ToString(d.Target.Id)
		az = aws.ToString(d.Target.AvailabilityZone)
		port = formatInt32(d.Target.Port)
	}

	r := resource.Resource{
		ID:   fmt.Sprintf("%s:%s", id, port),
		Name: id,
		Attributes: map[string]string{
			resource.AttrAvailabilityZone: az,
			resource.AttrPort:             port,
		},
	}
	if d.TargetHealth != nil {
		r.Status = string(d.TargetHealth.State)
		if d.TargetHealth.Reason != "" {
			r.Attributes[resource.AttrReason] = string(d.TargetHealth.Reason)
		}
		if desc := aws.ToString(d.TargetHealth.Description); desc != "" {
			r.Attributes[resource.AttrDescription] = desc
		}
	}
	return r
}
