package aws

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/rswatch/internal/resource"
)

var (
	errMissingParent = errors.New("query requires a parent VPC id")
	errEmptyResponse = errors.New("empty response")
)

// nameFilters translates a resource filter into an EC2 tag:Name filter.
func nameFilters(f resource.Filter) []ec2types.Filter {
	switch f.Match {
	case resource.MatchExact:
		return []ec2types.Filter{{Name: aws.String("tag:Name"), Values: []string{f.Name}}}
	case resource.MatchContains:
		return []ec2types.Filter{{Name: aws.String("tag:Name"), Values: []string{"*" + f.Name + "*"}}}
	default:
		return nil
	}
}

func vpcFilter(vpcID string) []ec2types.Filter {
	return []ec2types.Filter{{Name: aws.String("vpc-id"), Values: []string{vpcID}}}
}

func tagValue(tags []ec2types.Tag, key string) string {
	for _, t := range tags {
		if aws.ToString(t.Key) == key {
			return aws.ToString(t.Value)
		}
	}
	return ""
}

func (c *Client) describeVpcs(ctx context.Context, f resource.Filter) ([]resource.Resource, error) {
	input := &ec2.DescribeVpcsInput{Filters: nameFilters(f)}

	var out []resource.Resource
	for range maxPages {
		var page *ec2.DescribeVpcsOutput
		err := c.call(ctx, "DescribeVpcs", func(ctx context.Context) error {
			var err error
			page, err = c.ec2.DescribeVpcs(ctx, input)
			return err
		})
		if err != nil {
			return nil, err
		}
		if page == nil {
			return nil, errEmptyResponse
		}

		for _, v := range page.Vpcs {
			out = append(out, resource.Resource{
				ID:     aws.ToString(v.VpcId),
				Name:   tagValue(v.Tags, "Name"),
				Status: string(v.State),
				Attributes: map[string]string{
					resource.AttrCIDR: aws.ToString(v.CidrBlock),
				},
			})
		}

		if aws.ToString(page.NextToken) == "" {
			return out, nil
		}
		input.NextToken = page.NextToken
	}
	c.logTruncated("DescribeVpcs")
	return out, nil
}

func (c *Client) describeSubnets(ctx context.Context, f resource.Filter) ([]resource.Resource, error) {
	if f.Parent == "" {
		return nil, errMissingParent
	}
	input := &ec2.DescribeSubnetsInput{Filters: vpcFilter(f.Parent)}

	var out []resource.Resource
	for range maxPages {
		var page *ec2.DescribeSubnetsOutput
		err := c.call(ctx, "DescribeSubnets", func(ctx context.Context) error {
			var err error
			page, err = c.ec2.DescribeSubnets(ctx, input)
			return err
		})
		if err != nil {
			return nil, err
		}
		if page == nil {
			return nil, errEmptyResponse
		}

		for _, s := range page.Subnets {
			out = append(out, resource.Resource{
				ID:     aws.ToString(s.SubnetId),
				Name:   tagValue(s.Tags, "Name"),
				Status: string(s.State),
				Attributes: map[string]string{
					resource.AttrCIDR:             aws.ToString(s.CidrBlock),
					resource.AttrAvailabilityZone: aws.ToString(s.AvailabilityZone),
					resource.AttrVPC:              aws.ToString(s.VpcId),
				},
			})
		}

		if aws.ToString(page.NextToken) == "" {
			return out, nil
		}
		input.NextToken = page.NextToken
	}
	c.logTruncated("DescribeSubnets")
	return out, nil
}

func (c *Client) describeSecurityGroups(ctx context.Context, f resource.Filter) ([]resource.Resource, error) {
	if f.Parent == "" {
		return nil, errMissingParent
	}
	input := &ec2.DescribeSecurityGroupsInput{Filters: vpcFilter(f.Parent)}

	var out []resource.Resource
	for range maxPages {
		var page *ec2.DescribeSecurityGroupsOutput
		err := c.call(ctx, "DescribeSecurityGroups", func(ctx context.Context) error {
			var err error
			page, err = c.ec2.DescribeSecurityGroups(ctx, input)
			return err
		})
		if err != nil {
			return nil, err
		}
		if page == nil {
			return nil, errEmptyResponse
		}

		for _, g := range page.SecurityGroups {
			out = append(out, resource.Resource{
				ID:     aws.ToString(g.GroupId),
				Name:   aws.ToString(g.GroupName),
				Status: resource.StatusAvailable,
				Attributes: map[string]string{
					resource.AttrGroupName:   aws.ToString(g.GroupName),
					resource.AttrDescription: aws.ToString(g.Description),
					resource.AttrVPC:         aws.ToString(g.VpcId),
				},
			})
		}

		if aws.ToString(page.NextToken) == "" {
			return out, nil
		}
		input.NextToken = page.NextToken
	}
	c.logTruncated("DescribeSecurityGroups")
	return out, nil
}
