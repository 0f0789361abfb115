package aws

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/redshiftserverless"

	"github.com/imamik/rswatch/internal/resource"
)

func formatInt32(v *int32) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(int64(*v), 10)
}

func formatBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

func toTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}

func (c *Client) listNamespaces(ctx context.Context, f resource.Filter) ([]resource.Resource, error) {
	input := &redshiftserverless.ListNamespacesInput{}

	var out []resource.Resource
	for range maxPages {
		var page *redshiftserverless.ListNamespacesOutput
		err := c.call(ctx, "ListNamespaces", func(ctx context.Context) error {
			var err error
			page, err = c.serverless.ListNamespaces(ctx, input)
			return err
		})
		if err != nil {
			return nil, err
		}
		if page == nil {
			return nil, errEmptyResponse
		}

		for _, ns := range page.Namespaces {
			name := aws.ToString(ns.NamespaceName)
			if !f.Matches(name) {
				continue
			}
			out = append(out, resource.Resource{
				Name:      name,
				Status:    string(ns.Status),
				CreatedAt: toTime(ns.CreationDate),
				Attributes: map[string]string{
					resource.AttrARN:      aws.ToString(ns.NamespaceArn),
					resource.AttrDatabase: aws.ToString(ns.DbName),
				},
			})
		}

		if aws.ToString(page.NextToken) == "" {
			return out, nil
		}
		input.NextToken = page.NextToken
	}
	c.logTruncated("ListNamespaces")
	return out, nil
}

func (c *Client) listWorkgroups(ctx context.Context, f resource.Filter) ([]resource.Resource, error) {
	input := &redshiftserverless.ListWorkgroupsInput{}

	var out []resource.Resource
	for range maxPages {
		var page *redshiftserverless.ListWorkgroupsOutput
		err := c.call(ctx, "ListWorkgroups", func(ctx context.Context) error {
			var err error
			page, err = c.serverless.ListWorkgroups(ctx, input)
			return err
		})
		if err != nil {
			return nil, err
		}
		if page == nil {
			return nil, errEmptyResponse
		}

		for _, wg := range page.Workgroups {
			name := aws.ToString(wg.WorkgroupName)
			if !f.Matches(name) {
				continue
			}
			attrs := map[string]string{
				resource.AttrARN:                aws.ToString(wg.WorkgroupArn),
				resource.AttrNamespace:          aws.ToString(wg.NamespaceName),
				resource.AttrBaseCapacity:       formatInt32(wg.BaseCapacity),
				resource.AttrMaxCapacity:        formatInt32(wg.MaxCapacity),
				resource.AttrPubliclyAccessible: formatBool(wg.PubliclyAccessible),
				resource.AttrEnhancedVPCRouting: formatBool(wg.EnhancedVpcRouting),
			}
			if wg.Endpoint != nil {
				attrs[resource.AttrAddress] = aws.ToString(wg.Endpoint.Address)
				attrs[resource.AttrPort] = formatInt32(wg.Endpoint.Port)
			}
			out = append(out, resource.Resource{
				Name:       name,
				Status:     string(wg.Status),
				CreatedAt:  toTime(wg.CreationDate),
				Attributes: attrs,
			})
		}

		if aws.ToString(page.NextToken) == "" {
			return out, nil
		}
		input.NextToken = page.NextToken
	}
	c.logTruncated("ListWorkgroups")
	return out, nil
}

func (c *Client) listEndpoints(ctx context.Context, f resource.Filter) ([]resource.Resource, error) {
	input := &redshiftserverless.ListEndpointAccessInput{}

	var out []resource.Resource
	for range maxPages {
		var page *redshiftserverless.ListEndpointAccessOutput
		err := c.call(ctx, "ListEndpointAccess", func(ctx context.Context) error {
			var err error
			page, err = c.serverless.ListEndpointAccess(ctx, input)
			return err
		})
		if err != nil {
			return nil, err
		}
		if page == nil {
			return nil, errEmptyResponse
		}

		for _, ep := range page.Endpoints {
			name := aws.ToString(ep.EndpointName)
			if !f.Matches(name) {
				continue
			}
			out = append(out, resource.Resource{
				Name:      name,
				Status:    aws.ToString(ep.EndpointStatus),
				CreatedAt: toTime(ep.EndpointCreateTime),
				Attributes: map[string]string{
					resource.AttrARN:       aws.ToString(ep.EndpointArn),
					resource.AttrWorkgroup: aws.ToString(ep.WorkgroupName),
					resource.AttrAddress:   aws.ToString(ep.Address),
					resource.AttrPort:      formatInt32(ep.Port),
				},
			})
		}

		if aws.ToString(page.NextToken) == "" {
			return out, nil
		}
		input.NextToken = page.NextToken
	}
	c.logTruncated("ListEndpointAccess")
	return out, nil
}
