package wizard

import "github.com/charmbracelet/huh"

// RegionOption represents an AWS region offering Redshift Serverless.
type RegionOption struct {
	Value       string
	Description string
}

// Regions lists the regions offered by the wizard.
var Regions = []RegionOption{
	{Value: "us-west-2", Description: "US West (Oregon)"},
	{Value: "us-east-1", Description: "US East (N. Virginia)"},
	{Value: "us-east-2", Description: "US East (Ohio)"},
	{Value: "eu-west-1", Description: "Europe (Ireland)"},
	{Value: "eu-central-1", Description: "Europe (Frankfurt)"},
	{Value: "ap-southeast-2", Description: "Asia Pacific (Sydney)"},
	{Value: "ap-northeast-1", Description: "Asia Pacific (Tokyo)"},
}

// RegionsToOptions converts Regions to huh options.
func RegionsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Regions))
	for i, r := range Regions {
		opts[i] = huh.NewOption(r.Value+" - "+r.Description, r.Value)
	}
	return opts
}
