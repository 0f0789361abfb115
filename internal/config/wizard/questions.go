package wizard

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// projectNameRegex matches names usable as a prefix of serverless workgroup
// names: lowercase alphanumeric with hyphens, starting with a letter.
var projectNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]{0,31}$`)

// runIdentityGroup prompts for the project name and region.
func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	result.Project = "airline"
	result.Region = "us-west-2"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Description("Prefix shared by every resource of the deployment").
				Placeholder("airline").
				Value(&result.Project).
				Validate(validateProject),
			huh.NewSelect[string]().
				Title("Region").
				Description("AWS region of the deployment").
				Options(RegionsToOptions()...).
				Value(&result.Region),
		).Title("Deployment Identity"),
	).RunWithContext(ctx)
}

// runTopologyGroup prompts for the consumer count and replicas.
func runTopologyGroup(ctx context.Context, result *WizardResult) error {
	consumers := "3"
	replicas := "0"

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Consumer Count").
				Description("Number of consumer workgroups behind the load balancer").
				Value(&consumers).
				Validate(validateConsumerCount),
			huh.NewInput().
				Title("Replicas per Consumer").
				Description("Load balancer targets per consumer. 0 derives it from the subnet availability zones.").
				Value(&replicas).
				Validate(validateReplicas),
		).Title("Topology"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.ConsumerCount, _ = strconv.Atoi(strings.TrimSpace(consumers))
	result.ReplicasPerConsumer, _ = strconv.Atoi(strings.TrimSpace(replicas))
	return nil
}

// runAccessGroup prompts for the optional AWS profile, metrics and archive.
func runAccessGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("AWS Profile (Optional)").
				Description("Shared config profile. Leave empty to use the default credential chain.").
				Value(&result.AWSProfile),
			huh.NewConfirm().
				Title("Enable Prometheus metrics?").
				Value(&result.EnableMetrics),
			huh.NewInput().
				Title("Snapshot Archive Bucket (Optional)").
				Description("S3 bucket that receives a JSON snapshot on every change. Leave empty to disable.").
				Value(&result.ArchiveBucket),
		).Title("Access"),
	).RunWithContext(ctx)
}

func validateProject(s string) error {
	if s == "" {
		return errProjectRequired
	}
	if !projectNameRegex.MatchString(s) {
		return errProjectInvalid
	}
	return nil
}

func validateConsumerCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errConsumerCountInvalid
	}
	return nil
}

func validateReplicas(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return errReplicasInvalid
	}
	return nil
}
