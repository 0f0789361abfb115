package wizard

import (
	"context"
	"fmt"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Deployment identity
	Project string
	Region  string

	// Topology
	ConsumerCount       int
	ReplicasPerConsumer int

	// Access (optional)
	AWSProfile string

	// Observability
	EnableMetrics bool
	ArchiveBucket string
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("deployment identity: %w", err)
	}

	if err := runTopologyGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("topology: %w", err)
	}

	if err := runAccessGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("access: %w", err)
	}

	return result, nil
}
