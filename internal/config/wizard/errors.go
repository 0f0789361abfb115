package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errProjectRequired      = errors.New("project name is required")
	errProjectInvalid       = errors.New("project name must start with a letter and contain at most 32 lowercase alphanumeric characters or hyphens")
	errConsumerCountInvalid = errors.New("consumer count must be a whole number of at least 1")
	errReplicasInvalid      = errors.New("replicas must be a whole number, 0 or more")
)
