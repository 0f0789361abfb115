package server

import (
	"time"

	"github.com/imamik/rswatch/internal/deploy"
	"github.com/imamik/rswatch/internal/resource"
)

// ErrorResponse is returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// PhasesResponse is the body of GET /api/v1/phases.
type PhasesResponse struct {
	Project            string             `json:"project"`
	Progress           int                `json:"progress"`
	Active             deploy.PhaseKey    `json:"active,omitempty"`
	DeploymentComplete bool               `json:"deploymentComplete"`
	TeardownDetected   bool               `json:"teardownDetected"`
	Phases             []deploy.PhaseView `json:"phases"`
}

// ResourcesResponse is the body of GET /api/v1/resources/:family.
type ResourcesResponse struct {
	Family    resource.Family     `json:"family"`
	Count     int                 `json:"count"`
	Resources []resource.Resource `json:"resources"`
}

// HealthResponse is the body of the probe endpoints.
type HealthResponse struct {
	Status   string    `json:"status"`
	Cycles   int       `json:"cycles"`
	LastPoll time.Time `json:"lastPoll,omitzero"`
}
