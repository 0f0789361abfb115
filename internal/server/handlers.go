package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imamik/rswatch/internal/deploy"
	"github.com/imamik/rswatch/internal/resource"
)

// Source provides snapshots to the handlers.
type Source interface {
	Snapshot() deploy.Snapshot
	Ready() bool
}

// Handlers serves snapshot requests.
type Handlers struct {
	source Source
}

// NewHandlers creates handlers reading from source.
func NewHandlers(source Source) *Handlers {
	return &Handlers{source: source}
}

// HandleSnapshot returns the full snapshot.
func (h *Handlers) HandleSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.source.Snapshot())
}

// HandlePhases returns the phase list and progress.
func (h *Handlers) HandlePhases(c *gin.Context) {
	s := h.source.Snapshot()
	c.JSON(http.StatusOK, PhasesResponse{
		Project:            s.Project,
		Progress:           s.Progress,
		Active:             s.Active().Key,
		DeploymentComplete: s.DeploymentComplete,
		TeardownDetected:   s.TeardownDetected,
		Phases:             s.Phases,
	})
}

// HandleResources returns the cached records of one family.
func (h *Handlers) HandleResources(c *gin.Context) {
	family, ok := resource.ParseFamily(c.Param("family"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "unknown resource family: " + c.Param("family"),
			Code:  "UNKNOWN_FAMILY",
		})
		return
	}

	items := h.source.Snapshot().Resources[family]
	if items == nil {
		items = []resource.Resource{}
	}
	c.JSON(http.StatusOK, ResourcesResponse{
		Family:    family,
		Count:     len(items),
		Resources: items,
	})
}

// HandleHealth always reports ok while the process serves requests.
func (h *Handlers) HandleHealth(c *gin.Context) {
	s := h.source.Snapshot()
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Cycles: s.Cycles, LastPoll: s.LastPoll})
}

// HandleReady reports ready once a reconciliation cycle has completed.
func (h *Handlers) HandleReady(c *gin.Context) {
	s := h.source.Snapshot()
	if !h.source.Ready() {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "waiting for first poll"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ready", Cycles: s.Cycles, LastPoll: s.LastPoll})
}
