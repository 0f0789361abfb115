package deploy

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/imamik/rswatch/internal/resource"
)

// Severity grades an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a problem noticed in the observed resources.
type Issue struct {
	Severity Severity        `json:"severity"`
	Family   resource.Family `json:"family"`
	Name     string          `json:"name"`
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	Since    time.Time       `json:"since,omitzero"`
}

func (e *Engine) detectIssues(now time.Time) []Issue {
	var issues []Issue
	for _, family := range []resource.Family{resource.FamilyNamespaces, resource.FamilyWorkgroups, resource.FamilyEndpoints} {
		for _, r := range e.owned(family) {
			switch {
			case r.StatusIs(resource.StatusError, resource.StatusFailed):
				issues = append(issues, Issue{
					Severity: SeverityError,
					Family:   family,
					Name:     r.Name,
					Status:   r.Status,
					Message:  fmt.Sprintf("%s reported %s", r.Name, r.Status),
					Since:    r.Since,
				})
			case r.Transitional() && !r.Since.IsZero() && now.Sub(r.Since) > e.settings.StuckThreshold:
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Family:   family,
					Name:     r.Name,
					Status:   r.Status,
					Message:  fmt.Sprintf("%s in %s for %s", r.Name, r.Status, now.Sub(r.Since).Truncate(time.Second)),
					Since:    r.Since,
				})
			}
		}
	}

	slices.SortStableFunc(issues, func(a, b Issue) int {
		if a.Severity != b.Severity {
			if a.Severity == SeverityError {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if len(issues) > maxIssues {
		issues = issues[:maxIssues]
	}
	return issues
}
