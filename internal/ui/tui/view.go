package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/rswatch/internal/deploy"
	"github.com/imamik/rswatch/internal/lockfile"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderLock(&b, m.Snapshot.Lock)
	renderPhases(&b, m)

	if len(m.Snapshot.Issues) > 0 {
		renderIssues(&b, m)
	}
	if hasHistory(m.Snapshot) {
		renderPhaseHistory(&b, m)
	}

	renderFooter(&b, m)
	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("rswatch: %s", m.Project)
	if m.Region != "" {
		title += fmt.Sprintf(" (%s)", m.Region)
	}
	b.WriteString(titleStyle.Render(title))

	s := m.Snapshot
	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case s.TeardownDetected:
		status += failedStyle.Render("Teardown in progress")
	case s.DeploymentComplete:
		status += readyStyle.Render("Deployment complete")
	case len(s.Phases) == 0:
		status += dimStyle.Render("Waiting for first poll...")
	default:
		if active := activeNames(s); len(active) > 0 {
			status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render(strings.Join(active, ", "))
		} else {
			status += dimStyle.Render("Waiting: " + s.Active().Name)
		}
	}
	b.WriteString(status)
	b.WriteString("\n")

	fmt.Fprintf(b, "  %s\n", dimStyle.Render(fmt.Sprintf("target: %d consumers, %d healthy targets",
		s.Highlights.ConsumersExpected, s.Highlights.ExpectedTargets)))
}

func activeNames(s deploy.Snapshot) []string {
	var names []string
	for _, p := range s.Phases {
		if p.Status == deploy.StatusInProgress {
			names = append(names, p.Name)
		}
	}
	return names
}

func renderProgressBar(b *strings.Builder, m Model) {
	s := m.Snapshot
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = max(m.Width-30, 10)
	}
	filled := min(barWidth*s.Progress/100, barWidth)

	full := progressBarFull
	label := "Progress"
	if s.TeardownDetected {
		full = progressBarTeardown
		label = "Teardown"
	}

	bar := full.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	extra := ""
	switch {
	case s.Teardown != nil:
		extra = fmt.Sprintf(" %d/%d resources remaining", s.Teardown.Remaining, s.Teardown.Baseline)
	case m.EstimatedRemaining > 0:
		extra = fmt.Sprintf(" ETA %s", formatDuration(m.EstimatedRemaining))
		if m.PerformanceScale != 0 && m.PerformanceScale != 1.0 {
			extra += fmt.Sprintf("  speed x%.2f", m.PerformanceScale)
		}
	}

	fmt.Fprintf(b, "  %s %s %d%%%s\n", label, bar, s.Progress, extra)
}

func renderLock(b *strings.Builder, lock lockfile.Status) {
	switch lock.State {
	case lockfile.StateLocked:
		line := "LOCK: held by " + lock.Owner
		if lock.Workgroup != "" {
			line += fmt.Sprintf(" (creating %s)", lock.Workgroup)
		}
		fmt.Fprintf(b, "  %s\n", warningStyle.Render(line))
	case lockfile.StateAvailable:
		fmt.Fprintf(b, "  %s\n", readyStyle.Render("LOCK: available"))
	case lockfile.StateUnknown:
		fmt.Fprintf(b, "  %s\n", dimStyle.Render("LOCK: unknown"))
	}
}

func renderPhases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Deployment Phases"))
	b.WriteString("\n")

	for _, p := range m.Snapshot.Phases {
		icon, style := phaseIcon(p.Status, m.SpinnerFrame)
		detail := ""
		if p.Detail != "" {
			detail = dimStyle.Render(p.Detail)
		}
		fmt.Fprintf(b, "    %s %-24s %s\n", style(icon), style(p.Name), detail)
	}
}

func renderIssues(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Issues"))
	b.WriteString("\n")

	for _, issue := range m.Snapshot.Issues {
		icon, style := crossMark, sf(failedStyle)
		if issue.Severity == deploy.SeverityWarning {
			icon, style = warnMark, sf(warningStyle)
		}
		fmt.Fprintf(b, "    %s [%s] %s\n", style(icon), issue.Family, dimStyle.Render(issue.Message))
	}
}

func hasHistory(s deploy.Snapshot) bool {
	for _, p := range s.Phases {
		if !p.StartedAt.IsZero() {
			return true
		}
	}
	return false
}

func renderPhaseHistory(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Phase History"))
	b.WriteString("\n")

	now := m.clock()
	for _, p := range m.Snapshot.Phases {
		if p.StartedAt.IsZero() {
			continue
		}
		icon := checkMark
		style := readyStyle.Render
		var dur string
		if p.Status == deploy.StatusComplete {
			dur = formatDuration(p.CompletedAt.Sub(p.StartedAt))
		} else {
			icon = currentSpinner(m.SpinnerFrame)
			style = activeStyle.Render
			dur = formatDuration(now.Sub(p.StartedAt))
		}
		fmt.Fprintf(b, "    %s %-24s %s\n", style(icon), style(p.Name), dimStyle.Render(dur))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	now := m.clock()
	parts := []string{fmt.Sprintf("elapsed: %s", formatDuration(now.Sub(m.StartTime)))}
	if !m.Snapshot.LastPoll.IsZero() {
		parts = append(parts, fmt.Sprintf("last poll: %s ago", formatDuration(now.Sub(m.Snapshot.LastPoll))))
	}
	if m.Snapshot.Interval > 0 {
		parts = append(parts, fmt.Sprintf("every %s", m.Snapshot.Interval))
	}
	pulse := ""
	if !m.Done && !m.Snapshot.DeploymentComplete {
		pulse = "  |  " + currentSpinner(m.SpinnerFrame) + " monitoring"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  %s%s  |  q: quit", strings.Join(parts, "  |  "), pulse)))
	b.WriteString("\n")
}

// Helper functions

func phaseIcon(s deploy.Status, frame int) (string, styleFunc) {
	switch s {
	case deploy.StatusComplete:
		return checkMark, sf(readyStyle)
	case deploy.StatusInProgress:
		return currentSpinner(frame), sf(activeStyle)
	default:
		return pending, sf(dimStyle)
	}
}

func currentSpinner(frame int) string {
	if len(spinnerFrames) == 0 {
		return spinner
	}
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
