package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/rswatch/internal/deploy"
	"github.com/imamik/rswatch/internal/lockfile"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testSnapshot builds a snapshot with the first `done` phases complete and
// the next one in progress.
func testSnapshot(done int) deploy.Snapshot {
	s := deploy.Snapshot{Project: "airline"}
	for i, def := range deploy.PhaseOrder {
		p := deploy.PhaseView{Key: def.Key, Name: def.Name}
		switch {
		case i < done:
			p.Status = deploy.StatusComplete
			p.StartedAt = testNow.Add(-time.Duration(20-i) * time.Minute)
			p.CompletedAt = p.StartedAt.Add(time.Minute)
		case i == done:
			p.Status = deploy.StatusInProgress
			p.StartedAt = testNow.Add(-30 * time.Second)
			s.ActiveIndex = i
		}
		s.Phases = append(s.Phases, p)
	}
	s.Progress = done * 100 / len(deploy.PhaseOrder)
	s.Highlights.ConsumersExpected = 3
	s.Highlights.ExpectedTargets = 9
	return s
}

func testModel(s deploy.Snapshot) Model {
	m := NewModel("airline", "us-west-2", func() deploy.Snapshot { return s })
	m.now = func() time.Time { return testNow }
	m.StartTime = testNow.Add(-5 * time.Minute)
	return m
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{-5 * time.Second, "0s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m30s"},
		{3600 * time.Second, "1h0m"},
		{3661 * time.Second, "1h1m"},
	}
	for _, tt := range tests {
		got := formatDuration(tt.d)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestCurrentSpinner(t *testing.T) {
	if currentSpinner(0) != spinnerFrames[0] {
		t.Errorf("frame 0 = %q, want %q", currentSpinner(0), spinnerFrames[0])
	}
	if currentSpinner(len(spinnerFrames)) != spinnerFrames[0] {
		t.Error("expected spinner to wrap around")
	}
	if currentSpinner(-1) != spinnerFrames[1] {
		t.Error("expected negative frames to be handled")
	}
}

func TestNewModelReadsSource(t *testing.T) {
	m := testModel(testSnapshot(4))
	if m.Snapshot.Progress != 40 {
		t.Errorf("expected initial snapshot from source, got progress %d", m.Snapshot.Progress)
	}
	if m.PerformanceScale != 1.0 {
		t.Errorf("expected neutral scale, got %v", m.PerformanceScale)
	}
}

func TestUpdateSnapshotMsg(t *testing.T) {
	m := testModel(testSnapshot(0))

	updated, cmd := m.Update(SnapshotMsg{Snapshot: testSnapshot(6)})
	got := updated.(Model)
	if got.Snapshot.Progress != 60 {
		t.Errorf("expected progress 60, got %d", got.Snapshot.Progress)
	}
	if cmd != nil {
		t.Error("expected no command for an incomplete deployment")
	}
	if got.EstimatedRemaining <= 0 {
		t.Error("expected a positive ETA while phases remain")
	}
}

func TestUpdateTickPullsSource(t *testing.T) {
	current := testSnapshot(2)
	m := NewModel("airline", "", func() deploy.Snapshot { return current })
	m.now = func() time.Time { return testNow }

	current = testSnapshot(7)
	updated, cmd := m.Update(TickMsg{})
	got := updated.(Model)
	if got.Snapshot.Progress != 70 {
		t.Errorf("expected tick to pull progress 70, got %d", got.Snapshot.Progress)
	}
	if got.SpinnerFrame != 1 {
		t.Errorf("expected spinner frame 1, got %d", got.SpinnerFrame)
	}
	if cmd == nil {
		t.Error("expected the next tick to be scheduled")
	}
}

func TestUpdateExitOnComplete(t *testing.T) {
	complete := testSnapshot(len(deploy.PhaseOrder))
	complete.DeploymentComplete = true

	m := testModel(testSnapshot(3))
	m.ExitOnComplete = true

	updated, cmd := m.Update(SnapshotMsg{Snapshot: complete})
	if !updated.(Model).Done {
		t.Error("expected model to be done")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
}

func TestUpdateCompleteWithoutExit(t *testing.T) {
	complete := testSnapshot(len(deploy.PhaseOrder))
	complete.DeploymentComplete = true

	m := testModel(testSnapshot(3))
	updated, cmd := m.Update(SnapshotMsg{Snapshot: complete})
	if updated.(Model).Done {
		t.Error("expected model to keep watching")
	}
	if cmd != nil {
		t.Error("expected no quit command")
	}
	if updated.(Model).EstimatedRemaining != 0 {
		t.Error("expected no ETA once complete")
	}
}

func TestUpdateKeysAndErrors(t *testing.T) {
	m := testModel(testSnapshot(1))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("expected q to quit")
	}

	updated, cmd := m.Update(ErrMsg{Err: errors.New("boom")})
	if updated.(Model).Err == nil || cmd == nil {
		t.Error("expected error to be stored and quit")
	}

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if updated.(Model).Width != 60 {
		t.Errorf("expected width 60, got %d", updated.(Model).Width)
	}
}

func TestRenderViewInProgress(t *testing.T) {
	m := testModel(testSnapshot(3))
	m.updateETA()
	out := renderView(m)

	for _, want := range []string{
		"rswatch: airline (us-west-2)",
		"Producer Workgroup",
		"Deployment Phases",
		"Phase History",
		"30%",
		"ETA",
		"target: 3 consumers, 9 healthy targets",
		"q: quit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestRenderViewComplete(t *testing.T) {
	s := testSnapshot(len(deploy.PhaseOrder))
	s.DeploymentComplete = true
	s.Progress = 100
	out := renderView(testModel(s))

	if !strings.Contains(out, "Deployment complete") {
		t.Error("expected completion banner")
	}
	if strings.Contains(out, "monitoring") {
		t.Error("expected no monitoring pulse once complete")
	}
}

func TestRenderViewTeardown(t *testing.T) {
	s := testSnapshot(len(deploy.PhaseOrder))
	s.TeardownDetected = true
	s.Progress = 53
	s.Teardown = &deploy.TeardownView{Baseline: 13, Remaining: 6}
	out := renderView(testModel(s))

	for _, want := range []string{"Teardown in progress", "Teardown", "6/13 resources remaining", "53%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestRenderLock(t *testing.T) {
	tests := []struct {
		name   string
		status lockfile.Status
		want   string
	}{
		{"held", lockfile.Status{State: lockfile.StateLocked, Owner: "ci-runner", Workgroup: "airline-consumer-2"},
			"LOCK: held by ci-runner (creating airline-consumer-2)"},
		{"available", lockfile.Status{State: lockfile.StateAvailable}, "LOCK: available"},
		{"unknown", lockfile.Status{State: lockfile.StateUnknown}, "LOCK: unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			renderLock(&b, tt.status)
			if !strings.Contains(b.String(), tt.want) {
				t.Errorf("renderLock() = %q, want %q", b.String(), tt.want)
			}
		})
	}
}

func TestRenderIssues(t *testing.T) {
	s := testSnapshot(5)
	s.Issues = []deploy.Issue{
		{Severity: deploy.SeverityError, Family: "workgroups", Name: "airline-consumer-1", Message: "airline-consumer-1 reported FAILED"},
		{Severity: deploy.SeverityWarning, Family: "endpoints", Name: "airline-consumer-2-endpoint", Message: "stuck in CREATING"},
	}
	out := renderView(testModel(s))

	if !strings.Contains(out, "Issues") {
		t.Error("expected issues section")
	}
	if !strings.Contains(out, "airline-consumer-1 reported FAILED") {
		t.Error("expected error issue message")
	}
	if !strings.Contains(out, "[endpoints]") {
		t.Error("expected issue family")
	}
}

func TestRenderFooter(t *testing.T) {
	s := testSnapshot(2)
	s.LastPoll = testNow.Add(-3 * time.Second)
	s.Interval = 2 * time.Second
	m := testModel(s)

	var b strings.Builder
	renderFooter(&b, m)
	out := b.String()

	for _, want := range []string{"elapsed: 5m0s", "last poll: 3s ago", "every 2s", "monitoring"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected footer to contain %q, got %q", want, out)
		}
	}
}

func TestRenderWaitingBeforeFirstPoll(t *testing.T) {
	m := testModel(deploy.Snapshot{})
	out := renderView(m)
	if !strings.Contains(out, "Waiting for first poll") {
		t.Error("expected waiting banner")
	}
}
