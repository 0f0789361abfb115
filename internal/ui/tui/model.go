package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/rswatch/internal/deploy"
	"github.com/imamik/rswatch/internal/ui/benchmarks"
)

// refreshInterval is how often the dashboard polls the snapshot source.
const refreshInterval = 100 * time.Millisecond

// SnapshotSource returns the current published snapshot.
type SnapshotSource func() deploy.Snapshot

// Model is the Bubble Tea model for the deployment dashboard.
type Model struct {
	Project string
	Region  string

	Snapshot deploy.Snapshot
	source   SnapshotSource

	// ETA
	EstimatedRemaining time.Duration
	PerformanceScale   float64
	StartTime          time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool

	// ExitOnComplete quits once the deployment is complete.
	ExitOnComplete bool

	now func() time.Time
}

// NewModel creates a dashboard model reading from source.
func NewModel(project, region string, source SnapshotSource) Model {
	m := Model{
		Project:          project,
		Region:           region,
		source:           source,
		StartTime:        time.Now(),
		PerformanceScale: 1.0,
		now:              time.Now,
	}
	if source != nil {
		m.Snapshot = source()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case SnapshotMsg:
		if m.applySnapshot(msg.Snapshot) {
			return m, tea.Quit
		}

	case TickMsg:
		m.SpinnerFrame++
		if m.source != nil && m.applySnapshot(m.source()) {
			return m, tea.Quit
		}
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// applySnapshot stores s and reports whether the dashboard should exit.
func (m *Model) applySnapshot(s deploy.Snapshot) bool {
	m.Snapshot = s
	m.updateETA()
	if m.ExitOnComplete && s.DeploymentComplete {
		m.Done = true
		return true
	}
	return false
}

func (m *Model) updateETA() {
	s := m.Snapshot
	if s.DeploymentComplete || s.TeardownDetected || len(s.Phases) == 0 {
		m.EstimatedRemaining = 0
		return
	}

	now := m.clock()
	active := s.Active().Key
	m.PerformanceScale = benchmarks.PerformanceScale(s.Phases, active, now)
	m.EstimatedRemaining = benchmarks.EstimateRemainingWithScale(s.Phases, active, now, m.PerformanceScale)
}

func (m Model) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
