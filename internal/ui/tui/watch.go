package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// RunWatchTUI shows the dashboard until the user quits, ctx is cancelled or,
// with exitOnComplete, the deployment completes.
func RunWatchTUI(ctx context.Context, source SnapshotSource, project, region string, exitOnComplete bool) error {
	m := NewModel(project, region, source)
	m.ExitOnComplete = exitOnComplete

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	go func() {
		<-ctx.Done()
		p.Send(DoneMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if fm, ok := finalModel.(Model); ok && fm.Err != nil {
		return fm.Err
	}
	return nil
}
