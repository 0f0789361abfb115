package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/imamik/rswatch/internal/deploy"
	"github.com/imamik/rswatch/internal/lockfile"
)

// Output formats of the status command.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Status runs one reconciliation cycle and prints the snapshot.
func Status(ctx context.Context, opts Options, output string) error {
	switch output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unsupported output format %q (want text, json or yaml)", output)
	}

	log, flush, err := newLogger(opts.Verbose, opts.LogFile, output != OutputText)
	if err != nil {
		return err
	}
	defer flush()

	s, err := newSession(ctx, opts, log, sessionOptions{})
	if err != nil {
		return err
	}

	s.reconciler.RunOnce(ctx)
	return printStatus(s.reconciler.Snapshot(), s.cfg.Region, output)
}

func printStatus(snap deploy.Snapshot, region, output string) error {
	switch output {
	case OutputJSON:
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	case OutputYAML:
		data, err := yaml.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		fmt.Print(string(data))
	default:
		printText(snap, region)
	}
	return nil
}

func printText(snap deploy.Snapshot, region string) {
	printHeader(snap.Project, region)

	for _, p := range snap.Phases {
		printPhaseRow(p)
	}
	fmt.Println()

	switch {
	case snap.Teardown != nil:
		fmt.Printf("  Teardown: %d%% (%d/%d resources remaining)\n",
			snap.Progress, snap.Teardown.Remaining, snap.Teardown.Baseline)
	case snap.DeploymentComplete:
		fmt.Printf("  Progress: %d%% (deployment complete)\n", snap.Progress)
	default:
		fmt.Printf("  Progress: %d%% (%d/%d phases, active: %s)\n",
			snap.Progress, snap.Completed(), len(snap.Phases), snap.Active().Name)
	}
	fmt.Printf("  Lock:     %s\n", lockLine(snap.Lock))

	if h := snap.Highlights; h.LoadBalancerDNS != "" {
		fmt.Printf("  Endpoint: %s\n", h.LoadBalancerDNS)
	}

	if len(snap.Issues) > 0 {
		fmt.Println()
		fmt.Println("  Issues:")
		for _, issue := range snap.Issues {
			fmt.Printf("  %s  [%s] %s\n", issueIndicator(issue.Severity), issue.Family, issue.Message)
		}
	}
}

func printHeader(project, region string) {
	title := fmt.Sprintf("rswatch deployment: %s", project)
	if region != "" {
		title += fmt.Sprintf(" (%s)", region)
	}
	fmt.Printf("  %s\n", title)
	fmt.Println("  " + strings.Repeat("═", len(title)))
	fmt.Println()
}

func printPhaseRow(p deploy.PhaseView) {
	if p.Detail != "" {
		fmt.Printf("  %s  %-24s %s\n", phaseIndicator(p.Status), p.Name, p.Detail)
	} else {
		fmt.Printf("  %s  %s\n", phaseIndicator(p.Status), p.Name)
	}
}

func phaseIndicator(s deploy.Status) string {
	switch s {
	case deploy.StatusComplete:
		return "✅" // green check
	case deploy.StatusInProgress:
		return "⏳" // hourglass
	default:
		return "⬜" // white square
	}
}

func issueIndicator(s deploy.Severity) string {
	if s == deploy.SeverityError {
		return "❌" // red X
	}
	return "⚠️" // warning
}

func lockLine(l lockfile.Status) string {
	switch l.State {
	case lockfile.StateLocked:
		line := "held by " + l.Owner
		if l.Workgroup != "" {
			line += fmt.Sprintf(" (creating %s)", l.Workgroup)
		}
		return line
	case lockfile.StateAvailable:
		return "available"
	default:
		return "unknown"
	}
}
