package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/imamik/rswatch/internal/config"
)

// confirmOverwrite is replaced in tests.
var confirmOverwrite = promptOverwrite

// minimalConfig holds the values a user is expected to change.
type minimalConfig struct {
	Project             string          `yaml:"project"`
	Region              string          `yaml:"region"`
	ConsumerCount       int             `yaml:"consumer_count,omitempty"`
	ReplicasPerConsumer int             `yaml:"replicas_per_consumer,omitempty"`
	AWSProfile          string          `yaml:"aws_profile,omitempty"`
	Metrics             bool            `yaml:"metrics,omitempty"`
	Archive             *minimalArchive `yaml:"archive,omitempty"`
}

type minimalArchive struct {
	Bucket string `yaml:"bucket"`
}

func minimal(cfg *config.Config) *minimalConfig {
	m := &minimalConfig{
		Project:             cfg.Project,
		Region:              cfg.Region,
		ConsumerCount:       cfg.ConsumerCount,
		ReplicasPerConsumer: cfg.ReplicasPerConsumer,
		AWSProfile:          cfg.AWSProfile,
		Metrics:             cfg.Metrics,
	}
	if cfg.Archive.Enabled() {
		m.Archive = &minimalArchive{Bucket: cfg.Archive.Bucket}
	}
	return m
}

// Render returns the YAML document for cfg, headed by a comment block. The
// minimal form omits everything that has a default.
func Render(cfg *config.Config, outputPath string, full bool) ([]byte, error) {
	var doc any = minimal(cfg)
	if full {
		doc = cfg
	}
	body, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	mode := "minimal (rswatch init --full lists every option)"
	if full {
		mode = "full"
	}
	header := []string{
		"# rswatch configuration",
		"# Generated by: rswatch init",
		"# Generated at: " + time.Now().Format(time.RFC3339),
		"# Output mode: " + mode,
		"#",
		"# AWS credentials come from the default chain (AWS_PROFILE, AWS_ACCESS_KEY_ID, ...).",
		"#",
		"# Usage:",
		"#   rswatch watch -c " + outputPath,
	}
	return []byte(strings.Join(header, "\n") + "\n\n" + string(body)), nil
}

// WriteConfig renders cfg and replaces outputPath with it. The file is
// written next to the target first so readers never see a partial file.
func WriteConfig(cfg *config.Config, outputPath string, full bool) error {
	data, err := Render(cfg, outputPath, full)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".rswatch-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfirmOverwrite asks whether an existing file may be replaced.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

func promptOverwrite(path string) (bool, error) {
	overwrite := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
		Affirmative("Overwrite").
		Negative("Keep").
		Value(&overwrite).
		Run()
	return overwrite, err
}
