package handlers

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"github.com/imamik/rswatch/internal/config"
	"github.com/imamik/rswatch/internal/resource"
	rstesting "github.com/imamik/rswatch/internal/testing"
)

// captureOutput captures stdout during f.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// isolateEnv clears the environment overrides config.Load applies.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"PROJECT_NAME", "AWS_REGION", "CONSUMER_COUNT", "REPLICAS_PER_CONSUMER",
		"RSWATCH_LOCK_DIR", "RSWATCH_STUCK_THRESHOLD", "RSWATCH_ARCHIVE_BUCKET",
	} {
		t.Setenv(v, "")
	}
}

// writeConfigFile writes a config file into a temp dir and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rswatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// completeDeployment scripts a fully provisioned deployment with three
// consumers in three zones.
func completeDeployment() *rstesting.ScriptedQuerier {
	d := rstesting.NewDeployment("airline", 3)
	return rstesting.NewScriptedQuerier().
		Set(resource.FamilyNetwork, resource.Found(d.VPC())).
		Set(resource.FamilySubnets, resource.Found(d.Subnets()...)).
		Set(resource.FamilySecurityGroups, resource.Found(d.SecurityGroups()...)).
		Set(resource.FamilyNamespaces, resource.Found(d.Namespaces(resource.StatusAvailable)...)).
		Set(resource.FamilyWorkgroups, resource.Found(d.Workgroups(resource.StatusAvailable)...)).
		Set(resource.FamilyEndpoints, resource.Found(d.Endpoints(resource.StatusActive)...)).
		Set(resource.FamilyLoadBalancer, resource.Found(d.LoadBalancer("active"))).
		Set(resource.FamilyTargetGroups, resource.Found(d.TargetGroup())).
		Set(resource.FamilyTargetHealth, resource.Found(d.Targets(9, 0, 0)...))
}

// useQuerier replaces the AWS adapter factory for the duration of the test.
func useQuerier(t *testing.T, q resource.Querier) {
	t.Helper()
	orig := newQuerier
	t.Cleanup(func() { newQuerier = orig })
	newQuerier = func(context.Context, *config.Config, logr.Logger) (resource.Querier, error) {
		return q, nil
	}
}

// testOptions returns options that keep logs and the lock inside temp dirs.
func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	return Options{
		ConfigPath: writeConfigFile(t, "project: airline\nregion: us-west-2\n"),
		Consumers:  3,
		LockDir:    filepath.Join(dir, "lock"),
		LogFile:    filepath.Join(dir, "rswatch.log"),
	}
}
