package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "rswatch", cmd.Use)
	assert.Equal(t, "Watch a Redshift Serverless deployment converge", cmd.Short)
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	expectedSubcommands := []string{
		"watch",
		"status",
		"serve",
		"init",
		"version",
		"completion",
	}

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}

	for _, expected := range expectedSubcommands {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
	assert.Len(t, cmd.Commands(), len(expectedSubcommands))
}

func TestRoot_PersistentFlags(t *testing.T) {
	cmd := Root()

	for _, name := range []string{"config", "project", "region", "consumers", "replicas", "lock-dir", "verbose", "log-file", "archive-bucket"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing persistent flag %s", name)
	}

	assert.Equal(t, "c", cmd.PersistentFlags().Lookup("config").Shorthand)
	assert.Equal(t, "p", cmd.PersistentFlags().Lookup("project").Shorthand)
}

func TestSubcommandFlags(t *testing.T) {
	tests := []struct {
		cmd      string
		flag     string
		defValue string
	}{
		{"watch", "exit-on-complete", "false"},
		{"status", "output", "text"},
		{"serve", "addr", ":8080"},
		{"init", "output", "rswatch.yaml"},
		{"init", "full", "false"},
	}

	root := Root()
	for _, tt := range tests {
		t.Run(tt.cmd+"/"+tt.flag, func(t *testing.T) {
			sub, _, err := root.Find([]string{tt.cmd})
			require.NoError(t, err)

			f := sub.Flags().Lookup(tt.flag)
			require.NotNil(t, f)
			assert.Equal(t, tt.defValue, f.DefValue)
		})
	}
}

func TestStatus_RejectsUnknownOutput(t *testing.T) {
	root := Root()
	root.SetArgs([]string{"status", "--output", "xml"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
