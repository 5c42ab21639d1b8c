package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "subtasks")
	assert.Contains(t, out, "classifies each one by its folders")
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "subtasks", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"list", "show", "render", "validate", "aliases"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	cmd := NewRootCommand()
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
}

func TestVersionFlag(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, Version), out)
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "list", newTaskTree(t), "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log_level")
}

func TestDebugLogLevelLogsDiscovery(t *testing.T) {
	_, stderr, err := execute(t, "list", newTaskTree(t), "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[DEBUG]")
	assert.Contains(t, stderr, "get_customers.sql")
}
