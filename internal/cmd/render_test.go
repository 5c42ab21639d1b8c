package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWithParams(t *testing.T) {
	out, _, err := execute(t, "render", "get_customers", "--dir", newTaskTree(t),
		"--param", "schema=dwh", "--param", "run_id=r-42")
	require.NoError(t, err)
	assert.Equal(t, "select * from dwh.customers where run = 'r-42';", out)
}

func TestRenderGeneratesRunID(t *testing.T) {
	out, _, err := execute(t, "render", "get_customers", "--dir", newTaskTree(t), "-p", "schema=dwh")
	require.NoError(t, err)

	prefix := "select * from dwh.customers where run = '"
	require.True(t, strings.HasPrefix(out, prefix), out)
	runID := strings.TrimSuffix(strings.TrimPrefix(out, prefix), "';")
	_, err = uuid.Parse(runID)
	assert.NoError(t, err, "run_id should be a UUID, got %q", runID)
}

func TestRenderStyleFilter(t *testing.T) {
	out, _, err := execute(t, "render", "get_customers", "--dir", newTaskTree(t),
		"--param", "schema=dwh", "--param", "run_id=r-1", "--style", "curly")
	require.NoError(t, err)
	assert.Equal(t, "select * from {{schema}}.customers where run = 'r-1';", out)
}

func TestRenderDoubleUnderscoreCommon(t *testing.T) {
	out, _, err := execute(t, "render", "shared.yaml", "--dir", newTaskTree(t), "--param", "owner=etl")
	require.NoError(t, err)
	assert.Equal(t, "owner: etl\n", out)
}

func TestRenderConfigParams(t *testing.T) {
	base := newTaskTree(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, configPath, "params:\n  schema: staging\n  run_id: cfg\nparam_styles: [double_curly, curly, dollar]\n")

	out, _, err := execute(t, "render", "get_customers", "--dir", base, "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, "select * from staging.customers where run = 'cfg';", out)

	// flags override config values
	out, _, err = execute(t, "render", "load_orders", "--dir", base, "--config", configPath, "--param", "schema=dwh")
	require.NoError(t, err)
	assert.Equal(t, "insert into dwh.orders select 1;", out)
}

func TestRenderOutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "build", "get_customers.sql")

	out, stderr, err := execute(t, "render", "get_customers", "--dir", newTaskTree(t),
		"--param", "schema=dwh", "--param", "run_id=r-7", "--output", target)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "Rendered get_customers.sql to "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "select * from dwh.customers where run = 'r-7';", string(data))
}

func TestRenderErrors(t *testing.T) {
	base := newTaskTree(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "param without value", args: []string{"render", "sales", "--dir", base, "--param", "schema"}, wantErr: "expected key=value"},
		{name: "empty key", args: []string{"render", "sales", "--dir", base, "--param", "=x"}, wantErr: "expected key=value"},
		{name: "unknown style", args: []string{"render", "sales", "--dir", base, "--style", "square"}, wantErr: "invalid param_styles"},
		{name: "missing task", args: []string{"render", "nope", "--dir", base}, wantErr: "Task with name 'nope' not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseParams(t *testing.T) {
	values, err := parseParams([]string{"a=1", "b=x=y", " c =", "d= spaced "})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "x=y", "c": "", "d": " spaced "}, values)
}

func TestRenderWritesRunLog(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, configPath, "log_dir: "+logDir+"\nlog_level: debug\n")

	_, _, err := execute(t, "render", "sales", "--dir", newTaskTree(t), "--config", configPath)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(logDir, "latest.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "=== subtasks render ===")
	assert.Contains(t, string(data), "discovered 4 subtasks (1 common)")
	assert.Contains(t, string(data), "rendering ")
}
