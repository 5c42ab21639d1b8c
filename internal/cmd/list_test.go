package cmd

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/harrison/subtasks/internal/models"
)

func TestListTable(t *testing.T) {
	base := newTaskTree(t)

	out, _, err := execute(t, "list", base)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "get_customers "))
	assert.True(t, strings.HasPrefix(lines[2], "load_orders "))
	assert.True(t, strings.HasPrefix(lines[3], "sales "))
	assert.True(t, strings.HasPrefix(lines[4], "shared "))
	assert.Equal(t, "4 subtask(s)", lines[5])
}

func TestListJSONWithFilters(t *testing.T) {
	base := newTaskTree(t)

	out, _, err := execute(t, "list", base, "--system", "postgres", "--no-common", "--format", "json")
	require.NoError(t, err)

	var entries []listEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "get_customers", entries[0].Key)
	assert.Equal(t, models.StageExtract, *entries[0].Stage)
	assert.Equal(t, "load_orders", entries[1].Key)
	assert.Equal(t, "orders", entries[1].Entity)
	assert.Equal(t, filepath.Join(base, "orders", "03_load", "pg", "load_orders.sql"), entries[1].Path)
}

func TestListYAMLUsesCanonicalNames(t *testing.T) {
	base := newTaskTree(t)

	out, _, err := execute(t, "list", base, "--stage", "t", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "stage: transform")
	assert.Contains(t, out, "system: duckdb")
	assert.Contains(t, out, "task_kind: python")

	var entries []listEntry
	require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "sales", entries[0].Key)
	assert.Equal(t, "shared", entries[1].Key)
	assert.True(t, entries[1].IsCommon)
}

func TestListCommonOnly(t *testing.T) {
	out, _, err := execute(t, "list", newTaskTree(t), "--common", "--format", "json")
	require.NoError(t, err)

	var entries []listEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "shared", entries[0].Key)
}

func TestListEntryAndKind(t *testing.T) {
	out, _, err := execute(t, "list", newTaskTree(t), "--entity", "customers", "--kind", "sql", "--no-common", "--format", "json")
	require.NoError(t, err)

	var entries []listEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "get_customers", entries[0].Key)
}

func TestListErrors(t *testing.T) {
	base := newTaskTree(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown stage", args: []string{"list", base, "--stage", "nope"}, wantErr: "Unknown ETL stage alias: nope"},
		{name: "unknown system", args: []string{"list", base, "--system", "db2"}, wantErr: "Unknown system type alias: db2"},
		{name: "unknown kind", args: []string{"list", base, "--kind", "rb"}, wantErr: "Unknown task kind alias: rb"},
		{name: "conflicting common flags", args: []string{"list", base, "--common", "--no-common"}, wantErr: "cannot use both"},
		{name: "bad format", args: []string{"list", base, "--format", "xml"}, wantErr: "invalid --format"},
		{name: "missing dir", args: []string{"list", filepath.Join(base, "nope")}, wantErr: "failed to load subtasks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestListClassificationFailure(t *testing.T) {
	base := newTaskTree(t)
	writeFile(t, filepath.Join(base, "a", "b", "c", "d", "deep.sql"), "select 1;")

	_, _, err := execute(t, "list", base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect folder structure")

	// excluded directories are not classified
	_, _, err = execute(t, "list", base, "--exclude", "a")
	assert.NoError(t, err)
}
