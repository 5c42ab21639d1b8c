package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/subtasks/internal/models"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func sampleTasks() map[string]*models.Subtask {
	return map[string]*models.Subtask{
		"get_customers": {
			Name:     "get_customers",
			Path:     "/tasks/customers/01_extract/pg/get_customers.sql",
			Stage:    models.StageExtract.Ptr(),
			System:   models.SystemPostgreSQL.Ptr(),
			Entity:   "customers",
			TaskKind: models.TaskKindSql.Ptr(),
		},
		"shared": {
			Name:     "shared",
			Path:     "/tasks/shared.yaml",
			TaskKind: models.TaskKindYaml.Ptr(),
			IsCommon: true,
		},
	}
}

func TestSubtaskRows(t *testing.T) {
	rows := SubtaskRows("/tasks", sampleTasks())
	require.Len(t, rows, 2)

	assert.Equal(t, Row{
		Key:    "get_customers",
		Stage:  "extract",
		System: "postgres",
		Entity: "customers",
		Kind:   "sql",
		Path:   "customers/01_extract/pg/get_customers.sql",
	}, rows[0])

	assert.Equal(t, Row{
		Key:    "shared",
		Stage:  "-",
		System: "-",
		Entity: "(common)",
		Kind:   "yaml",
		Path:   "shared.yaml",
	}, rows[1])
}

func TestSubtaskRows_PathOutsideBase(t *testing.T) {
	rows := SubtaskRows("/elsewhere", sampleTasks())
	assert.Equal(t, "/tasks/shared.yaml", rows[1].Path)
}

func TestRenderTable(t *testing.T) {
	noColor(t)

	var buf bytes.Buffer
	RenderTable(&buf, SubtaskRows("/tasks", sampleTasks()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "NAME           STAGE    SYSTEM"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "get_customers  extract  postgres"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "shared         -        -"), lines[2])
	assert.Equal(t, "2 subtask(s)", lines[3])

	// every PATH cell starts in the same column
	col := strings.Index(lines[0], "PATH")
	assert.Equal(t, col, strings.Index(lines[1], "customers/01_extract"))
	assert.Equal(t, col, strings.Index(lines[2], "shared.yaml"))
}

func TestRenderTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, nil)
	assert.Equal(t, "No subtasks found\n", buf.String())
}
