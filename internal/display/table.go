package display

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/subtasks/internal/models"
)

// Row is one subtask line of the list table
type Row struct {
	Key    string
	Stage  string
	System string
	Entity string
	Kind   string
	Path   string
}

var tableHeader = Row{Key: "NAME", Stage: "STAGE", System: "SYSTEM", Entity: "ENTITY", Kind: "KIND", Path: "PATH"}

// SubtaskRows converts a keyed subtask set into table rows sorted by key.
// Paths are shown relative to basePath when possible.
func SubtaskRows(basePath string, tasks map[string]*models.Subtask) []Row {
	keys := make([]string, 0, len(tasks))
	for k := range tasks {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]Row, 0, len(keys))
	for _, key := range keys {
		sub := tasks[key]
		row := Row{
			Key:    key,
			Stage:  "-",
			System: "-",
			Entity: "-",
			Kind:   "-",
			Path:   sub.Path,
		}
		if sub.Stage != nil {
			row.Stage = sub.Stage.Name()
		}
		if sub.System != nil {
			row.System = sub.System.Name()
		}
		if sub.Entity != "" {
			row.Entity = sub.Entity
		}
		if sub.IsCommon {
			row.Entity = "(common)"
		}
		if sub.TaskKind != nil {
			row.Kind = sub.TaskKind.Name()
		}
		if rel, err := filepath.Rel(basePath, sub.Path); err == nil && !strings.HasPrefix(rel, "..") {
			row.Path = rel
		}
		rows = append(rows, row)
	}
	return rows
}

func (r Row) cells() []string {
	return []string{r.Key, r.Stage, r.System, r.Entity, r.Kind, r.Path}
}

// RenderTable writes rows as aligned columns under a bold header
func RenderTable(w io.Writer, rows []Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No subtasks found")
		return
	}

	widths := make([]int, len(tableHeader.cells()))
	for _, r := range append([]Row{tableHeader}, rows...) {
		for i, cell := range r.cells() {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Fprintln(w, formatCells(tableHeader.cells(), widths))
	for _, r := range rows {
		fmt.Fprintln(w, formatCells(r.cells(), widths))
	}

	color.New(color.Faint).Fprintf(w, "%d subtask(s)\n", len(rows))
}

// formatCells pads every cell but the last to its column width
func formatCells(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if i == len(cells)-1 {
			b.WriteString(cell)
			break
		}
		b.WriteString(fmt.Sprintf("%-*s  ", widths[i], cell))
	}
	return b.String()
}
