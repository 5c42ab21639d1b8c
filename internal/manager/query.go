package manager

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/harrison/subtasks/internal/models"
)

// Filter selects subtasks in GetTasks. Unset fields match everything;
// set fields must all match.
type Filter struct {
	Stage    *models.EtlStage
	Entity   string // "" matches any entity
	System   *models.SystemType
	TaskKind *models.TaskKind
	IsCommon *bool
	// ExcludeCommon turns off the default union of every common subtask
	// into the result
	ExcludeCommon bool
}

// matches reports whether sub satisfies every set criterion of f
func (f Filter) matches(sub *models.Subtask) bool {
	if f.Stage != nil && (sub.Stage == nil || *sub.Stage != *f.Stage) {
		return false
	}
	if f.Entity != "" && sub.Entity != f.Entity {
		return false
	}
	if f.System != nil && (sub.System == nil || *sub.System != *f.System) {
		return false
	}
	if f.TaskKind != nil && (sub.TaskKind == nil || *sub.TaskKind != *f.TaskKind) {
		return false
	}
	if f.IsCommon != nil && sub.IsCommon != *f.IsCommon {
		return false
	}
	return true
}

// GetTasks returns the subtasks matching filter keyed by file stem. Unless
// filter.ExcludeCommon is set, every common subtask not already selected is
// added. Stems shared by several subtasks get "#2", "#3", ... appended in
// discovery order, so no subtask is dropped.
func (m *Manager) GetTasks(filter Filter) map[string]*models.Subtask {
	var selected []*models.Subtask
	seen := make(map[string]bool)

	for _, sub := range m.subtasks {
		if filter.matches(sub) {
			selected = append(selected, sub)
			seen[resolvePath(sub.Path)] = true
		}
	}

	if !filter.ExcludeCommon {
		for _, sub := range m.subtasks {
			if !sub.IsCommon {
				continue
			}
			resolved := resolvePath(sub.Path)
			if !seen[resolved] {
				selected = append(selected, sub)
				seen[resolved] = true
			}
		}
	}

	result := make(map[string]*models.Subtask, len(selected))
	for _, sub := range selected {
		result[uniqueKey(result, sub.Name)] = sub
	}
	return result
}

// uniqueKey returns base, or base#n with the first unused n >= 2
func uniqueKey(taken map[string]*models.Subtask, base string) string {
	if _, exists := taken[base]; !exists {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s#%d", base, n)
		if _, exists := taken[candidate]; !exists {
			return candidate
		}
	}
}

// resolvePath returns the absolute, symlink-free form of path when it can
// be computed, falling back to the cleaned absolute path
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// GetTask returns the first subtask, in discovery order, whose name matches
// and, when entity is not empty, whose entity matches. name may be the file
// stem ("get_customers") or the full file name ("get_customers.sql").
func (m *Manager) GetTask(name, entity string) (*models.Subtask, error) {
	for _, sub := range m.subtasks {
		if sub.Name != name && sub.FileName() != name {
			continue
		}
		if entity != "" && sub.Entity != entity {
			continue
		}
		return sub, nil
	}
	return nil, &NotFoundError{Name: name, Entity: entity}
}

// SortedKeys returns the keys of a GetTasks result in lexical order
func SortedKeys(tasks map[string]*models.Subtask) []string {
	keys := make([]string, 0, len(tasks))
	for k := range tasks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NotFoundError reports a GetTask lookup that matched no subtask.
type NotFoundError struct {
	Name   string
	Entity string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("Task with name '%s' and entity '%s' not found", e.Name, e.Entity)
	}
	return fmt.Sprintf("Task with name '%s' not found", e.Name)
}
