package models

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/harrison/subtasks/internal/params"
)

// Subtask is a single task-definition file discovered under a base directory.
// Classification fields are set once by the classifier; Content is the only
// field changed afterwards, by ApplyParameters.
type Subtask struct {
	Name     string      `json:"name" yaml:"name"`                               // File base name without extension
	Path     string      `json:"path" yaml:"path"`                               // Absolute file location
	Stage    *EtlStage   `json:"stage,omitempty" yaml:"stage,omitempty"`         // Pipeline stage (nil if not classified)
	System   *SystemType `json:"system,omitempty" yaml:"system,omitempty"`       // Target system (nil if not classified)
	Entity   string      `json:"entity,omitempty" yaml:"entity,omitempty"`       // Logical grouping inferred from a folder ("" if none)
	TaskKind *TaskKind   `json:"task_kind,omitempty" yaml:"task_kind,omitempty"` // Content type from the extension
	IsCommon bool        `json:"is_common" yaml:"is_common"`                     // File sits directly under the base directory
	Content  string      `json:"content,omitempty" yaml:"content,omitempty"`     // Raw file text
}

// NewSubtask creates an unclassified Subtask for path. Name is the file
// name with its extension removed.
func NewSubtask(path string) *Subtask {
	base := filepath.Base(path)
	return &Subtask{
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
		Path: path,
	}
}

// FileName returns the base name of the file including its extension
func (s *Subtask) FileName() string {
	return filepath.Base(s.Path)
}

// Extension returns the file extension without the leading dot
func (s *Subtask) Extension() string {
	return strings.TrimPrefix(filepath.Ext(s.Path), ".")
}

// Validate checks the record invariants
func (s *Subtask) Validate() error {
	if s.Path == "" {
		return errors.New("subtask path is required")
	}
	if s.TaskKind == nil {
		return errors.New("subtask task kind is required")
	}
	if s.IsCommon && (s.Stage != nil || s.System != nil || s.Entity != "") {
		return errors.New("common subtask cannot carry stage, system or entity")
	}
	return nil
}

// ApplyParameters substitutes placeholders in Content in place and returns
// the new content. With no styles every placeholder style is applied.
func (s *Subtask) ApplyParameters(values map[string]string, styles ...params.Style) string {
	s.Content = params.Apply(s.Content, values, styles...)
	return s.Content
}

// Render returns a copy of the subtask with placeholders substituted,
// leaving the receiver untouched
func (s *Subtask) Render(values map[string]string, styles ...params.Style) *Subtask {
	rendered := *s
	rendered.ApplyParameters(values, styles...)
	return &rendered
}

// Placeholders lists the placeholders present in Content
func (s *Subtask) Placeholders(styles ...params.Style) []params.Placeholder {
	return params.Find(s.Content, styles...)
}

// Ptr returns a pointer to a copy of the stage
func (s EtlStage) Ptr() *EtlStage { return &s }

// Ptr returns a pointer to a copy of the system type
func (t SystemType) Ptr() *SystemType { return &t }

// Ptr returns a pointer to a copy of the task kind
func (k TaskKind) Ptr() *TaskKind { return &k }
