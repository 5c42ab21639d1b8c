package models

import (
	"fmt"
	"strings"
)

// TaskKind is the content type of a task file, decided by its extension
type TaskKind int

const (
	TaskKindSql TaskKind = iota
	TaskKindShell
	TaskKindPowershell
	TaskKindPython
	TaskKindGraphql
	TaskKindJson
	TaskKindYaml
)

// taskKindExtensions lists the bare extensions claimed by each kind
var taskKindExtensions = [][]string{
	TaskKindSql:        {"sql", "psql", "tsql", "plpgsql"},
	TaskKindShell:      {"sh"},
	TaskKindPowershell: {"ps1"},
	TaskKindPython:     {"py"},
	TaskKindGraphql:    {"graphql", "gql"},
	TaskKindJson:       {"json", "jsonl"},
	TaskKindYaml:       {"yaml", "yml"},
}

var taskKindTable = []aliasEntry{
	TaskKindSql:        {name: "sql", display: "SQL"},
	TaskKindShell:      {name: "shell", display: "SHELL"},
	TaskKindPowershell: {name: "powershell", display: "POWERSHELL"},
	TaskKindPython:     {name: "python", display: "PYTHON"},
	TaskKindGraphql:    {name: "graphql", display: "GRAPHQL"},
	TaskKindJson:       {name: "json", display: "JSON"},
	TaskKindYaml:       {name: "yaml", display: "YAML"},
}

func init() {
	// A task kind is looked up by its name or any of its extensions
	for i := range taskKindTable {
		aliases := []string{taskKindTable[i].name}
		for _, ext := range taskKindExtensions[i] {
			if ext != taskKindTable[i].name {
				aliases = append(aliases, ext)
			}
		}
		taskKindTable[i].aliases = aliases
	}
}

// AllTaskKinds returns every task kind in table order
func AllTaskKinds() []TaskKind {
	kinds := make([]TaskKind, len(taskKindTable))
	for i := range taskKindTable {
		kinds[i] = TaskKind(i)
	}
	return kinds
}

// AllExtensions returns the extensions of every task kind, in table order
func AllExtensions() []string {
	var exts []string
	for _, list := range taskKindExtensions {
		exts = append(exts, list...)
	}
	return exts
}

// TaskKindFromAlias resolves a kind name or extension, ignoring case
func TaskKindFromAlias(text string) (TaskKind, error) {
	i, ok := findAlias(taskKindTable, text)
	if !ok {
		return 0, &AliasError{Table: "task kind", Alias: text}
	}
	return TaskKind(i), nil
}

// TaskKindFromExtension returns the first kind, in table order, whose
// extension set contains ext. The comparison is case-sensitive; a leading
// dot is ignored.
func TaskKindFromExtension(ext string) (TaskKind, bool) {
	ext = strings.TrimPrefix(ext, ".")
	for i, list := range taskKindExtensions {
		for _, candidate := range list {
			if candidate == ext {
				return TaskKind(i), true
			}
		}
	}
	return 0, false
}

func (k TaskKind) valid() bool {
	return k >= 0 && int(k) < len(taskKindTable)
}

// ID returns the stable numeric identifier of the task kind
func (k TaskKind) ID() int {
	return int(k)
}

// Name returns the canonical lower-case name (e.g. "graphql")
func (k TaskKind) Name() string {
	if !k.valid() {
		return "unknown"
	}
	return taskKindTable[k].name
}

// String returns the upper-case display name (e.g. "GRAPHQL")
func (k TaskKind) String() string {
	if !k.valid() {
		return fmt.Sprintf("TaskKind(%d)", int(k))
	}
	return taskKindTable[k].display
}

// Aliases returns the lookup aliases: the kind name followed by its extensions
func (k TaskKind) Aliases() []string {
	if !k.valid() {
		return nil
	}
	return copyAliases(taskKindTable[k])
}

// Extensions returns the bare extensions (no leading dot) claimed by the kind
func (k TaskKind) Extensions() []string {
	if !k.valid() {
		return nil
	}
	out := make([]string, len(taskKindExtensions[k]))
	copy(out, taskKindExtensions[k])
	return out
}

// MarshalText encodes the task kind as its canonical name
func (k TaskKind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, fmt.Errorf("invalid task kind %d", int(k))
	}
	return []byte(k.Name()), nil
}

// UnmarshalText accepts the canonical name or any alias
func (k *TaskKind) UnmarshalText(text []byte) error {
	kind, err := TaskKindFromAlias(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
