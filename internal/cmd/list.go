package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harrison/subtasks/internal/display"
	"github.com/harrison/subtasks/internal/manager"
	"github.com/harrison/subtasks/internal/models"
)

// NewListCommand creates and returns the list subcommand
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [base-dir]",
		Short: "List discovered subtasks, optionally filtered",
		Long: `List the task files found under the base directory.

Filters are combined with AND. Stage, system and kind accept any alias
(e.g. --stage 01_extract, --stage e, --system pg, --kind py). Common files
(directly under the base directory) are always included unless
--no-common is given; --common lists only common files.

Examples:
  subtasks list ./tasks
  subtasks list --stage extract --system postgres
  subtasks list --entity customers --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runList,
	}

	addDiscoveryFlags(cmd)
	cmd.Flags().String("stage", "", "Only subtasks of this ETL stage")
	cmd.Flags().String("system", "", "Only subtasks targeting this system")
	cmd.Flags().String("entity", "", "Only subtasks of this entity")
	cmd.Flags().String("kind", "", "Only subtasks of this task kind")
	cmd.Flags().Bool("common", false, "Only common subtasks")
	cmd.Flags().Bool("no-common", false, "Do not add common subtasks to the result")
	cmd.Flags().StringP("format", "f", "table", "Output format: table, yaml, json")

	return cmd
}

// listEntry is the serialized form of one listed subtask
type listEntry struct {
	Key      string             `json:"key" yaml:"key"`
	Name     string             `json:"name" yaml:"name"`
	Path     string             `json:"path" yaml:"path"`
	Stage    *models.EtlStage   `json:"stage,omitempty" yaml:"stage,omitempty"`
	System   *models.SystemType `json:"system,omitempty" yaml:"system,omitempty"`
	Entity   string             `json:"entity,omitempty" yaml:"entity,omitempty"`
	TaskKind *models.TaskKind   `json:"task_kind,omitempty" yaml:"task_kind,omitempty"`
	IsCommon bool               `json:"is_common" yaml:"is_common"`
}

func runList(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "yaml" && format != "json" {
		return fmt.Errorf("invalid --format %q, must be one of: table, yaml, json", format)
	}

	filter, err := buildFilter(cmd)
	if err != nil {
		return err
	}

	s, err := loadSettings(cmd, firstArg(args), nil, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	mgr, err := s.openManager()
	if err != nil {
		return err
	}

	tasks := mgr.GetTasks(filter)
	return writeList(cmd.OutOrStdout(), format, mgr.BasePath(), tasks)
}

// buildFilter translates the filter flags into a manager.Filter
func buildFilter(cmd *cobra.Command) (manager.Filter, error) {
	var filter manager.Filter

	if cmd.Flags().Changed("common") && cmd.Flags().Changed("no-common") {
		return filter, fmt.Errorf("cannot use both --common and --no-common")
	}

	if text, _ := cmd.Flags().GetString("stage"); text != "" {
		stage, err := models.EtlStageFromAlias(text)
		if err != nil {
			return filter, err
		}
		filter.Stage = &stage
	}
	if text, _ := cmd.Flags().GetString("system"); text != "" {
		system, err := models.SystemTypeFromAlias(text)
		if err != nil {
			return filter, err
		}
		filter.System = &system
	}
	if text, _ := cmd.Flags().GetString("kind"); text != "" {
		kind, err := models.TaskKindFromAlias(text)
		if err != nil {
			return filter, err
		}
		filter.TaskKind = &kind
	}

	filter.Entity, _ = cmd.Flags().GetString("entity")

	if common, _ := cmd.Flags().GetBool("common"); common {
		filter.IsCommon = &common
	}
	filter.ExcludeCommon, _ = cmd.Flags().GetBool("no-common")

	return filter, nil
}

// writeList prints tasks in the requested format, ordered by key
func writeList(w io.Writer, format, basePath string, tasks map[string]*models.Subtask) error {
	if format == "table" {
		display.RenderTable(w, display.SubtaskRows(basePath, tasks))
		return nil
	}

	entries := make([]listEntry, 0, len(tasks))
	for _, key := range manager.SortedKeys(tasks) {
		sub := tasks[key]
		entries = append(entries, listEntry{
			Key:      key,
			Name:     sub.Name,
			Path:     sub.Path,
			Stage:    sub.Stage,
			System:   sub.System,
			Entity:   sub.Entity,
			TaskKind: sub.TaskKind,
			IsCommon: sub.IsCommon,
		})
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
