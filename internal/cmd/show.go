package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/subtasks/internal/models"
	"github.com/harrison/subtasks/internal/params"
)

// NewShowCommand creates and returns the show subcommand
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one subtask's classification and content",
		Long: `Show a subtask found by name. The name may be the file stem
(get_customers) or the full file name (get_customers.sql). When several
entities share a file name, narrow the lookup with --entity.`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}

	addDiscoveryFlags(cmd)
	cmd.Flags().StringP("dir", "d", "", "Base directory (default: base_path from config)")
	cmd.Flags().StringP("entity", "e", "", "Entity of the subtask")
	cmd.Flags().Bool("placeholders", false, "List the placeholders found in the content instead of printing it")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	entity, _ := cmd.Flags().GetString("entity")
	onlyPlaceholders, _ := cmd.Flags().GetBool("placeholders")

	s, err := loadSettings(cmd, dir, nil, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	mgr, err := s.openManager()
	if err != nil {
		return err
	}

	sub, err := mgr.GetTask(args[0], entity)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if onlyPlaceholders {
		styles, err := s.cfg.Styles()
		if err != nil {
			return err
		}
		writePlaceholders(out, sub, styles)
		return nil
	}

	writeSubtask(out, sub)
	return nil
}

// writeSubtask prints the classification block followed by the content
func writeSubtask(w io.Writer, sub *models.Subtask) {
	label := color.New(color.FgCyan, color.Bold)

	stage, system, entity, kind := "-", "-", "-", "-"
	if sub.Stage != nil {
		stage = sub.Stage.Name()
	}
	if sub.System != nil {
		system = sub.System.Name()
	}
	if sub.Entity != "" {
		entity = sub.Entity
	}
	if sub.TaskKind != nil {
		kind = sub.TaskKind.Name()
	}

	label.Fprintln(w, sub.FileName())
	fmt.Fprintf(w, "  path:   %s\n", sub.Path)
	fmt.Fprintf(w, "  stage:  %s\n", stage)
	fmt.Fprintf(w, "  system: %s\n", system)
	fmt.Fprintf(w, "  entity: %s\n", entity)
	fmt.Fprintf(w, "  kind:   %s\n", kind)
	fmt.Fprintf(w, "  common: %t\n", sub.IsCommon)
	fmt.Fprintln(w, "---")
	fmt.Fprint(w, sub.Content)
	if sub.Content != "" && sub.Content[len(sub.Content)-1] != '\n' {
		fmt.Fprintln(w)
	}
}

// writePlaceholders prints one "style key token" line per placeholder
func writePlaceholders(w io.Writer, sub *models.Subtask, styles []params.Style) {
	found := sub.Placeholders(styles...)
	if len(found) == 0 {
		fmt.Fprintf(w, "No placeholders in %s\n", sub.FileName())
		return
	}
	for _, p := range found {
		fmt.Fprintf(w, "%-18s %-20s %s\n", p.Style, p.Key, p.Token)
	}
}
