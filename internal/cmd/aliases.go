package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/subtasks/internal/models"
)

// NewAliasesCommand creates and returns the aliases subcommand
func NewAliasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "aliases [stage|system|kind]",
		Short:     "Print the folder and filter aliases of stages, systems and task kinds",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"stage", "system", "kind"},
		RunE: func(cmd *cobra.Command, args []string) error {
			writeAliases(cmd.OutOrStdout(), firstArg(args))
			return nil
		},
	}
	return cmd
}

// aliasRow is one printable variant of an alias table
type aliasRow struct {
	id      int
	name    string
	aliases []string
}

// writeAliases prints the requested table, or all three when table is ""
func writeAliases(w io.Writer, table string) {
	if table == "" || table == "stage" {
		var rows []aliasRow
		for _, s := range models.AllEtlStages() {
			rows = append(rows, aliasRow{s.ID(), s.Name(), s.Aliases()})
		}
		writeAliasTable(w, "ETL stages", rows)
	}
	if table == "" || table == "system" {
		var rows []aliasRow
		for _, t := range models.AllSystemTypes() {
			rows = append(rows, aliasRow{t.ID(), t.Name(), t.Aliases()})
		}
		writeAliasTable(w, "System types", rows)
	}
	if table == "" || table == "kind" {
		var rows []aliasRow
		for _, k := range models.AllTaskKinds() {
			rows = append(rows, aliasRow{k.ID(), k.Name(), k.Aliases()})
		}
		writeAliasTable(w, "Task kinds", rows)
	}
}

func writeAliasTable(w io.Writer, title string, rows []aliasRow) {
	color.New(color.FgCyan, color.Bold).Fprintf(w, "%s:\n", title)
	for _, r := range rows {
		fmt.Fprintf(w, "  %2d  %-16s %s\n", r.id, r.name, strings.Join(r.aliases, ", "))
	}
	fmt.Fprintln(w)
}
