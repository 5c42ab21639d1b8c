package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for subtasks
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtasks",
		Short: "Catalog and render ETL task files from a folder tree",
		Long: `Subtasks discovers task files (SQL, shell, Python, YAML, ...) under a
base directory and classifies each one by its folders: pipeline stage
(01_extract, load, ...), target system (pg, duckdb, ...) and entity.

Files directly under the base directory are common and are included in
every filtered listing. Task content can be rendered with placeholder
substitution in seven styles ({{key}}, {key}, ${key}, $key, __key__,
%key%, <key>).`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the returned error
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: nearest .subtasks/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")

	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewRenderCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewAliasesCommand())

	return cmd
}
