package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/subtasks/internal/filelock"
)

// RunIDParam is filled with a fresh UUID when no value is supplied
const RunIDParam = "run_id"

// NewRenderCommand creates and returns the render subcommand
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <name>",
		Short: "Print a subtask's content with placeholders substituted",
		Long: `Render a subtask with parameter substitution.

Values come from the params section of the config file, overridden by
--param key=value flags. The run_id parameter defaults to a new UUID.
Placeholders without a value are left untouched.

With --output the result is written atomically to a file, under a
<file>.lock lock so concurrent renders of the same target do not
interleave.

Examples:
  subtasks render get_customers --param schema=dwh --param env=prod
  subtasks render load_orders.sql --entity orders --style double_curly
  subtasks render get_customers --output build/get_customers.sql`,
		Args: cobra.ExactArgs(1),
		RunE: runRender,
	}

	addDiscoveryFlags(cmd)
	cmd.Flags().StringP("dir", "d", "", "Base directory (default: base_path from config)")
	cmd.Flags().StringP("entity", "e", "", "Entity of the subtask")
	cmd.Flags().StringArrayP("param", "p", nil, "Parameter as key=value (repeatable)")
	cmd.Flags().StringSlice("style", nil, "Placeholder styles to apply (default: all)")
	cmd.Flags().StringP("output", "o", "", "Write the result to this file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	entity, _ := cmd.Flags().GetString("entity")
	pairs, _ := cmd.Flags().GetStringArray("param")
	styleNames, _ := cmd.Flags().GetStringSlice("style")
	output, _ := cmd.Flags().GetString("output")

	values, err := parseParams(pairs)
	if err != nil {
		return err
	}

	s, err := loadSettings(cmd, dir, styleNames, values)
	if err != nil {
		return err
	}
	defer s.Close()

	styles, err := s.cfg.Styles()
	if err != nil {
		return err
	}

	mgr, err := s.openManager()
	if err != nil {
		return err
	}

	sub, err := mgr.GetTask(args[0], entity)
	if err != nil {
		return err
	}

	values = s.cfg.Params
	if values == nil {
		values = make(map[string]string)
	}
	if _, ok := values[RunIDParam]; !ok {
		values[RunIDParam] = uuid.NewString()
	}
	s.log.LogDebug(fmt.Sprintf("rendering %s with run_id=%s", sub.Path, values[RunIDParam]))

	rendered := sub.Render(values, styles...)

	if output == "" {
		fmt.Fprint(cmd.OutOrStdout(), rendered.Content)
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if s.cfg.LockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.LockTimeout)
		defer cancel()
	}

	if err := filelock.LockAndWriteContext(ctx, output, []byte(rendered.Content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	s.log.LogInfo(fmt.Sprintf("Rendered %s to %s", sub.FileName(), output))
	return nil
}
