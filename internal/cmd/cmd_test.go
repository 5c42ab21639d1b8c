package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/harrison/subtasks/internal/config"
)

// execute runs the root command with args in an isolated project directory
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv(config.EnvProjectDir, t.TempDir())

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err = root.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// newTaskTree builds a small valid task tree and returns its base directory
func newTaskTree(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "customers", "01_extract", "pg", "get_customers.sql"),
		"select * from {{schema}}.customers where run = '{run_id}';")
	writeFile(t, filepath.Join(base, "customers", "02_transform", "duck", "sales.py"), "print('sales')\n")
	writeFile(t, filepath.Join(base, "orders", "03_load", "pg", "load_orders.sql"), "insert into $schema.orders select 1;")
	writeFile(t, filepath.Join(base, "shared.yaml"), "owner: __OWNER__\n")
	return base
}
