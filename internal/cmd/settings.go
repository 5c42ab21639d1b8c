package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/subtasks/internal/classifier"
	"github.com/harrison/subtasks/internal/config"
	"github.com/harrison/subtasks/internal/logger"
	"github.com/harrison/subtasks/internal/manager"
)

// addDiscoveryFlags registers the flags shared by every command that scans
// a task tree
func addDiscoveryFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("exclude", nil, "Directory names to skip while scanning (repeatable)")
	cmd.Flags().Bool("require-system", false, "Reject task files whose folders name no system")
}

// settings is the merged configuration of one command invocation
type settings struct {
	cfg  *config.Config
	log  logger.Logger
	file *logger.FileLogger
}

// loadSettings loads the config file, applies command-line overrides and
// validates the result. basePath overrides base_path when not empty.
func loadSettings(cmd *cobra.Command, basePath string, styles []string, values map[string]string) (*settings, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(".", configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var basePathPtr *string
	if basePath != "" {
		basePathPtr = &basePath
	}

	var logLevelPtr *string
	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		level = strings.ToLower(level)
		logLevelPtr = &level
	}

	var excludeDirs []string
	if f := cmd.Flags().Lookup("exclude"); f != nil {
		excludeDirs, _ = cmd.Flags().GetStringSlice("exclude")
	}

	var requireSystemPtr *bool
	if cmd.Flags().Lookup("require-system") != nil && cmd.Flags().Changed("require-system") {
		requireSystem, _ := cmd.Flags().GetBool("require-system")
		requireSystemPtr = &requireSystem
	}

	cfg.MergeWithFlags(basePathPtr, logLevelPtr, excludeDirs, styles, requireSystemPtr, values)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &settings{cfg: cfg}
	console := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if cfg.LogDir == "" {
		s.log = console
		return s, nil
	}

	s.file, err = logger.NewFileLogger(cfg.LogDir, cfg.LogLevel, cmd.Name())
	if err != nil {
		return nil, err
	}
	s.log = logger.NewMultiLogger(console, s.file)
	return s, nil
}

// Close releases the run log file, if any
func (s *settings) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// newClassifier builds the classifier configured by the settings
func (s *settings) newClassifier() *classifier.Classifier {
	return classifier.New(classifier.Options{RequireSystem: s.cfg.RequireSystem})
}

// openManager runs discovery over the configured base path
func (s *settings) openManager() (*manager.Manager, error) {
	mgr, err := manager.New(s.cfg.BasePath,
		manager.WithClassifier(s.newClassifier()),
		manager.WithExcludeDirs(s.cfg.ExcludeDirs...),
		manager.WithLogger(s.log),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load subtasks from %s: %w", s.cfg.BasePath, err)
	}
	return mgr, nil
}

// parseParams turns repeated key=value flags into a map
func parseParams(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", pair)
		}
		values[key] = value
	}
	return values, nil
}

// firstArg returns args[0] or "" when no positional argument was given
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
