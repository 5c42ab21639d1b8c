package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/subtasks/internal/params"
)

// DirName is the per-project configuration directory
const DirName = ".subtasks"

// FileName is the configuration file inside DirName
const FileName = "config.yaml"

// Config represents subtasks configuration options
type Config struct {
	// BasePath is the root of the task tree. Relative paths in a config
	// file are resolved against the project directory holding DirName.
	BasePath string `yaml:"base_path"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir, when set, also writes each run's log to a file in this directory
	LogDir string `yaml:"log_dir"`

	// ExcludeDirs lists directory names skipped during discovery
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// ParamStyles restricts placeholder substitution to these styles (empty = all)
	ParamStyles []string `yaml:"param_styles"`

	// RequireSystem rejects classified files whose folders name no system
	RequireSystem bool `yaml:"require_system"`

	// Params are default render parameters; --param values override them
	Params map[string]string `yaml:"params"`

	// LockTimeout bounds the wait for the output lock in render --output
	LockTimeout time.Duration `yaml:"lock_timeout"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		BasePath:    ".",
		LogLevel:    "info",
		ExcludeDirs: nil,
		ParamStyles: nil,
		Params:      map[string]string{},
		LockTimeout: 10 * time.Second,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are strings in YAML ("30s")
	type yamlConfig struct {
		BasePath      string            `yaml:"base_path"`
		LogLevel      string            `yaml:"log_level"`
		LogDir        string            `yaml:"log_dir"`
		ExcludeDirs   []string          `yaml:"exclude_dirs"`
		ParamStyles   []string          `yaml:"param_styles"`
		RequireSystem bool              `yaml:"require_system"`
		Params        map[string]string `yaml:"params"`
		LockTimeout   string            `yaml:"lock_timeout"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.BasePath != "" {
		cfg.BasePath = yamlCfg.BasePath
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(yamlCfg.LogLevel))
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if len(yamlCfg.ExcludeDirs) > 0 {
		cfg.ExcludeDirs = yamlCfg.ExcludeDirs
	}
	if len(yamlCfg.ParamStyles) > 0 {
		cfg.ParamStyles = yamlCfg.ParamStyles
	}
	if yamlCfg.RequireSystem {
		cfg.RequireSystem = true
	}
	for k, v := range yamlCfg.Params {
		cfg.Params[k] = v
	}
	if yamlCfg.LockTimeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.LockTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid lock_timeout format %q: %w", yamlCfg.LockTimeout, err)
		}
		cfg.LockTimeout = timeout
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .subtasks/config.yaml in the
// specified directory. Relative base_path and log_dir are resolved against dir.
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	cfg, err := LoadConfig(filepath.Join(dir, DirName, FileName))
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(cfg.BasePath) {
		cfg.BasePath = filepath.Join(dir, cfg.BasePath)
	}
	if cfg.LogDir != "" && !filepath.IsAbs(cfg.LogDir) {
		cfg.LogDir = filepath.Join(dir, cfg.LogDir)
	}
	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values; non-empty slices
// replace the configured lists and params are merged key by key
func (c *Config) MergeWithFlags(basePath *string, logLevel *string, excludeDirs []string, styles []string, requireSystem *bool, values map[string]string) {
	if basePath != nil {
		c.BasePath = *basePath
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if len(excludeDirs) > 0 {
		c.ExcludeDirs = excludeDirs
	}
	if len(styles) > 0 {
		c.ParamStyles = styles
	}
	if requireSystem != nil {
		c.RequireSystem = *requireSystem
	}
	if len(values) > 0 && c.Params == nil {
		c.Params = make(map[string]string, len(values))
	}
	for k, v := range values {
		c.Params[k] = v
	}
}

// Styles resolves ParamStyles. An empty list yields nil, meaning every style.
func (c *Config) Styles() ([]params.Style, error) {
	return params.ParseStyles(c.ParamStyles)
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	for _, dir := range c.ExcludeDirs {
		if dir == "" || strings.ContainsAny(dir, `/\`) {
			return fmt.Errorf("exclude_dirs entries must be plain directory names, got %q", dir)
		}
	}

	if _, err := c.Styles(); err != nil {
		return fmt.Errorf("invalid param_styles: %w", err)
	}

	if c.LockTimeout < 0 {
		return fmt.Errorf("lock_timeout must be >= 0, got %v", c.LockTimeout)
	}

	return nil
}
