// Package manager discovers, classifies and loads every task file under a
// base directory and answers filtered lookups over the result.
//
// Discovery runs once, in New: the scanner lists candidate files, the
// classifier turns each path into a Subtask and the loader fills in its
// content. The collection is read-only afterwards; parameter substitution
// is applied by callers on individual subtasks.
package manager

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/harrison/subtasks/internal/classifier"
	"github.com/harrison/subtasks/internal/fileutil"
	"github.com/harrison/subtasks/internal/models"
)

// Scanner lists candidate task files under a base directory
type Scanner interface {
	Scan(baseDir string, extensions []string) (*fileutil.ScanResult, error)
}

// Classifier maps a file path to a classified subtask
type Classifier interface {
	Classify(baseDir, filePath string) (*models.Subtask, error)
}

// Loader reads the content of a task file
type Loader interface {
	Load(path string) (string, error)
}

// Logger receives discovery events
type Logger interface {
	LogWarn(message string)
	LogSubtask(sub *models.Subtask)
	LogDiscoverySummary(baseDir string, total, common int, duration time.Duration)
}

type options struct {
	scanner    Scanner
	classifier Classifier
	loader     Loader
	logger     Logger
	extensions []string
	exclude    []string
}

// Option configures a Manager.
type Option func(*options)

// WithScanner replaces the default directory scanner.
func WithScanner(s Scanner) Option {
	return func(o *options) {
		o.scanner = s
	}
}

// WithClassifier replaces the default classifier.
func WithClassifier(c Classifier) Option {
	return func(o *options) {
		o.classifier = c
	}
}

// WithLoader replaces the default file loader.
func WithLoader(l Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithLogger registers a logger for discovery events.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithExcludeDirs skips directories with the given names while scanning.
// It applies to the default scanner and to any *fileutil.Scanner passed to
// WithScanner, whatever the option order. Other scanners ignore it.
func WithExcludeDirs(dirs ...string) Option {
	return func(o *options) {
		o.exclude = append(o.exclude, dirs...)
	}
}

// Manager owns the subtasks discovered under one base directory
type Manager struct {
	basePath string
	subtasks []*models.Subtask
}

// New scans basePath and builds the subtask collection. Any scan,
// classification or read failure aborts the whole discovery pass: a
// malformed layout usually means the convention is broken tree-wide.
func New(basePath string, opts ...Option) (*Manager, error) {
	config := options{
		scanner:    &fileutil.Scanner{},
		classifier: classifier.New(classifier.Options{}),
		loader:     fileutil.TextLoader{},
		extensions: models.AllExtensions(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&config)
		}
	}
	if s, ok := config.scanner.(*fileutil.Scanner); ok && len(config.exclude) > 0 {
		// copy so a caller-owned scanner is left untouched
		scoped := *s
		scoped.ExcludeDirs = append(append([]string(nil), s.ExcludeDirs...), config.exclude...)
		config.scanner = &scoped
	}

	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path %s: %w", basePath, err)
	}

	m := &Manager{basePath: absBase}
	if err := m.discover(config); err != nil {
		return nil, err
	}
	return m, nil
}

// discover runs scanner, classifier and loader for every candidate file
func (m *Manager) discover(config options) error {
	start := time.Now()

	result, err := config.scanner.Scan(m.basePath, config.extensions)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", m.basePath, err)
	}
	if config.logger != nil {
		for _, scanErr := range result.Errors {
			config.logger.LogWarn(scanErr.Error())
		}
	}

	common := 0
	for _, file := range result.Files {
		sub, err := config.classifier.Classify(m.basePath, file)
		if err != nil {
			return fmt.Errorf("failed to classify %s: %w", file, err)
		}

		// I/O errors pass through unwrapped
		content, err := config.loader.Load(sub.Path)
		if err != nil {
			return err
		}
		sub.Content = content

		if sub.IsCommon {
			common++
		}
		m.subtasks = append(m.subtasks, sub)
		if config.logger != nil {
			config.logger.LogSubtask(sub)
		}
	}

	if config.logger != nil {
		config.logger.LogDiscoverySummary(m.basePath, len(m.subtasks), common, time.Since(start))
	}
	return nil
}

// BasePath returns the absolute base directory
func (m *Manager) BasePath() string {
	return m.basePath
}

// Subtasks returns every discovered subtask in discovery order
func (m *Manager) Subtasks() []*models.Subtask {
	out := make([]*models.Subtask, len(m.subtasks))
	copy(out, m.subtasks)
	return out
}

// Len returns the number of discovered subtasks
func (m *Manager) Len() int {
	return len(m.subtasks)
}
