package logger

import (
	"time"

	"github.com/harrison/subtasks/internal/models"
)

// Logger is the full set of events the CLI emits
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogSubtask(sub *models.Subtask)
	LogDiscoverySummary(baseDir string, total, common int, duration time.Duration)
}

var (
	_ Logger = (*ConsoleLogger)(nil)
	_ Logger = (*FileLogger)(nil)
	_ Logger = (*NoOpLogger)(nil)
	_ Logger = MultiLogger(nil)
)

// MultiLogger forwards every event to each logger in order
type MultiLogger []Logger

// NewMultiLogger drops nil entries and returns the remaining loggers
func NewMultiLogger(loggers ...Logger) MultiLogger {
	out := make(MultiLogger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

func (m MultiLogger) LogTrace(message string) {
	for _, l := range m {
		l.LogTrace(message)
	}
}

func (m MultiLogger) LogDebug(message string) {
	for _, l := range m {
		l.LogDebug(message)
	}
}

func (m MultiLogger) LogInfo(message string) {
	for _, l := range m {
		l.LogInfo(message)
	}
}

func (m MultiLogger) LogWarn(message string) {
	for _, l := range m {
		l.LogWarn(message)
	}
}

func (m MultiLogger) LogError(message string) {
	for _, l := range m {
		l.LogError(message)
	}
}

func (m MultiLogger) LogSubtask(sub *models.Subtask) {
	for _, l := range m {
		l.LogSubtask(sub)
	}
}

func (m MultiLogger) LogDiscoverySummary(baseDir string, total, common int, duration time.Duration) {
	for _, l := range m {
		l.LogDiscoverySummary(baseDir, total, common, duration)
	}
}
