package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/subtasks/internal/models"
)

func readRunLog(t *testing.T, fl *FileLogger) string {
	t.Helper()
	data, err := os.ReadFile(fl.RunFile())
	if err != nil {
		t.Fatalf("failed to read run log: %v", err)
	}
	return string(data)
}

func TestNewFileLogger(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	fl, err := NewFileLogger(logDir, "info", "list")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer fl.Close()

	if !strings.HasPrefix(filepath.Base(fl.RunFile()), "run-") {
		t.Errorf("unexpected run file name %s", fl.RunFile())
	}

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	if err != nil {
		t.Fatalf("latest.log symlink missing: %v", err)
	}
	if target != filepath.Base(fl.RunFile()) {
		t.Errorf("latest.log -> %s, want %s", target, filepath.Base(fl.RunFile()))
	}

	if !strings.Contains(readRunLog(t, fl), "=== subtasks list ===") {
		t.Error("run log should start with the command header")
	}
}

func TestFileLoggerLevels(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "warn", "render")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer fl.Close()

	fl.LogDebug("hidden debug")
	fl.LogInfo("hidden info")
	fl.LogWarn("visible warn")
	fl.LogError("visible error")

	content := readRunLog(t, fl)
	if strings.Contains(content, "hidden") {
		t.Errorf("messages below warn should be filtered: %s", content)
	}
	if !strings.Contains(content, "[WARN] visible warn") || !strings.Contains(content, "[ERROR] visible error") {
		t.Errorf("missing warn/error lines: %s", content)
	}
}

func TestFileLoggerDiscoveryEvents(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "debug", "list")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer fl.Close()

	fl.LogSubtask(&models.Subtask{Name: "a", Path: "/t/a.sql", IsCommon: true, TaskKind: models.TaskKindSql.Ptr()})
	fl.LogSubtask(nil)
	fl.LogDiscoverySummary("/t", 1, 1, 3*time.Millisecond)

	content := readRunLog(t, fl)
	if !strings.Contains(content, "[DEBUG] discovered /t/a.sql common kind=SQL") {
		t.Errorf("missing subtask line: %s", content)
	}
	if !strings.Contains(content, "[INFO] discovered 1 subtasks (1 common) in /t (3ms)") {
		t.Errorf("missing summary line: %s", content)
	}
}

func TestFileLoggerCloseTwice(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "info", "list")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	// writes after close are dropped
	fl.LogError("late")
}
