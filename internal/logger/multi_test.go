package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMultiLoggerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiLogger(NewConsoleLogger(&a, "info"), nil, NewConsoleLogger(&b, "debug"))

	if len(m) != 2 {
		t.Fatalf("nil loggers should be dropped, got %d", len(m))
	}

	m.LogDebug("only b")
	m.LogWarn("both")
	m.LogDiscoverySummary("/tasks", 3, 1, 2*time.Second)

	if strings.Contains(a.String(), "only b") {
		t.Error("info logger should filter debug messages")
	}
	if !strings.Contains(b.String(), "only b") {
		t.Error("debug logger should receive debug messages")
	}
	for _, out := range []string{a.String(), b.String()} {
		if !strings.Contains(out, "[WARN] both") {
			t.Errorf("warn missing from %q", out)
		}
		if !strings.Contains(out, "discovered 3 subtasks (1 common) in /tasks (2.0s)") {
			t.Errorf("summary missing from %q", out)
		}
	}
}
