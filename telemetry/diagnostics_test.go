package telemetry

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(slog.New(slog.NewJSONHandler(&buf, nil)))

	r.TaskFailed("set type count", errors.New("boom"))
	r.TaskFailed("snapshot", errors.New("bang"))

	if r.Failures() != 2 {
		t.Errorf("Failures() = %d, want 2", r.Failures())
	}
	out := buf.String()
	if !strings.Contains(out, `"task":"set type count"`) || !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("unexpected log output: %s", out)
	}
}
