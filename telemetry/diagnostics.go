package telemetry

import (
	"log/slog"
	"sync/atomic"
)

// Reporter receives failures that are caught instead of propagated, such as
// a queued command that returned an error or panicked.
type Reporter interface {
	TaskFailed(task string, err error)
}

// LogReporter reports failures through slog and counts them.
type LogReporter struct {
	logger   *slog.Logger
	failures atomic.Int64
}

// NewLogReporter creates a reporter writing to logger (slog.Default if nil).
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

// TaskFailed logs the failure.
func (r *LogReporter) TaskFailed(task string, err error) {
	n := r.failures.Add(1)
	r.logger.Error("task failed", "task", task, "error", err, "failures", n)
}

// Failures returns how many failures have been reported.
func (r *LogReporter) Failures() int64 {
	return r.failures.Load()
}
