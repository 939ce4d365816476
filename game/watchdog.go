package game

import "time"

// Watchdog flags the simulation as not reacting when no snapshot has
// arrived for longer than Threshold. A zero Threshold disables it.
type Watchdog struct {
	Threshold time.Duration
	last      time.Time
}

// NewWatchdog creates a watchdog that starts counting at now.
func NewWatchdog(threshold time.Duration, now time.Time) *Watchdog {
	return &Watchdog{Threshold: threshold, last: now}
}

// Observe records that a snapshot taken at t was received.
func (w *Watchdog) Observe(t time.Time) {
	if t.After(w.last) {
		w.last = t
	}
}

// Reset restarts the count, e.g. after the simulation was recreated.
func (w *Watchdog) Reset(now time.Time) {
	w.last = now
}

// Age returns the time since the last observed snapshot.
func (w *Watchdog) Age(now time.Time) time.Duration {
	return now.Sub(w.last)
}

// NotReacting reports whether the last snapshot is older than Threshold.
func (w *Watchdog) NotReacting(now time.Time) bool {
	return w.Threshold > 0 && w.Age(now) > w.Threshold
}
