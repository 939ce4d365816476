package sim

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Yousifus/particle-life-app-sub000/telemetry"
)

// State is the lifecycle state of a Loop.
type State int32

const (
	Stopped State = iota
	Running
	Stopping // stop requested, goroutine still finishing its tick
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// StepFunc advances the simulation by dt seconds.
type StepFunc func(dt float64)

// LoopOptions configures a Loop.
type LoopOptions struct {
	PauseSleep      time.Duration      // sleep per tick while paused
	MinTickInterval time.Duration      // 0 = uncapped
	PerfWindow      int                // ticks averaged by Stats
	Reporter        telemetry.Reporter // receives command and step failures
}

// Loop runs ticks on its own goroutine. Each tick drains the queue and then,
// unless paused, calls the step function with the real elapsed time.
type Loop struct {
	physics *Physics
	queue   *Queue
	opts    LoopOptions
	perf    *telemetry.PerfCollector

	mu    sync.Mutex // guards state transitions, stop and done
	state atomic.Int32
	stop  chan struct{}
	done  chan struct{}

	paused   atomic.Bool
	ticks    atomic.Int64
	lastTick atomic.Int64 // unix nanoseconds
}

// NewLoop creates a stopped loop over p.
func NewLoop(p *Physics, opts LoopOptions) *Loop {
	if opts.PauseSleep <= 0 {
		opts.PauseSleep = 10 * time.Millisecond
	}
	if opts.Reporter == nil {
		opts.Reporter = telemetry.NewLogReporter(nil)
	}
	return &Loop{
		physics: p,
		queue:   NewQueue(),
		opts:    opts,
		perf:    telemetry.NewPerfCollector(opts.PerfWindow),
	}
}

// Start launches the loop goroutine.
func (l *Loop) Start(step StepFunc) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s := l.State(); s != Stopped {
		return fmt.Errorf("%w: state %s", ErrAlreadyRunning, s)
	}
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	l.state.Store(int32(Running))
	go l.run(step, l.stop, l.done)
	return nil
}

// Stop asks the loop to exit after its current tick and waits up to timeout.
// It reports whether the goroutine exited in time. On false the request stays
// in place and Stop may be called again.
func (l *Loop) Stop(timeout time.Duration) bool {
	l.mu.Lock()
	if l.State() == Stopped {
		l.mu.Unlock()
		return true
	}
	if l.State() == Running {
		l.state.Store(int32(Stopping))
		close(l.stop)
	}
	done := l.done
	l.mu.Unlock()

	if timeout <= 0 {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

func (l *Loop) run(step StepFunc, stop, done chan struct{}) {
	defer func() {
		l.mu.Lock()
		l.state.Store(int32(Stopped))
		close(done)
		l.mu.Unlock()
		slog.Info("simulation loop stopped", "ticks", l.ticks.Load())
	}()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		default:
		}

		tickStart := time.Now()
		l.perf.StartTick()
		l.perf.StartPhase(telemetry.PhaseTasks)
		l.queue.Drain(l.physics, l.opts.Reporter)

		if l.paused.Load() {
			l.perf.StartPhase(telemetry.PhaseIdle)
			sleep(l.opts.PauseSleep, stop)
			last = time.Now()
		} else {
			now := time.Now()
			dt := now.Sub(last).Seconds()
			last = now

			l.perf.StartPhase(telemetry.PhaseStep)
			if err := l.runStep(step, dt); err != nil {
				l.opts.Reporter.TaskFailed("step", err)
				l.paused.Store(true)
			}

			if wait := l.opts.MinTickInterval - time.Since(tickStart); wait > 0 {
				l.perf.StartPhase(telemetry.PhaseIdle)
				sleep(wait, stop)
			}
		}

		l.perf.EndTick()
		l.ticks.Add(1)
		l.lastTick.Store(time.Now().UnixNano())
	}
}

// runStep calls step, turning a panic into an error. A failing step pauses
// the loop so the UI can still reset it.
func (l *Loop) runStep(step StepFunc, dt float64) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanic, v)
		}
	}()
	step(dt)
	return nil
}

func sleep(d time.Duration, stop <-chan struct{}) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-stop:
	}
}

// State returns the lifecycle state.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Pause stops stepping. Queued commands still run each tick.
func (l *Loop) Pause() { l.paused.Store(true) }

// Resume restarts stepping.
func (l *Loop) Resume() { l.paused.Store(false) }

// SetPaused pauses or resumes.
func (l *Loop) SetPaused(paused bool) { l.paused.Store(paused) }

// Paused reports whether stepping is paused.
func (l *Loop) Paused() bool { return l.paused.Load() }

// AvgTickRate returns ticks per second averaged over the perf window.
func (l *Loop) AvgTickRate() float64 {
	return l.perf.Stats().TicksPerSecond
}

// Stats returns tick timing over the perf window.
func (l *Loop) Stats() telemetry.PerfStats {
	return l.perf.Stats()
}

// Perf returns the loop's collector, e.g. for recording render frames.
func (l *Loop) Perf() *telemetry.PerfCollector {
	return l.perf
}

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() int64 {
	return l.ticks.Load()
}

// LastTick returns when the last tick completed, or the zero time.
func (l *Loop) LastTick() time.Time {
	ns := l.lastTick.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// Queue returns the loop's command queue.
func (l *Loop) Queue() *Queue { return l.queue }

// Enqueue queues cmd for the next tick.
func (l *Loop) Enqueue(cmd Command) { l.queue.Enqueue(cmd) }

// Submit queues cmd and returns a channel for its result.
func (l *Loop) Submit(cmd Command) <-chan error { return l.queue.Submit(cmd) }

// DoOnce sets the run-once command for the next tick.
func (l *Loop) DoOnce(cmd Command) { l.queue.DoOnce(cmd) }
