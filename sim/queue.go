package sim

import (
	"fmt"
	"sync"

	"github.com/Yousifus/particle-life-app-sub000/telemetry"
)

// Command is a mutation of the live state, run on the simulation goroutine
// between two steps.
type Command interface {
	Apply(p *Physics) error
}

// CommandFunc adapts a function to Command.
type CommandFunc func(p *Physics) error

// Apply calls f(p).
func (f CommandFunc) Apply(p *Physics) error { return f(p) }

type pendingCommand struct {
	cmd    Command
	result chan<- error // nil for Enqueue
}

// Queue holds commands waiting for the next tick plus a single run-once slot.
// Enqueue, Submit and DoOnce may be called from any goroutine and never block.
type Queue struct {
	mu    sync.Mutex
	tasks []pendingCommand
	spare []pendingCommand // backing array of the last drained batch
	once  Command
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends cmd. A nil cmd is ignored.
func (q *Queue) Enqueue(cmd Command) {
	if cmd == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, pendingCommand{cmd: cmd})
	q.mu.Unlock()
}

// Submit appends cmd and returns a channel that receives its result once it
// has run. The channel is buffered, so the caller may ignore it.
func (q *Queue) Submit(cmd Command) <-chan error {
	result := make(chan error, 1)
	if cmd == nil {
		result <- fmt.Errorf("%w: nil command", ErrInvalidArgument)
		return result
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, pendingCommand{cmd: cmd, result: result})
	q.mu.Unlock()
	return result
}

// DoOnce sets the run-once command, replacing one that has not run yet.
// A nil cmd clears the slot.
func (q *Queue) DoOnce(cmd Command) {
	q.mu.Lock()
	q.once = cmd
	q.mu.Unlock()
}

// Len returns the number of queued commands, not counting the run-once slot.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Drain runs every command queued before the call in FIFO order, then the
// run-once command if one is set, and clears the slot. Commands queued while
// draining wait for the next Drain.
//
// Failures, including panics, go to r and do not stop later commands.
// It returns the number of commands run.
func (q *Queue) Drain(p *Physics, r telemetry.Reporter) int {
	q.mu.Lock()
	batch := q.tasks
	q.tasks = q.spare
	q.spare = nil
	q.mu.Unlock()

	for i := range batch {
		err := runCommand(batch[i].cmd, p, r)
		if batch[i].result != nil {
			batch[i].result <- err
		}
	}
	ran := len(batch)

	clear(batch)
	q.mu.Lock()
	q.spare = batch[:0]
	once := q.once
	q.once = nil
	q.mu.Unlock()

	if once != nil {
		runCommand(once, p, r)
		ran++
	}
	return ran
}

func runCommand(cmd Command, p *Physics, r telemetry.Reporter) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanic, v)
		}
		if err != nil && r != nil {
			r.TaskFailed(commandName(cmd), err)
		}
	}()
	return cmd.Apply(p)
}

// commandName names cmd for failure reports.
func commandName(cmd Command) string {
	if s, ok := cmd.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", cmd)
}
