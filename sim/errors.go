package sim

import "errors"

var (
	// ErrInvalidArgument is returned by Physics operations that reject their
	// input. The live state is left unchanged.
	ErrInvalidArgument = errors.New("sim: invalid argument")

	// ErrAlreadyRunning is returned by Loop.Start when the loop is not stopped.
	ErrAlreadyRunning = errors.New("sim: loop already running")

	// ErrTaskPanic wraps a panic recovered from a queued command or step.
	ErrTaskPanic = errors.New("sim: task panicked")
)
