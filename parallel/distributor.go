// Package parallel splits index ranges across a reusable worker pool.
package parallel

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// ErrWorkerFailure is the error every captured chunk panic unwraps to.
var ErrWorkerFailure = errors.New("parallel: worker failed")

// ChunkPanic describes a panic recovered from one chunk of a Run call.
type ChunkPanic struct {
	Start, End int
	Value      any
	Stack      []byte
}

func (p *ChunkPanic) Error() string {
	return fmt.Sprintf("parallel: chunk [%d, %d) panicked: %v", p.Start, p.End, p.Value)
}

// Unwrap exposes ErrWorkerFailure, plus the panic value when it is an error.
func (p *ChunkPanic) Unwrap() []error {
	if err, ok := p.Value.(error); ok {
		return []error{ErrWorkerFailure, err}
	}
	return []error{ErrWorkerFailure}
}

// workChunk represents a range of indices for a worker to process.
type workChunk struct {
	start, end int
	fn         func(start, end int)
	done       chan<- *ChunkPanic
}

// Distributor runs a per-chunk function over [0, n) on a pool of persistent
// worker goroutines and blocks until every chunk is done.
//
// Run calls are serialized; fn must not call Run on the same Distributor.
type Distributor struct {
	mu      sync.Mutex // held for the whole of Run and while resizing the pool
	work    chan workChunk
	quits   []chan struct{} // one per live worker
	wg      sync.WaitGroup  // tracks live workers
	workers atomic.Int32
}

// NewDistributor creates a distributor with an empty pool.
// Workers are started lazily by the first Run that needs them.
func NewDistributor() *Distributor {
	return &Distributor{work: make(chan workChunk)}
}

// ChunkSize returns the chunk length Run uses for n elements and the given
// worker count: ceil(n / workers), with workers clamped to [1, n].
func ChunkSize(n, workers int) int {
	if n <= 0 {
		return 0
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	return (n + workers - 1) / workers
}

// Run partitions [0, n) into contiguous chunks of ChunkSize(n, workers)
// elements (the last one takes the remainder) and calls fn once per chunk.
//
// A panic inside fn is recovered. Run still waits for every other chunk,
// then returns the first recovered panic as a *ChunkPanic. Writes made by
// other chunks are kept, so chunks must write disjoint ranges.
func (d *Distributor) Run(n, workers int, fn func(start, end int)) error {
	if n <= 0 {
		return nil
	}
	size := ChunkSize(n, workers)
	chunks := (n + size - 1) / size

	// Single chunk: no point paying for a hand-off.
	if chunks == 1 {
		if p := runChunk(0, n, fn); p != nil {
			return p
		}
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.resize(min(workers, n))

	done := make(chan *ChunkPanic, chunks)
	for c := 0; c < chunks; c++ {
		start := c * size
		end := min(start+size, n)
		d.work <- workChunk{start: start, end: end, fn: fn, done: done}
	}

	var first *ChunkPanic
	for c := 0; c < chunks; c++ {
		if p := <-done; p != nil && first == nil {
			first = p
		}
	}
	if first != nil {
		return first
	}
	return nil
}

// Workers returns the current pool size.
func (d *Distributor) Workers() int {
	return int(d.workers.Load())
}

// Shutdown asks every worker to exit once it has finished its current chunk
// and reports whether all of them exited within timeout. A Run in progress is
// allowed to complete first. The distributor stays usable: the next Run
// starts a fresh pool.
func (d *Distributor) Shutdown(timeout time.Duration) bool {
	stopped := make(chan struct{})
	go func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.resize(0)
		d.wg.Wait()
		close(stopped)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-stopped:
		return true
	case <-timer.C:
		return false
	}
}

// resize grows or shrinks the pool to n workers. Caller holds d.mu.
func (d *Distributor) resize(n int) {
	for len(d.quits) < n {
		quit := make(chan struct{})
		d.quits = append(d.quits, quit)
		d.wg.Add(1)
		go d.worker(quit)
	}
	for len(d.quits) > n {
		last := len(d.quits) - 1
		close(d.quits[last])
		d.quits = d.quits[:last]
	}
	d.workers.Store(int32(n))
}

// worker processes chunks until its quit channel is closed.
func (d *Distributor) worker(quit <-chan struct{}) {
	defer d.wg.Done()

	for {
		select {
		case <-quit:
			return
		case chunk := <-d.work:
			chunk.done <- runChunk(chunk.start, chunk.end, chunk.fn)
		}
	}
}

// runChunk calls fn and converts a panic into a *ChunkPanic.
func runChunk(start, end int, fn func(start, end int)) (p *ChunkPanic) {
	defer func() {
		if r := recover(); r != nil {
			p = &ChunkPanic{Start: start, End: end, Value: r, Stack: debug.Stack()}
		}
	}()
	fn(start, end)
	return nil
}
