package parallel

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type span struct{ start, end int }

func TestChunkSize(t *testing.T) {
	tests := []struct {
		name       string
		n, workers int
		want       int
	}{
		{"empty", 0, 4, 0},
		{"even split", 100, 4, 25},
		{"remainder", 10, 4, 3},
		{"more workers than elements", 3, 8, 1},
		{"zero workers", 7, 0, 7},
		{"single worker", 7, 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChunkSize(tt.n, tt.workers); got != tt.want {
				t.Errorf("ChunkSize(%d, %d) = %d, want %d", tt.n, tt.workers, got, tt.want)
			}
		})
	}
}

func TestRunVisitsEveryIndexOnce(t *testing.T) {
	d := NewDistributor()
	defer d.Shutdown(time.Second)

	for n := 0; n <= 40; n++ {
		for workers := 1; workers <= 12; workers++ {
			visits := make([]int32, n)
			var mu sync.Mutex
			var spans []span

			err := d.Run(n, workers, func(start, end int) {
				mu.Lock()
				spans = append(spans, span{start, end})
				mu.Unlock()
				for i := start; i < end; i++ {
					atomic.AddInt32(&visits[i], 1)
				}
			})
			if err != nil {
				t.Fatalf("Run(%d, %d) failed: %v", n, workers, err)
			}

			for i, v := range visits {
				if v != 1 {
					t.Fatalf("Run(%d, %d): index %d visited %d times", n, workers, i, v)
				}
			}

			if n == 0 {
				if len(spans) != 0 {
					t.Fatalf("Run(0, %d) dispatched %d chunks", workers, len(spans))
				}
				continue
			}

			// Chunks are contiguous, non-overlapping, and never outnumber elements.
			sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
			if len(spans) > n || len(spans) > workers {
				t.Fatalf("Run(%d, %d) used %d chunks", n, workers, len(spans))
			}
			size := ChunkSize(n, workers)
			next := 0
			for k, s := range spans {
				if s.start != next {
					t.Fatalf("Run(%d, %d): chunk %d starts at %d, want %d", n, workers, k, s.start, next)
				}
				if k < len(spans)-1 && s.end-s.start != size {
					t.Fatalf("Run(%d, %d): chunk %d has %d elements, want %d", n, workers, k, s.end-s.start, size)
				}
				next = s.end
			}
			if next != n {
				t.Fatalf("Run(%d, %d): chunks end at %d, want %d", n, workers, next, n)
			}
		}
	}
}

func TestRunEachElementOwnChunkWhenWorkersExceedN(t *testing.T) {
	d := NewDistributor()
	defer d.Shutdown(time.Second)

	var chunks atomic.Int32
	err := d.Run(5, 64, func(start, end int) {
		if end-start != 1 {
			t.Errorf("chunk [%d, %d) has more than one element", start, end)
		}
		chunks.Add(1)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if chunks.Load() != 5 {
		t.Errorf("expected 5 chunks, got %d", chunks.Load())
	}
	if d.Workers() != 5 {
		t.Errorf("expected pool of 5 workers, got %d", d.Workers())
	}
}

func TestRunPanicIsReturnedAfterAllChunks(t *testing.T) {
	d := NewDistributor()
	defer d.Shutdown(time.Second)

	n := 1000
	out := make([]int, n)
	err := d.Run(n, 4, func(start, end int) {
		if start == 0 {
			panic("boom")
		}
		time.Sleep(10 * time.Millisecond)
		for i := start; i < end; i++ {
			out[i] = i
		}
	})

	if err == nil {
		t.Fatal("expected error from panicking chunk")
	}
	if !errors.Is(err, ErrWorkerFailure) {
		t.Errorf("expected ErrWorkerFailure, got %v", err)
	}
	var cp *ChunkPanic
	if !errors.As(err, &cp) {
		t.Fatalf("expected *ChunkPanic, got %T", err)
	}
	if cp.Start != 0 || cp.Value != "boom" {
		t.Errorf("unexpected panic details: start=%d value=%v", cp.Start, cp.Value)
	}
	if len(cp.Stack) == 0 {
		t.Error("expected captured stack")
	}

	// Other chunks ran to completion before Run returned.
	for i := ChunkSize(n, 4); i < n; i++ {
		if out[i] != i {
			t.Fatalf("index %d not written by its chunk", i)
		}
	}

	// Pool is still usable.
	var count atomic.Int32
	if err := d.Run(n, 4, func(start, end int) { count.Add(int32(end - start)) }); err != nil {
		t.Fatalf("Run after panic failed: %v", err)
	}
	if count.Load() != int32(n) {
		t.Errorf("expected %d visits after panic, got %d", n, count.Load())
	}
}

func TestRunPanicWithErrorValue(t *testing.T) {
	d := NewDistributor()
	defer d.Shutdown(time.Second)

	sentinel := errors.New("chunk broke")
	err := d.Run(1, 1, func(start, end int) { panic(sentinel) })

	if !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped panic error, got %v", err)
	}
	if !errors.Is(err, ErrWorkerFailure) {
		t.Errorf("expected ErrWorkerFailure, got %v", err)
	}
}

func TestPoolResizesBetweenRuns(t *testing.T) {
	d := NewDistributor()
	defer d.Shutdown(time.Second)

	noop := func(start, end int) {}

	if err := d.Run(100, 8, noop); err != nil {
		t.Fatal(err)
	}
	if d.Workers() != 8 {
		t.Errorf("expected 8 workers, got %d", d.Workers())
	}

	if err := d.Run(100, 2, noop); err != nil {
		t.Fatal(err)
	}
	if d.Workers() != 2 {
		t.Errorf("expected 2 workers after shrink, got %d", d.Workers())
	}
}

func TestShutdown(t *testing.T) {
	d := NewDistributor()

	if err := d.Run(100, 4, func(start, end int) {}); err != nil {
		t.Fatal(err)
	}
	if !d.Shutdown(time.Second) {
		t.Fatal("expected idle pool to shut down in time")
	}
	if d.Workers() != 0 {
		t.Errorf("expected 0 workers after shutdown, got %d", d.Workers())
	}

	// Next Run restarts the pool.
	var count atomic.Int32
	if err := d.Run(100, 4, func(start, end int) { count.Add(int32(end - start)) }); err != nil {
		t.Fatalf("Run after shutdown failed: %v", err)
	}
	if count.Load() != 100 {
		t.Errorf("expected 100 visits, got %d", count.Load())
	}
	d.Shutdown(time.Second)
}

func TestShutdownTimeoutDuringRun(t *testing.T) {
	d := NewDistributor()

	started := make(chan struct{})
	var once sync.Once
	finished := make(chan error, 1)
	go func() {
		finished <- d.Run(2, 2, func(start, end int) {
			once.Do(func() { close(started) })
			time.Sleep(300 * time.Millisecond)
		})
	}()

	<-started
	begin := time.Now()
	if d.Shutdown(10 * time.Millisecond) {
		t.Error("expected shutdown to time out while chunks are running")
	}
	if elapsed := time.Since(begin); elapsed > 200*time.Millisecond {
		t.Errorf("shutdown blocked for %v, expected to respect timeout", elapsed)
	}

	if err := <-finished; err != nil {
		t.Errorf("in-flight Run failed: %v", err)
	}
	if !d.Shutdown(time.Second) {
		t.Error("expected shutdown to succeed once Run completed")
	}
}

func BenchmarkRun(b *testing.B) {
	d := NewDistributor()
	defer d.Shutdown(time.Second)

	data := make([]float64, 100_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.Run(len(data), 8, func(start, end int) {
			for k := start; k < end; k++ {
				data[k] += 1
			}
		})
	}
}
