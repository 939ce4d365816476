package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Yousifus/particle-life-app-sub000/components"
	"github.com/Yousifus/particle-life-app-sub000/config"
	"github.com/Yousifus/particle-life-app-sub000/parallel"
	"github.com/Yousifus/particle-life-app-sub000/sim"
	"github.com/Yousifus/particle-life-app-sub000/systems"
)

// Result is one row of the sweep.
type Result struct {
	Workers        int     `csv:"workers"`
	Particles      int     `csv:"particles"`
	Ticks          int64   `csv:"ticks"`
	TicksPerSecond float64 `csv:"ticks_per_sec"`
	AvgTickMS      float64 `csv:"avg_tick_ms"`
	P90TickMS      float64 `csv:"p90_tick_ms"`
	SnapshotMS     float64 `csv:"snapshot_mean_ms"`
	SnapshotStdMS  float64 `csv:"snapshot_std_ms"`
}

// benchParams holds one sweep's settings.
type benchParams struct {
	Particles int
	Duration  time.Duration
	Snapshots int // timed snapshots per worker count
}

// parseWorkers parses a comma separated list of positive worker counts.
func parseWorkers(s string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("worker count %q: %w", field, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("worker count %d must be positive", n)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no worker counts in %q", s)
	}
	return out, nil
}

// runBench runs the configured simulation with workers threads for the
// given duration and then times snapshot copies on the loop goroutine.
func runBench(cfg *config.Config, workers int, bp benchParams) (Result, error) {
	sc := cfg.Simulation
	registry := systems.NewRegistry(sc.Seed)
	pos, err := registry.PositionSetter(sc.PositionSetter)
	if err != nil {
		return Result{}, err
	}
	typ, err := registry.TypeSetter(sc.TypeSetter)
	if err != nil {
		return Result{}, err
	}
	gen, err := registry.MatrixGenerator(sc.MatrixGenerator)
	if err != nil {
		return Result{}, err
	}

	settings := components.Settings{DT: sc.DT, RMax: sc.RMax, Friction: sc.Friction, Force: sc.Force, Wrap: sc.Wrap}
	physics := sim.NewPhysics(settings, sc.MatrixSize, pos, typ, gen, uint64(sc.Seed))
	physics.PreferredThreads = workers
	if err := physics.SetParticleCount(bp.Particles); err != nil {
		return Result{}, err
	}

	stepPool := parallel.NewDistributor()
	snapPool := parallel.NewDistributor()
	defer stepPool.Shutdown(cfg.Workers.ShutdownTimeout)
	defer snapPool.Shutdown(cfg.Workers.ShutdownTimeout)

	loop := sim.NewLoop(physics, sim.LoopOptions{PerfWindow: cfg.Loop.PerfWindow})
	step := systems.NewForceStep(physics, stepPool, false)
	if err := loop.Start(step.Step); err != nil {
		return Result{}, err
	}
	defer loop.Stop(cfg.Loop.StopTimeout)

	time.Sleep(bp.Duration)
	perf := loop.Stats()
	ticks := loop.Ticks()

	// Snapshots are timed while the loop keeps stepping between them.
	var snap sim.Snapshot
	var copyMS []float64
	for range bp.Snapshots {
		var took time.Duration
		done := loop.Submit(sim.CommandFunc(func(p *sim.Physics) error {
			start := time.Now()
			err := snap.Take(p, snapPool, workers)
			took = time.Since(start)
			return err
		}))
		if err := <-done; err != nil {
			return Result{}, fmt.Errorf("snapshot: %w", err)
		}
		copyMS = append(copyMS, float64(took)/float64(time.Millisecond))
	}

	res := Result{
		Workers:        workers,
		Particles:      bp.Particles,
		Ticks:          ticks,
		TicksPerSecond: perf.TicksPerSecond,
		AvgTickMS:      float64(perf.AvgTickDuration) / float64(time.Millisecond),
		P90TickMS:      float64(perf.P90TickDuration) / float64(time.Millisecond),
	}
	switch {
	case len(copyMS) > 1:
		res.SnapshotMS, res.SnapshotStdMS = stat.MeanStdDev(copyMS, nil)
	case len(copyMS) == 1:
		res.SnapshotMS = copyMS[0]
	}
	return res, nil
}

// best returns the worker count with the highest tick rate and that rate.
func best(results []Result) (workers int, rate float64) {
	if len(results) == 0 {
		return 0, 0
	}
	rates := make([]float64, len(results))
	for i, r := range results {
		rates[i] = r.TicksPerSecond
	}
	i := floats.MaxIdx(rates)
	return results[i].Workers, rates[i]
}
