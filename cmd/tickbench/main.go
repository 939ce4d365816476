// Command tickbench sweeps physics worker counts over a headless simulation
// and reports tick rate and snapshot copy time per count as CSV.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/Yousifus/particle-life-app-sub000/config"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	workersFlag := flag.String("workers", "1,2,4,8", "Comma separated worker counts to sweep")
	particles := flag.Int("particles", 0, "Particle count (0 = simulation.initial_particles)")
	duration := flag.Duration("duration", 3*time.Second, "Run time per worker count")
	snapshots := flag.Int("snapshots", 20, "Timed snapshots per worker count")
	outputPath := flag.String("output", "", "CSV output file (empty = stdout)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	workers, err := parseWorkers(*workersFlag)
	if err != nil {
		slog.Error("invalid -workers", "error", err)
		os.Exit(1)
	}

	bp := benchParams{
		Particles: *particles,
		Duration:  *duration,
		Snapshots: *snapshots,
	}
	if bp.Particles <= 0 {
		bp.Particles = cfg.Simulation.InitialParticles
	}

	var results []Result
	for _, n := range workers {
		res, err := runBench(cfg, n, bp)
		if err != nil {
			slog.Error("benchmark failed", "workers", n, "error", err)
			os.Exit(1)
		}
		slog.Info("benchmark done",
			"workers", n,
			"ticks_per_sec", res.TicksPerSecond,
			"snapshot_ms", res.SnapshotMS,
		)
		results = append(results, res)
	}

	out := os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			slog.Error("failed to create output", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := gocsv.Marshal(results, out); err != nil {
		slog.Error("failed to write results", "error", err)
		os.Exit(1)
	}

	bestWorkers, bestRate := best(results)
	slog.Info("sweep complete", "best_workers", bestWorkers, "best_ticks_per_sec", bestRate)
}
