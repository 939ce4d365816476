package telemetry

import (
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PopulationStats summarizes a per-type particle histogram.
type PopulationStats struct {
	Tick      int64   `csv:"tick"`
	Particles int     `csv:"particles"`
	Types     int     `csv:"types"`
	MinCount  int     `csv:"min_type_count"`
	MaxCount  int     `csv:"max_type_count"`
	Mean      float64 `csv:"mean_type_count"`
	StdDev    float64 `csv:"std_type_count"`
	// Balance is the histogram's Shannon entropy normalized to [0, 1];
	// 1 means every type has the same count.
	Balance       float64 `csv:"balance"`
	SnapshotAgeMS int64   `csv:"snapshot_age_ms"`
}

// ComputePopulationStats builds PopulationStats from a type histogram.
func ComputePopulationStats(tick int64, typeCount []int, snapshotAge time.Duration) PopulationStats {
	s := PopulationStats{
		Tick:          tick,
		Types:         len(typeCount),
		SnapshotAgeMS: snapshotAge.Milliseconds(),
	}
	if len(typeCount) == 0 {
		return s
	}

	counts := make([]float64, len(typeCount))
	for i, c := range typeCount {
		counts[i] = float64(c)
	}

	total := floats.Sum(counts)
	s.Particles = int(total)
	s.MinCount = int(floats.Min(counts))
	s.MaxCount = int(floats.Max(counts))
	s.Mean, s.StdDev = stat.MeanStdDev(counts, nil)
	if len(counts) == 1 {
		s.StdDev = 0
	}

	if total > 0 && len(counts) > 1 {
		p := make([]float64, len(counts))
		floats.ScaleTo(p, 1/total, counts)
		s.Balance = stat.Entropy(p) / math.Log(float64(len(counts)))
	} else if total > 0 {
		s.Balance = 1
	}

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PopulationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("tick", s.Tick),
		slog.Int("particles", s.Particles),
		slog.Int("types", s.Types),
		slog.Int("min_type_count", s.MinCount),
		slog.Int("max_type_count", s.MaxCount),
		slog.Float64("balance", s.Balance),
		slog.Int64("snapshot_age_ms", s.SnapshotAgeMS),
	)
}
