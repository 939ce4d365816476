package game

import (
	"log/slog"
	"time"
)

// flushTelemetry logs and writes perf and population stats once per log
// interval, or immediately when force is set.
func (g *Game) flushTelemetry(now time.Time, force bool) {
	interval := g.cfg.Telemetry.LogInterval
	if !force && (interval <= 0 || now.Sub(g.lastLog) < interval) {
		return
	}
	g.lastLog = now

	perfStats := g.loop.Stats()
	tick := g.loop.Ticks()

	if g.opts.LogStats {
		perfStats.LogStats()
		slog.Info("population", "stats", g.stats)
	}

	if g.snapshot == nil {
		return
	}
	if err := g.output.WritePerf(perfStats, tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	if err := g.output.WritePopulation(g.stats); err != nil {
		slog.Error("failed to write population", "error", err)
	}
}
