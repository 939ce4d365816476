package game

import "time"

// UpdateHeadless runs one frame of consumer work without a window: it picks
// up the latest snapshot, writes telemetry and requests the next snapshot,
// then sleeps for the rest of the frame.
func (g *Game) UpdateHeadless() {
	start := time.Now()

	g.pollSnapshot()
	g.checkWatchdog(start)
	g.flushTelemetry(start, false)
	g.requestSnapshot()

	if rest := g.frameInterval() - time.Since(start); rest > 0 {
		time.Sleep(rest)
	}
}

// frameInterval is the consumer frame period derived from the target FPS.
func (g *Game) frameInterval() time.Duration {
	fps := g.cfg.Screen.TargetFPS
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}
