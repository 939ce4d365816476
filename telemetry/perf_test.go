package telemetry

import (
	"sync"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseTasks)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseStep)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.P90TickDuration < stats.MinTickDuration || stats.P90TickDuration > stats.MaxTickDuration {
		t.Errorf("p90 %v outside [%v, %v]", stats.P90TickDuration, stats.MinTickDuration, stats.MaxTickDuration)
	}
	if _, ok := stats.PhaseAvg[PhaseTasks]; !ok {
		t.Error("expected tasks phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseStep]; !ok {
		t.Error("expected step phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseStep)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(100 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.PhasePct["slow"] <= stats.PhasePct["fast"] {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", stats.PhasePct["slow"], stats.PhasePct["fast"])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 80 {
		t.Errorf("expected FPS in (0, 80] with 16ms frame time, got %v", stats.FPS)
	}
}

func TestPerfCollector_ConcurrentReaders(t *testing.T) {
	pc := NewPerfCollector(16)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					_ = pc.Stats()
				}
			}
		}()
	}

	for i := 0; i < 1000; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseTasks)
		pc.StartPhase(PhaseStep)
		pc.EndTick()
	}
	close(stop)
	wg.Wait()

	if pc.Stats().TicksPerSecond <= 0 {
		t.Error("expected positive tick rate")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 2 * time.Millisecond,
		TicksPerSecond:  500,
		PhasePct:        map[string]float64{PhaseStep: 80, PhaseTasks: 20},
	}

	row := s.ToCSV(42)
	if row.Tick != 42 || row.AvgTickUS != 2000 {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.StepPct != 80 || row.TasksPct != 20 || row.IdlePct != 0 {
		t.Errorf("unexpected phase columns: %+v", row)
	}
}
