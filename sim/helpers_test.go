package sim

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/Yousifus/particle-life-app-sub000/components"
)

type recordingReporter struct {
	mu    sync.Mutex
	tasks []string
	errs  []error
}

func (r *recordingReporter) TaskFailed(task string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
	r.errs = append(r.errs, err)
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}

// fixedType assigns every particle the same type.
type fixedType int

func (f fixedType) Type(_, _ components.Vec3, _, _ int, _ *rand.Rand) int { return int(f) }

func testSettings(nTypes int) components.Settings {
	return components.Settings{
		DT:       0.02,
		RMax:     0.1,
		Friction: 0.5,
		Force:    1,
		Wrap:     true,
		Matrix:   components.NewMatrix(nTypes),
	}
}

func newTestPhysics(nTypes int) *Physics {
	return NewPhysics(testSettings(nTypes), nTypes, nil, nil, nil, 1)
}

// populate replaces the population with counts[t] particles of type t, each
// with a distinct position and velocity.
func populate(p *Physics, counts []int) {
	p.Particles = p.Particles[:0]
	for t, c := range counts {
		for k := 0; k < c; k++ {
			i := float64(len(p.Particles))
			p.Particles = append(p.Particles, components.Particle{
				Position: components.Vec3{X: i, Y: -i},
				Velocity: components.Vec3{X: i / 2, Y: i / 3},
				Type:     t,
			})
		}
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before timeout")
		}
		time.Sleep(time.Millisecond)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
