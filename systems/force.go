package systems

import (
	"math"

	"github.com/Yousifus/particle-life-app-sub000/components"
	"github.com/Yousifus/particle-life-app-sub000/parallel"
	"github.com/Yousifus/particle-life-app-sub000/sim"
)

// ReferenceDT is the step length Settings.Friction is expressed against.
const ReferenceDT = 0.02

// DefaultBeta is the normalized distance below which particles repel
// regardless of the matrix.
const DefaultBeta = 0.3

// Force returns the force factor between two particles at normalized distance
// r (distance / rmax) when the first is attracted to the second with strength a.
func Force(r, a, beta float64) float64 {
	switch {
	case r < beta:
		return r/beta - 1
	case r < 1:
		return a * (1 - math.Abs(2*r-1-beta)/(1-beta))
	}
	return 0
}

// ForceStep is the default step function. It evaluates the particle-life
// force law over a spatial grid and splits the work across a Distributor.
// It runs on the simulation goroutine only.
type ForceStep struct {
	physics     *sim.Physics
	distributor *parallel.Distributor

	AutoDT bool    // use the real elapsed time instead of Settings.DT
	MaxDT  float64 // upper bound for the elapsed time, 0 = none
	Beta   float64

	grid     *SpatialGrid
	gridRMax float64
	next     []components.Vec3 // velocities computed this step
}

// NewForceStep creates the step for p. d must not be shared with another
// goroutine calling Run.
func NewForceStep(p *sim.Physics, d *parallel.Distributor, autoDT bool) *ForceStep {
	return &ForceStep{
		physics:     p,
		distributor: d,
		AutoDT:      autoDT,
		MaxDT:       0.1,
		Beta:        DefaultBeta,
	}
}

// Step advances the population. A failing chunk panics with the
// *parallel.ChunkPanic; the loop recovers and reports it.
func (s *ForceStep) Step(dt float64) {
	p := s.physics
	set := p.Settings
	if !s.AutoDT || dt <= 0 {
		dt = set.DT
	}
	if s.MaxDT > 0 && dt > s.MaxDT {
		dt = s.MaxDT
	}

	n := len(p.Particles)
	if n == 0 || set.Matrix == nil {
		return
	}

	if s.grid == nil || s.gridRMax != set.RMax {
		s.grid = NewSpatialGrid(set.RMax)
		s.gridRMax = set.RMax
	}
	s.grid.Rebuild(p.Particles)

	if cap(s.next) < n {
		s.next = make([]components.Vec3, n)
	}
	next := s.next[:n]
	particles := p.Particles
	workers := max(p.PreferredThreads, 1)
	retain := math.Pow(set.Friction, dt/ReferenceDT)

	err := s.distributor.Run(n, workers, func(start, end int) {
		cells := make([]int, 0, 9)
		for i := start; i < end; i++ {
			fx, fy := s.accumulate(particles, i, set, cells[:0])
			v := particles[i].Velocity.Scale(retain)
			scale := set.RMax * set.Force * dt
			next[i] = components.Vec3{X: v.X + fx*scale, Y: v.Y + fy*scale}
		}
	})
	if err != nil {
		panic(err)
	}

	err = s.distributor.Run(n, workers, func(start, end int) {
		for i := start; i < end; i++ {
			move(&particles[i], next[i], dt, set.Wrap)
		}
	})
	if err != nil {
		panic(err)
	}
}

// accumulate sums the forces on particle i from its grid neighbors.
func (s *ForceStep) accumulate(particles []components.Particle, i int, set components.Settings, cells []int) (fx, fy float64) {
	pi := &particles[i]
	m := set.Matrix
	rmax := set.RMax
	rmaxSq := rmax * rmax

	cells = s.grid.NearCells(pi.Position.X, pi.Position.Y, set.Wrap, cells)
	for _, c := range cells {
		for _, j := range s.grid.Cell(c) {
			if int(j) == i {
				continue
			}
			pj := &particles[j]
			dx := pj.Position.X - pi.Position.X
			dy := pj.Position.Y - pi.Position.Y
			if set.Wrap {
				dx = ToroidalDelta(pi.Position.X, pj.Position.X)
				dy = ToroidalDelta(pi.Position.Y, pj.Position.Y)
			}
			distSq := dx*dx + dy*dy
			if distSq == 0 || distSq >= rmaxSq {
				continue
			}
			r := math.Sqrt(distSq)
			f := Force(r/rmax, m.Get(pi.Type, pj.Type), s.Beta)
			fx += dx / r * f
			fy += dy / r * f
		}
	}
	return fx, fy
}

// move integrates one particle with velocity v and applies the boundary.
func move(pt *components.Particle, v components.Vec3, dt float64, wrap bool) {
	x := pt.Position.X + v.X*dt
	y := pt.Position.Y + v.Y*dt

	if wrap {
		x, y = wrapCoord(x), wrapCoord(y)
	} else {
		if x < WorldMin || x > WorldMax {
			v.X = -v.X
			x = clampFloat(x, WorldMin, WorldMax)
		}
		if y < WorldMin || y > WorldMax {
			v.Y = -v.Y
			y = clampFloat(y, WorldMin, WorldMax)
		}
	}

	pt.Position = components.Vec3{X: x, Y: y}
	pt.Velocity = v
}
