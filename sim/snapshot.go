package sim

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Yousifus/particle-life-app-sub000/components"
	"github.com/Yousifus/particle-life-app-sub000/parallel"
)

// Snapshot is a copy of the live state for one frame. Index i of Positions,
// Velocities and Types describes the same particle.
type Snapshot struct {
	Positions     []components.Vec3
	Velocities    []components.Vec3
	Types         []int
	Settings      components.Settings
	ParticleCount int
	TypeCount     []int
	Time          time.Time
}

// Take copies p into s, reusing s's arrays when they are large enough.
// It must run on the simulation goroutine. The particle copy is split across
// workers goroutines of d.
func (s *Snapshot) Take(p *Physics, d *parallel.Distributor, workers int) error {
	n := len(p.Particles)
	s.Positions = resize(s.Positions, n)
	s.Velocities = resize(s.Velocities, n)
	s.Types = resize(s.Types, n)

	src := p.Particles
	pos, vel, types := s.Positions, s.Velocities, s.Types
	err := d.Run(n, workers, func(start, end int) {
		for i := start; i < end; i++ {
			pos[i] = src[i].Position
			vel[i] = src[i].Velocity
			types[i] = src[i].Type
		}
	})
	if err != nil {
		return fmt.Errorf("copying particles: %w", err)
	}

	s.Settings = p.Settings.DeepCopy()
	s.ParticleCount = n
	s.TypeCount = resize(s.TypeCount, s.Settings.MatrixSize())
	clear(s.TypeCount)
	for _, t := range types {
		if t >= 0 && t < len(s.TypeCount) {
			s.TypeCount[t]++
		}
	}
	s.Time = time.Now()
	return nil
}

// Age returns how long ago the snapshot was taken.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.Time)
}

func resize[T any](s []T, n int) []T {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]T, n)
}

// Exchange hands snapshots from the simulation goroutine to one consumer.
//
// The producer publishes by storing the snapshot and then raising the ready
// flag. The consumer polls the flag once per frame.
type Exchange struct {
	latest atomic.Pointer[Snapshot]
	ready  atomic.Bool
	spare  atomic.Pointer[Snapshot]
}

// NewExchange creates an empty exchange.
func NewExchange() *Exchange {
	return &Exchange{}
}

// Publish makes s the latest snapshot. s must not be written afterwards.
func (e *Exchange) Publish(s *Snapshot) {
	e.latest.Store(s)
	e.ready.Store(true)
}

// Poll returns the latest snapshot and clears the ready flag if a snapshot
// was published since the last Poll.
func (e *Exchange) Poll() (*Snapshot, bool) {
	if !e.ready.CompareAndSwap(true, false) {
		return nil, false
	}
	return e.latest.Load(), true
}

// Latest returns the last published snapshot, or nil, without touching the
// ready flag.
func (e *Exchange) Latest() *Snapshot {
	return e.latest.Load()
}

// Release gives a consumed snapshot back so a later Take can reuse its
// arrays. The caller must not read s afterwards. The latest snapshot is
// never recycled.
func (e *Exchange) Release(s *Snapshot) {
	if s == nil || s == e.latest.Load() {
		return
	}
	e.spare.Store(s)
}

// acquire returns a released snapshot or a new one.
func (e *Exchange) acquire() *Snapshot {
	if s := e.spare.Swap(nil); s != nil {
		return s
	}
	return &Snapshot{}
}

// TakeSnapshot is the command that takes and publishes a snapshot.
// Register it with DoOnce so repeated requests within a tick coalesce.
type TakeSnapshot struct {
	Exchange    *Exchange
	Distributor *parallel.Distributor
	Workers     int // PreferredThreads if zero
}

func (c TakeSnapshot) Apply(p *Physics) error {
	workers := c.Workers
	if workers <= 0 {
		workers = p.PreferredThreads
	}
	s := c.Exchange.acquire()
	if err := s.Take(p, c.Distributor, workers); err != nil {
		c.Exchange.Release(s)
		return fmt.Errorf("taking snapshot: %w", err)
	}
	c.Exchange.Publish(s)
	return nil
}
