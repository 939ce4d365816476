// Package sim owns the live particle population and the goroutine that steps
// it. Other goroutines change the population only by queuing commands and
// read it only through snapshots.
package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/Yousifus/particle-life-app-sub000/components"
)

// PositionSetter places a particle of the given type.
type PositionSetter interface {
	SetPosition(pos *components.Vec3, typ, nTypes int, rng *rand.Rand)
}

// TypeSetter picks a type in [0, nTypes) for a particle.
type TypeSetter interface {
	Type(pos, vel components.Vec3, typ, nTypes int, rng *rand.Rand) int
}

// MatrixGenerator builds a fresh interaction matrix.
type MatrixGenerator interface {
	Generate(size int, rng *rand.Rand) *components.Matrix
}

// Physics is the live simulation state.
//
// A Physics belongs to the goroutine running its Loop. Everything else
// reaches it through commands and snapshots.
type Physics struct {
	Particles []components.Particle
	Settings  components.Settings

	PositionSetter  PositionSetter
	TypeSetter      TypeSetter
	MatrixGenerator MatrixGenerator

	// PreferredThreads is the worker count for the step and for snapshots
	// that do not request their own.
	PreferredThreads int

	Rand *rand.Rand
}

// NewPhysics creates an empty population. If settings has no matrix one is
// generated with matrixSize types.
func NewPhysics(settings components.Settings, matrixSize int, pos PositionSetter, typ TypeSetter, gen MatrixGenerator, seed uint64) *Physics {
	p := &Physics{
		Settings:         settings,
		PositionSetter:   pos,
		TypeSetter:       typ,
		MatrixGenerator:  gen,
		PreferredThreads: 1,
		Rand:             rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	if p.Settings.Matrix == nil {
		p.Settings.Matrix = p.generate(max(matrixSize, 1))
	}
	return p
}

// Len returns the particle count.
func (p *Physics) Len() int {
	return len(p.Particles)
}

// TypeCount returns the per-type histogram.
func (p *Physics) TypeCount() []int {
	return countTypes(make([]int, p.Settings.MatrixSize()), p.Particles)
}

func countTypes(counts []int, particles []components.Particle) []int {
	clear(counts)
	for i := range particles {
		if t := particles[i].Type; t >= 0 && t < len(counts) {
			counts[t]++
		}
	}
	return counts
}

// SetParticleCount grows or shrinks the population to n. New particles get
// their type from the TypeSetter and their position from the PositionSetter.
// Shrinking keeps a random subset.
func (p *Physics) SetParticleCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: particle count %d", ErrInvalidArgument, n)
	}
	current := len(p.Particles)
	if n == current {
		return nil
	}

	next := make([]components.Particle, n)
	if n < current {
		p.shuffle()
		copy(next, p.Particles[:n])
	} else {
		copy(next, p.Particles)
		nTypes := p.Settings.MatrixSize()
		for i := current; i < n; i++ {
			next[i].Type = p.pickType(next[i], nTypes)
			p.place(&next[i], nTypes)
		}
	}
	p.Particles = next
	return nil
}

// SetMatrixSize changes the number of types. The new matrix comes from the
// MatrixGenerator with the overlapping block copied from the old one. When
// shrinking, particles whose type no longer exists are retyped; when growing,
// all particles are retyped so the new types get members.
func (p *Physics) SetMatrixSize(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: matrix size %d", ErrInvalidArgument, n)
	}
	old := p.Settings.Matrix
	if old != nil && old.Size() == n {
		return nil
	}

	m := p.generate(n)
	if old != nil {
		m.CopyOverlap(old)
	}
	p.Settings.Matrix = m

	if old != nil && n < old.Size() {
		for i := range p.Particles {
			if p.Particles[i].Type >= n {
				p.Particles[i].Type = p.pickType(p.Particles[i], n)
			}
		}
		return nil
	}
	p.SetTypes()
	return nil
}

// SetPositions re-places every particle and clears its velocity.
func (p *Physics) SetPositions() {
	nTypes := p.Settings.MatrixSize()
	for i := range p.Particles {
		p.place(&p.Particles[i], nTypes)
		p.Particles[i].Velocity = components.Vec3{}
	}
}

// SetTypes re-types every particle with the TypeSetter.
func (p *Physics) SetTypes() {
	nTypes := p.Settings.MatrixSize()
	for i := range p.Particles {
		p.Particles[i].Type = p.pickType(p.Particles[i], nTypes)
	}
}

// GenerateMatrix replaces the matrix with a fresh one of the same size.
func (p *Physics) GenerateMatrix() {
	p.Settings.Matrix = p.generate(max(p.Settings.MatrixSize(), 1))
}

// SetMatrixValue sets one matrix cell.
func (p *Physics) SetMatrixValue(i, j int, v float64) error {
	m := p.Settings.Matrix
	if m == nil || !m.InRange(i, j) {
		return fmt.Errorf("%w: matrix cell (%d, %d) out of range", ErrInvalidArgument, i, j)
	}
	m.Set(i, j, v)
	return nil
}

// SetMatrix replaces the matrix with a copy of m, resizing the type count
// first if needed.
func (p *Physics) SetMatrix(m *components.Matrix) error {
	if m == nil {
		return fmt.Errorf("%w: nil matrix", ErrInvalidArgument)
	}
	if err := p.SetMatrixSize(m.Size()); err != nil {
		return err
	}
	p.Settings.Matrix = m.Clone()
	return nil
}

// SetSettings replaces the scalar settings. The matrix is kept; use
// SetMatrix to change it.
func (p *Physics) SetSettings(s components.Settings) error {
	switch {
	case s.DT <= 0:
		return fmt.Errorf("%w: dt %v", ErrInvalidArgument, s.DT)
	case s.RMax <= 0:
		return fmt.Errorf("%w: rmax %v", ErrInvalidArgument, s.RMax)
	case s.Friction < 0 || s.Friction > 1:
		return fmt.Errorf("%w: friction %v", ErrInvalidArgument, s.Friction)
	}
	s.Matrix = p.Settings.Matrix
	p.Settings = s
	return nil
}

// SetPreferredThreads sets the worker count used from the next step on.
func (p *Physics) SetPreferredThreads(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: thread count %d", ErrInvalidArgument, n)
	}
	p.PreferredThreads = n
	return nil
}

func (p *Physics) shuffle() {
	ps := p.Particles
	p.Rand.Shuffle(len(ps), func(i, j int) { ps[i], ps[j] = ps[j], ps[i] })
}

func (p *Physics) place(pt *components.Particle, nTypes int) {
	if p.PositionSetter == nil {
		pt.Position = components.Vec3{X: p.Rand.Float64()*2 - 1, Y: p.Rand.Float64()*2 - 1}
		return
	}
	p.PositionSetter.SetPosition(&pt.Position, pt.Type, nTypes, p.Rand)
}

func (p *Physics) pickType(pt components.Particle, nTypes int) int {
	if nTypes < 1 {
		return 0
	}
	if p.TypeSetter == nil {
		return p.Rand.IntN(nTypes)
	}
	t := p.TypeSetter.Type(pt.Position, pt.Velocity, pt.Type, nTypes, p.Rand)
	if t < 0 || t >= nTypes {
		// wrap out-of-range results into [0, nTypes)
		t = ((t % nTypes) + nTypes) % nTypes
	}
	return t
}

func (p *Physics) generate(size int) *components.Matrix {
	if p.MatrixGenerator == nil {
		return components.NewMatrix(size)
	}
	m := p.MatrixGenerator.Generate(size, p.Rand)
	if m == nil || m.Size() != size {
		return components.NewMatrix(size)
	}
	return m
}
