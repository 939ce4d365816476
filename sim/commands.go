package sim

import "github.com/Yousifus/particle-life-app-sub000/components"

// SetParticleCount resizes the population.
type SetParticleCount struct{ N int }

func (c SetParticleCount) Apply(p *Physics) error { return p.SetParticleCount(c.N) }

// SetTypeCount reshapes the per-type histogram.
type SetTypeCount struct{ Target []int }

func (c SetTypeCount) Apply(p *Physics) error { return p.SetTypeCount(c.Target) }

// EqualizeTypes spreads particles evenly over all types.
type EqualizeTypes struct{}

func (EqualizeTypes) Apply(p *Physics) error { return p.SetTypeCountEqual() }

// SetMatrixSize changes the number of types.
type SetMatrixSize struct{ Size int }

func (c SetMatrixSize) Apply(p *Physics) error { return p.SetMatrixSize(c.Size) }

// SetMatrixValue edits one matrix cell.
type SetMatrixValue struct {
	I, J  int
	Value float64
}

func (c SetMatrixValue) Apply(p *Physics) error { return p.SetMatrixValue(c.I, c.J, c.Value) }

// SetMatrix replaces the whole matrix.
type SetMatrix struct{ Matrix *components.Matrix }

func (c SetMatrix) Apply(p *Physics) error { return p.SetMatrix(c.Matrix) }

// SetSettings replaces the scalar settings.
type SetSettings struct{ Settings components.Settings }

func (c SetSettings) Apply(p *Physics) error { return p.SetSettings(c.Settings) }

// ToggleWrap flips the boundary mode.
type ToggleWrap struct{}

func (ToggleWrap) Apply(p *Physics) error {
	p.Settings.Wrap = !p.Settings.Wrap
	return nil
}

// RandomizePositions re-places all particles.
type RandomizePositions struct{}

func (RandomizePositions) Apply(p *Physics) error {
	p.SetPositions()
	return nil
}

// RandomizeTypes re-types all particles.
type RandomizeTypes struct{}

func (RandomizeTypes) Apply(p *Physics) error {
	p.SetTypes()
	return nil
}

// RandomizeMatrix regenerates the matrix.
type RandomizeMatrix struct{}

func (RandomizeMatrix) Apply(p *Physics) error {
	p.GenerateMatrix()
	return nil
}

// SetPreferredThreads changes the worker count.
type SetPreferredThreads struct{ N int }

func (c SetPreferredThreads) Apply(p *Physics) error { return p.SetPreferredThreads(c.N) }

// SetPositionSetter swaps the position collaborator.
type SetPositionSetter struct{ Setter PositionSetter }

func (c SetPositionSetter) Apply(p *Physics) error {
	p.PositionSetter = c.Setter
	return nil
}

// SetTypeSetter swaps the type collaborator.
type SetTypeSetter struct{ Setter TypeSetter }

func (c SetTypeSetter) Apply(p *Physics) error {
	p.TypeSetter = c.Setter
	return nil
}

// SetMatrixGenerator swaps the matrix collaborator.
type SetMatrixGenerator struct{ Generator MatrixGenerator }

func (c SetMatrixGenerator) Apply(p *Physics) error {
	p.MatrixGenerator = c.Generator
	return nil
}
