package systems

import (
	"math/rand/v2"

	"github.com/Yousifus/particle-life-app-sub000/components"
)

// RandomMatrix fills every cell uniformly in [-1, 1).
type RandomMatrix struct{}

func (RandomMatrix) Generate(size int, rng *rand.Rand) *components.Matrix {
	m := components.NewMatrix(size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			m.Set(i, j, rng.Float64()*2-1)
		}
	}
	return m
}

// SymmetricMatrix is random with m(i, j) == m(j, i).
type SymmetricMatrix struct{}

func (SymmetricMatrix) Generate(size int, rng *rand.Rand) *components.Matrix {
	m := components.NewMatrix(size)
	for i := 0; i < size; i++ {
		for j := i; j < size; j++ {
			v := rng.Float64()*2 - 1
			m.Set(i, j, v)
			m.Set(j, i, v)
		}
	}
	return m
}

// ChainsMatrix makes each type attract itself and its two neighbors in type
// order, which tends to form chains.
type ChainsMatrix struct{}

func (ChainsMatrix) Generate(size int, _ *rand.Rand) *components.Matrix {
	m := components.NewMatrix(size)
	for i := 0; i < size; i++ {
		m.Set(i, i, 1)
		if size > 1 {
			m.Set(i, (i+1)%size, 0.2)
			m.Set(i, (i+size-1)%size, 0.2)
		}
	}
	return m
}

// ZeroMatrix leaves only the short-range repulsion.
type ZeroMatrix struct{}

func (ZeroMatrix) Generate(size int, _ *rand.Rand) *components.Matrix {
	return components.NewMatrix(size)
}
