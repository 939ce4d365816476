package systems

import (
	"math"
	"math/rand/v2"

	"github.com/Yousifus/particle-life-app-sub000/components"
)

// RandomTypes picks every type with equal probability.
type RandomTypes struct{}

func (RandomTypes) Type(_, _ components.Vec3, _, nTypes int, rng *rand.Rand) int {
	return rng.IntN(nTypes)
}

// SliceTypes assigns types by vertical slices of the world.
type SliceTypes struct{}

func (SliceTypes) Type(pos, _ components.Vec3, _, nTypes int, _ *rand.Rand) int {
	return clampIndex(int((pos.X-WorldMin)/WorldSize*float64(nTypes)), nTypes)
}

// LayerTypes assigns types by distance from the origin.
type LayerTypes struct{}

func (LayerTypes) Type(pos, _ components.Vec3, _, nTypes int, _ *rand.Rand) int {
	r := math.Hypot(pos.X, pos.Y) / math.Sqrt2
	return clampIndex(int(r*float64(nTypes)), nTypes)
}
