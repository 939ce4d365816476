package systems

import (
	"math"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"

	"github.com/Yousifus/particle-life-app-sub000/components"
)

// UniformPositions spreads particles evenly over the world.
type UniformPositions struct{}

func (UniformPositions) SetPosition(pos *components.Vec3, _, _ int, rng *rand.Rand) {
	*pos = components.Vec3{X: uniform(rng), Y: uniform(rng)}
}

// CenteredPositions clusters particles around the origin.
type CenteredPositions struct{}

func (CenteredPositions) SetPosition(pos *components.Vec3, _, _ int, rng *rand.Rand) {
	*pos = components.Vec3{
		X: clampFloat(rng.NormFloat64()*0.3, WorldMin, WorldMax),
		Y: clampFloat(rng.NormFloat64()*0.3, WorldMin, WorldMax),
	}
}

// DiskPositions fills a disk of radius 0.9 uniformly.
type DiskPositions struct{}

func (DiskPositions) SetPosition(pos *components.Vec3, _, _ int, rng *rand.Rand) {
	r := 0.9 * math.Sqrt(rng.Float64())
	*pos = polar(r, rng.Float64()*2*math.Pi)
}

// RingPositions places each type on its own thin ring.
type RingPositions struct{}

func (RingPositions) SetPosition(pos *components.Vec3, typ, nTypes int, rng *rand.Rand) {
	base := 0.7
	if nTypes > 1 {
		base = 0.3 + 0.6*float64(typ)/float64(nTypes-1)
	}
	r := clampFloat(base+rng.NormFloat64()*0.02, 0, 1)
	*pos = polar(r, rng.Float64()*2*math.Pi)
}

// NoisePositions samples positions where a Perlin noise field is high, giving
// every type its own patchy layout.
type NoisePositions struct {
	noise     *perlin.Perlin
	Frequency float64
	Threshold float64 // in [-1, 1]; higher means sparser patches
}

// NewNoisePositions creates a noise setter. The field depends only on seed.
func NewNoisePositions(seed int64) *NoisePositions {
	return &NoisePositions{
		noise:     perlin.NewPerlin(2, 2, 3, seed),
		Frequency: 2.5,
		Threshold: 0.1,
	}
}

// maxNoiseTries bounds the rejection sampling per particle.
const maxNoiseTries = 32

func (n *NoisePositions) SetPosition(pos *components.Vec3, typ, _ int, rng *rand.Rand) {
	offset := float64(typ) * 17.31
	x, y := uniform(rng), uniform(rng)
	for try := 0; try < maxNoiseTries; try++ {
		if n.noise.Noise2D(x*n.Frequency+offset, y*n.Frequency) > n.Threshold {
			break
		}
		x, y = uniform(rng), uniform(rng)
	}
	*pos = components.Vec3{X: x, Y: y}
}

func uniform(rng *rand.Rand) float64 {
	return WorldMin + rng.Float64()*WorldSize
}

func polar(r, angle float64) components.Vec3 {
	return components.Vec3{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
}
