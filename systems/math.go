package systems

import "math"

// The world is the square [WorldMin, WorldMax) on both axes.
const (
	WorldMin  = -1.0
	WorldMax  = 1.0
	WorldSize = WorldMax - WorldMin
)

// clampFloat clamps v between minVal and maxVal.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clampIndex clamps an index to [0, n).
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// wrapCoord maps v into [WorldMin, WorldMax).
func wrapCoord(v float64) float64 {
	v = math.Mod(v-WorldMin, WorldSize)
	if v < 0 {
		v += WorldSize
	}
	return v + WorldMin
}

// ToroidalDelta returns the shortest delta from a to b on one wrapped axis.
func ToroidalDelta(a, b float64) float64 {
	d := b - a
	if d > WorldSize/2 {
		d -= WorldSize
	} else if d < -WorldSize/2 {
		d += WorldSize
	}
	return d
}
