// Package components defines the particle data model shared by the simulation
// and its consumers.
package components

import "math"

// Vec3 is a double-precision vector. Particles live in the plane; Z stays zero.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Particle is one simulated particle.
// Type indexes the interaction matrix and must stay in [0, matrix size).
type Particle struct {
	Position Vec3
	Velocity Vec3
	Type     int
}
