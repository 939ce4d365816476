package systems

import (
	"fmt"

	"github.com/Yousifus/particle-life-app-sub000/sim"
)

// Info describes a collaborator for UI display.
type Info struct {
	ID          string // Identifier used in config files
	Name        string // Display name
	Description string
}

// Registry maps collaborator IDs to constructors.
// This centralizes naming so config validation and the UI stay in sync.
type Registry struct {
	seed int64

	positions []Info
	types     []Info
	matrices  []Info
}

// NewRegistry creates a registry with all known collaborators. seed feeds
// the collaborators that keep their own noise state.
func NewRegistry(seed int64) *Registry {
	return &Registry{
		seed: seed,
		positions: []Info{
			{ID: "uniform", Name: "Uniform", Description: "Evenly over the world"},
			{ID: "centered", Name: "Centered", Description: "Gaussian cluster at the origin"},
			{ID: "disk", Name: "Disk", Description: "Filled disk"},
			{ID: "ring", Name: "Rings", Description: "One ring per type"},
			{ID: "noise", Name: "Noise", Description: "Perlin noise patches per type"},
		},
		types: []Info{
			{ID: "random", Name: "Random", Description: "Equal probability"},
			{ID: "slices", Name: "Slices", Description: "Vertical bands"},
			{ID: "layers", Name: "Layers", Description: "Concentric layers"},
		},
		matrices: []Info{
			{ID: "random", Name: "Random", Description: "Uniform in [-1, 1)"},
			{ID: "symmetric", Name: "Symmetric", Description: "Random, mutual attraction"},
			{ID: "chains", Name: "Chains", Description: "Self and neighbor attraction"},
			{ID: "zero", Name: "Zero", Description: "Repulsion only"},
		},
	}
}

// PositionSetters lists the position collaborators in display order.
func (r *Registry) PositionSetters() []Info { return r.positions }

// TypeSetters lists the type collaborators in display order.
func (r *Registry) TypeSetters() []Info { return r.types }

// MatrixGenerators lists the matrix collaborators in display order.
func (r *Registry) MatrixGenerators() []Info { return r.matrices }

// PositionSetter returns the position collaborator with the given ID.
func (r *Registry) PositionSetter(id string) (sim.PositionSetter, error) {
	switch id {
	case "uniform":
		return UniformPositions{}, nil
	case "centered":
		return CenteredPositions{}, nil
	case "disk":
		return DiskPositions{}, nil
	case "ring":
		return RingPositions{}, nil
	case "noise":
		return NewNoisePositions(r.seed), nil
	}
	return nil, fmt.Errorf("unknown position setter %q", id)
}

// TypeSetter returns the type collaborator with the given ID.
func (r *Registry) TypeSetter(id string) (sim.TypeSetter, error) {
	switch id {
	case "random":
		return RandomTypes{}, nil
	case "slices":
		return SliceTypes{}, nil
	case "layers":
		return LayerTypes{}, nil
	}
	return nil, fmt.Errorf("unknown type setter %q", id)
}

// MatrixGenerator returns the matrix collaborator with the given ID.
func (r *Registry) MatrixGenerator(id string) (sim.MatrixGenerator, error) {
	switch id {
	case "random":
		return RandomMatrix{}, nil
	case "symmetric":
		return SymmetricMatrix{}, nil
	case "chains":
		return ChainsMatrix{}, nil
	case "zero":
		return ZeroMatrix{}, nil
	}
	return nil, fmt.Errorf("unknown matrix generator %q", id)
}
