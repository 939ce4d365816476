package sim

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/Yousifus/particle-life-app-sub000/components"
)

type constMatrix float64

func (c constMatrix) Generate(size int, _ *rand.Rand) *components.Matrix {
	m := components.NewMatrix(size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			m.Set(i, j, float64(c))
		}
	}
	return m
}

type originPositions struct{}

func (originPositions) SetPosition(pos *components.Vec3, _, _ int, _ *rand.Rand) {
	*pos = components.Vec3{}
}

func TestNewPhysicsGeneratesMatrix(t *testing.T) {
	s := testSettings(1)
	s.Matrix = nil
	p := NewPhysics(s, 4, nil, nil, constMatrix(0.5), 1)

	if p.Settings.MatrixSize() != 4 {
		t.Fatalf("matrix size = %d, want 4", p.Settings.MatrixSize())
	}
	if p.Settings.Matrix.Get(3, 2) != 0.5 {
		t.Errorf("matrix not from generator")
	}
	if p.Len() != 0 {
		t.Errorf("new physics has %d particles", p.Len())
	}
}

func TestSetParticleCount(t *testing.T) {
	p := NewPhysics(testSettings(3), 3, originPositions{}, fixedType(2), nil, 1)

	if err := p.SetParticleCount(100); err != nil {
		t.Fatal(err)
	}
	if got := p.TypeCount(); !equalInts(got, []int{0, 0, 100}) {
		t.Errorf("histogram = %v", got)
	}
	for _, pt := range p.Particles {
		if pt.Position != (components.Vec3{}) {
			t.Fatalf("new particle not placed by the position setter: %+v", pt.Position)
		}
	}

	populate(p, []int{10, 20, 30})
	if err := p.SetParticleCount(25); err != nil {
		t.Fatal(err)
	}
	if p.Len() != 25 {
		t.Errorf("Len() = %d, want 25", p.Len())
	}

	if err := p.SetParticleCount(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative count: got %v", err)
	}
	if p.Len() != 25 {
		t.Error("invalid count mutated the population")
	}
}

func TestSetMatrixSizeShrinkRetypesOutOfRange(t *testing.T) {
	p := newTestPhysics(4)
	p.Settings.Matrix.Set(1, 1, 0.7)
	populate(p, []int{5, 5, 5, 5})

	if err := p.SetMatrixSize(2); err != nil {
		t.Fatal(err)
	}
	if p.Settings.MatrixSize() != 2 {
		t.Fatalf("matrix size = %d", p.Settings.MatrixSize())
	}
	if p.Settings.Matrix.Get(1, 1) != 0.7 {
		t.Error("overlapping cell not kept")
	}
	for _, pt := range p.Particles {
		if pt.Type < 0 || pt.Type >= 2 {
			t.Fatalf("type %d out of range after shrink", pt.Type)
		}
	}
	if got := p.TypeCount(); got[0]+got[1] != 20 {
		t.Errorf("histogram %v does not cover all particles", got)
	}
}

func TestSetMatrixSizeGrow(t *testing.T) {
	p := NewPhysics(testSettings(2), 2, nil, fixedType(4), constMatrix(0.25), 1)
	p.Settings.Matrix.Set(0, 1, -1)
	populate(p, []int{5, 5})

	if err := p.SetMatrixSize(5); err != nil {
		t.Fatal(err)
	}
	m := p.Settings.Matrix
	if m.Get(0, 1) != -1 {
		t.Error("overlapping cell not kept")
	}
	if m.Get(4, 4) != 0.25 {
		t.Error("new cells not from generator")
	}
	if got := p.TypeCount(); got[4] != 10 {
		t.Errorf("grow did not retype all particles: %v", got)
	}

	if err := p.SetMatrixSize(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("size 0: got %v", err)
	}
}

func TestSetMatrixValue(t *testing.T) {
	p := newTestPhysics(3)

	if err := p.SetMatrixValue(2, 0, 0.9); err != nil {
		t.Fatal(err)
	}
	if p.Settings.Matrix.Get(2, 0) != 0.9 {
		t.Error("value not set")
	}
	for _, ij := range [][2]int{{3, 0}, {0, -1}} {
		if err := p.SetMatrixValue(ij[0], ij[1], 1); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("SetMatrixValue(%d, %d): got %v", ij[0], ij[1], err)
		}
	}
}

func TestSetMatrixCopiesAndResizes(t *testing.T) {
	p := newTestPhysics(2)
	populate(p, []int{3, 3})

	m := components.NewMatrix(3)
	m.Set(2, 2, 1)
	if err := p.SetMatrix(m); err != nil {
		t.Fatal(err)
	}
	m.Set(2, 2, -1)

	if p.Settings.MatrixSize() != 3 || p.Settings.Matrix.Get(2, 2) != 1 {
		t.Error("matrix not copied")
	}
	if err := p.SetMatrix(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil matrix: got %v", err)
	}
}

func TestSetSettingsKeepsMatrix(t *testing.T) {
	p := newTestPhysics(3)
	m := p.Settings.Matrix

	s := testSettings(1)
	s.RMax = 0.3
	if err := p.SetSettings(s); err != nil {
		t.Fatal(err)
	}
	if p.Settings.RMax != 0.3 || p.Settings.Matrix != m {
		t.Errorf("settings = %+v", p.Settings)
	}

	s.Friction = 2
	if err := p.SetSettings(s); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("friction 2: got %v", err)
	}
}

func TestSetPositionsClearsVelocity(t *testing.T) {
	p := NewPhysics(testSettings(2), 2, originPositions{}, nil, nil, 1)
	populate(p, []int{4, 4})

	p.SetPositions()
	for _, pt := range p.Particles {
		if pt.Position != (components.Vec3{}) || pt.Velocity != (components.Vec3{}) {
			t.Fatalf("particle not reset: %+v", pt)
		}
	}
}

func TestCommandsApply(t *testing.T) {
	p := newTestPhysics(2)
	cmds := []Command{
		SetParticleCount{N: 20},
		SetMatrixSize{Size: 3},
		SetTypeCount{Target: []int{5, 5, 5}},
		EqualizeTypes{},
		ToggleWrap{},
		RandomizePositions{},
		RandomizeTypes{},
		RandomizeMatrix{},
		SetPreferredThreads{N: 3},
		SetTypeSetter{Setter: fixedType(1)},
		RandomizeTypes{},
	}
	for _, c := range cmds {
		if err := c.Apply(p); err != nil {
			t.Fatalf("%T: %v", c, err)
		}
	}

	if p.Len() != 15 || p.Settings.Wrap || p.PreferredThreads != 3 {
		t.Errorf("unexpected state: len=%d wrap=%v threads=%d", p.Len(), p.Settings.Wrap, p.PreferredThreads)
	}
	if got := p.TypeCount(); !equalInts(got, []int{0, 15, 0}) {
		t.Errorf("histogram = %v", got)
	}
	if err := (SetPreferredThreads{N: 0}).Apply(p); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero threads: got %v", err)
	}
}
