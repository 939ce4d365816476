package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/Yousifus/particle-life-app-sub000/components"
	"github.com/Yousifus/particle-life-app-sub000/sim"
	"github.com/Yousifus/particle-life-app-sub000/systems"
)

// View mirrors the latest snapshot into an ECS world. Entity i holds
// particle i of the snapshot it was last synced from.
type View struct {
	world *ecs.World

	mapper *ecs.Map3[components.Position, components.Velocity, components.Species]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Species]

	posMap     *ecs.Map1[components.Position]
	velMap     *ecs.Map1[components.Velocity]
	speciesMap *ecs.Map1[components.Species]

	entities  []ecs.Entity
	typeCount []int
	wrap      bool
}

// NewView creates an empty view.
func NewView() *View {
	world := ecs.NewWorld()
	return &View{
		world:      world,
		mapper:     ecs.NewMap3[components.Position, components.Velocity, components.Species](world),
		filter:     ecs.NewFilter3[components.Position, components.Velocity, components.Species](world),
		posMap:     ecs.NewMap1[components.Position](world),
		velMap:     ecs.NewMap1[components.Velocity](world),
		speciesMap: ecs.NewMap1[components.Species](world),
	}
}

// Sync makes the world match s, creating or removing entities as the
// particle count changes.
func (v *View) Sync(s *sim.Snapshot) {
	n := s.ParticleCount

	for len(v.entities) > n {
		last := len(v.entities) - 1
		v.world.RemoveEntity(v.entities[last])
		v.entities = v.entities[:last]
	}

	for i, e := range v.entities {
		pos := v.posMap.Get(e)
		vel := v.velMap.Get(e)
		sp := v.speciesMap.Get(e)
		*pos = toPosition(s.Positions[i])
		*vel = toVelocity(s.Velocities[i])
		sp.Type = uint16(s.Types[i])
	}

	for i := len(v.entities); i < n; i++ {
		pos := toPosition(s.Positions[i])
		vel := toVelocity(s.Velocities[i])
		sp := components.Species{Type: uint16(s.Types[i])}
		v.entities = append(v.entities, v.mapper.NewEntity(&pos, &vel, &sp))
	}

	v.typeCount = append(v.typeCount[:0], s.TypeCount...)
	v.wrap = s.Settings.Wrap
}

// Len returns the number of mirrored particles.
func (v *View) Len() int {
	return len(v.entities)
}

// TypeCount returns the histogram of the last synced snapshot.
func (v *View) TypeCount() []int {
	return v.typeCount
}

// Each calls fn for every mirrored particle.
func (v *View) Each(fn func(pos components.Position, vel components.Velocity, typ int)) {
	query := v.filter.Query()
	for query.Next() {
		pos, vel, sp := query.Get()
		fn(*pos, *vel, int(sp.Type))
	}
}

// CountWithin returns how many particles lie within radius of (x, y),
// measuring across the world edges when the snapshot wraps.
func (v *View) CountWithin(x, y, radius float64) int {
	r2 := radius * radius
	count := 0
	query := v.filter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		dx := float64(pos.X) - x
		dy := float64(pos.Y) - y
		if v.wrap {
			dx = systems.ToroidalDelta(x, float64(pos.X))
			dy = systems.ToroidalDelta(y, float64(pos.Y))
		}
		if dx*dx+dy*dy <= r2 {
			count++
		}
	}
	return count
}

func toPosition(p components.Vec3) components.Position {
	return components.Position{X: float32(p.X), Y: float32(p.Y)}
}

func toVelocity(v components.Vec3) components.Velocity {
	return components.Velocity{X: float32(v.X), Y: float32(v.Y)}
}
