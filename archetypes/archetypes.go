package archetypes

import (
	"slices"

	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/automoto/janitors-nightmare/tags"
	"github.com/yohamta/donburi"
)

var body = []donburi.IComponentType{
	components.Pos,
	components.Collider,
	components.Restitution,
	components.Transform,
}

var dynamicBody = slices.Concat(body, []donburi.IComponentType{
	components.PrevPos,
	components.Vel,
	components.PreSolveVel,
	components.Mass,
	components.Aabb,
})

var (
	Solid = newArchetype(slices.Concat(body, []donburi.IComponentType{
		tags.RoundEntity,
		tags.Ground,
	})...)
	Attacker = newArchetype(slices.Concat(dynamicBody, []donburi.IComponentType{
		tags.RoundEntity,
		components.Attacker,
		components.AttackerState,
		components.AttackerControls,
		components.Facing,
		components.Checksum,
	})...)
	Defender = newArchetype(
		tags.RoundEntity,
		components.Defender,
		components.DefenderState,
		components.DefenderControls,
		components.Facing,
		components.Pos,
		components.Transform,
		components.Checksum,
	)
	Crosshair = newArchetype(
		tags.RoundEntity,
		components.Crosshair,
		components.Pos,
		components.Transform,
		components.Checksum,
	)
	Cake = newArchetype(slices.Concat(dynamicBody, []donburi.IComponentType{
		tags.RoundEntity,
		components.Cake,
		components.Checksum,
	})...)
	Splat = newArchetype(
		tags.RoundEntity,
		components.Splat,
		components.Pos,
		components.Transform,
		components.Checksum,
	)
	Banner = newArchetype(
		tags.Interlude,
		components.Banner,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(s *sim.State, cs ...donburi.IComponentType) *donburi.Entry {
	return s.Spawn(slices.Concat(a.components, cs)...)
}
