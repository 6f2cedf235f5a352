package factory

import (
	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/yohamta/donburi"
)

// SpawnParams is the physical initial state of a body. A nil Mass spawns a
// static body.
type SpawnParams struct {
	Pos         gamemath.Vec2
	Collider    components.ColliderData
	Mass        *float32
	Restitution float32
	Vel         gamemath.Vec2
	Z           float32
}

// Mass is a helper for SpawnParams.Mass.
func Mass(m float32) *float32 { return &m }

func applyBody(e *donburi.Entry, p SpawnParams) {
	components.Pos.SetValue(e, p.Pos)
	components.Collider.SetValue(e, p.Collider)
	components.Restitution.SetValue(e, p.Restitution)
	components.Transform.SetValue(e, components.TransformData{Translation: p.Pos.Extend(p.Z)})

	if !e.HasComponent(components.Mass) {
		return
	}
	mass := float32(1)
	if p.Mass != nil {
		mass = *p.Mass
	}
	components.Mass.SetValue(e, mass)
	components.PrevPos.SetValue(e, p.Pos)
	components.Vel.SetValue(e, p.Vel)
	components.PreSolveVel.SetValue(e, p.Vel)
	half := p.Collider.HalfExtents()
	components.Aabb.SetValue(e, components.AabbData{Min: p.Pos.Sub(half), Max: p.Pos.Add(half)})
}
