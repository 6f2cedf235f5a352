package physics

import (
	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Step advances the physics world by one frame. The order of the stages is
// part of the determinism contract: changing it changes results.
func Step(s *sim.State) {
	UpdateAabbs(s)
	CollectCollisionPairs(s)
	for range config.NumSubsteps {
		Integrate(s, config.SubDT)
		ClearContacts(s)
		SolvePositions(s)
		UpdateVelocities(s, config.SubDT)
		SolveVelocities(s)
	}
	SyncTransforms(s)
}

func dynamics(s *sim.State) []*donburi.Entry {
	return s.Sorted(filter.Contains(components.Pos, components.Mass))
}

func statics(s *sim.State) []*donburi.Entry {
	return s.Sorted(filter.And(
		filter.Contains(components.Pos, components.Collider),
		filter.Not(filter.Contains(components.Mass)),
	))
}

// UpdateAabbs pads every collider's bounds by how far it could travel in
// AabbVelMarginFactor seconds. Circles and boxes write disjoint entities; the
// two passes still run one after the other.
func UpdateAabbs(s *sim.State) {
	bounded := s.Sorted(filter.Contains(components.Aabb, components.Pos, components.Vel, components.Collider))
	for _, kind := range [...]components.ColliderKind{components.ColliderCircle, components.ColliderBox} {
		for _, e := range bounded {
			c := components.Collider.Get(e)
			if c.Kind != kind {
				continue
			}
			pos := components.Pos.GetValue(e)
			margin := float32(config.AabbVelMarginFactor * components.Vel.Get(e).Length())
			half := c.HalfExtents().Add(gamemath.Splat(margin))
			components.Aabb.SetValue(e, components.AabbData{Min: pos.Sub(half), Max: pos.Add(half)})
		}
	}
}

// CollectCollisionPairs is the O(n²) broad phase over everything with an
// Aabb, in rollback id order.
func CollectCollisionPairs(s *sim.State) {
	s.Pairs = s.Pairs[:0]
	bounded := s.Sorted(filter.Contains(components.Aabb))
	for i, a := range bounded {
		aabbA := components.Aabb.GetValue(a)
		for _, b := range bounded[i+1:] {
			if aabbA.Intersects(components.Aabb.GetValue(b)) {
				s.Pairs = append(s.Pairs, sim.Pair{
					A: components.Rollback.GetValue(a),
					B: components.Rollback.GetValue(b),
				})
			}
		}
	}
}

// Integrate applies gravity to every dynamic body.
func Integrate(s *sim.State, dt float32) {
	for _, e := range dynamics(s) {
		if !e.HasComponent(components.Vel) {
			continue
		}
		pos := components.Pos.Get(e)
		vel := components.Vel.Get(e)
		mass := components.Mass.GetValue(e)

		if e.HasComponent(components.PrevPos) {
			components.PrevPos.SetValue(e, *pos)
		}
		// Forces are mass-proportional; the divide stays so per-force mass
		// independence can be added later.
		force := s.Gravity.Scale(mass)
		*vel = vel.Add(force.Scale(dt).Div(mass))
		*pos = pos.Add(vel.Scale(dt))
		if e.HasComponent(components.PreSolveVel) {
			components.PreSolveVel.SetValue(e, *vel)
		}
	}
}

func ClearContacts(s *sim.State) {
	s.Contacts = s.Contacts[:0]
	s.StaticContacts = s.StaticContacts[:0]
}

// UpdateVelocities rebuilds velocity from the corrected displacement.
func UpdateVelocities(s *sim.State, dt float32) {
	for _, e := range s.Sorted(filter.Contains(components.Pos, components.PrevPos, components.Vel)) {
		pos := components.Pos.GetValue(e)
		prev := components.PrevPos.GetValue(e)
		components.Vel.SetValue(e, pos.Sub(prev).Div(dt))
	}
}

// SyncTransforms copies Pos into the render transform, keeping its depth.
func SyncTransforms(s *sim.State) {
	for _, e := range s.Sorted(filter.Contains(components.Pos, components.Transform)) {
		t := components.Transform.Get(e)
		t.Translation = components.Pos.GetValue(e).Extend(t.Translation.Z)
	}
}
