package physics

import (
	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/yohamta/donburi"
)

type narrowPhase func(posA gamemath.Vec2, a components.ColliderData, posB gamemath.Vec2, b components.ColliderData) (Contact, bool)

func circleCircle(posA gamemath.Vec2, a components.ColliderData, posB gamemath.Vec2, b components.ColliderData) (Contact, bool) {
	return CircleCircle(posA, a.Radius, posB, b.Radius)
}

func circleBox(posA gamemath.Vec2, a components.ColliderData, posB gamemath.Vec2, b components.ColliderData) (Contact, bool) {
	return CircleBox(posA, a.Radius, posB, b.Size)
}

func boxBox(posA gamemath.Vec2, a components.ColliderData, posB gamemath.Vec2, b components.ColliderData) (Contact, bool) {
	return BoxBox(posA, a.Size, posB, b.Size)
}

// SolvePositions runs the five position passes in their fixed order. Every
// correction is applied before the next pair is tested.
func SolvePositions(s *sim.State) {
	solveDynamic(s, components.ColliderCircle, components.ColliderCircle, circleCircle)
	solveDynamic(s, components.ColliderBox, components.ColliderBox, boxBox)

	dyn := dynamics(s)
	stat := statics(s)
	solveStatic(s, dyn, stat, components.ColliderCircle, components.ColliderCircle, circleCircle)
	solveStatic(s, dyn, stat, components.ColliderCircle, components.ColliderBox, circleBox)
	solveStatic(s, dyn, stat, components.ColliderBox, components.ColliderBox, boxBox)
}

// body looks up an entity's position and collider. A missing entity or
// component means the pair is skipped.
func body(s *sim.State, id components.RollbackID) (*donburi.Entry, bool) {
	e, ok := s.Lookup(id)
	if !ok || !e.HasComponent(components.Pos) || !e.HasComponent(components.Collider) {
		return nil, false
	}
	return e, true
}

func solveDynamic(s *sim.State, kindA, kindB components.ColliderKind, test narrowPhase) {
	for _, p := range s.Pairs {
		a, okA := body(s, p.A)
		b, okB := body(s, p.B)
		if !okA || !okB || !a.HasComponent(components.Mass) || !b.HasComponent(components.Mass) {
			continue
		}
		colA, colB := components.Collider.GetValue(a), components.Collider.GetValue(b)
		if colA.Kind != kindA || colB.Kind != kindB {
			continue
		}
		posA, posB := components.Pos.Get(a), components.Pos.Get(b)
		c, hit := test(*posA, colA, *posB, colB)
		if !hit {
			continue
		}

		wA := 1 / components.Mass.GetValue(a)
		wB := 1 / components.Mass.GetValue(b)
		impulse := c.Normal.Scale(-c.Penetration / (wA + wB))
		*posA = posA.Add(impulse.Scale(wA))
		*posB = posB.Sub(impulse.Scale(wB))

		s.Contacts = append(s.Contacts, sim.Contact{A: p.A, B: p.B, Normal: c.Normal})
	}
}

func solveStatic(s *sim.State, dyn, stat []*donburi.Entry, kindA, kindB components.ColliderKind, test narrowPhase) {
	for _, a := range dyn {
		if !a.Valid() || !a.HasComponent(components.Collider) {
			continue
		}
		colA := components.Collider.GetValue(a)
		if colA.Kind != kindA {
			continue
		}
		posA := components.Pos.Get(a)
		for _, b := range stat {
			if !b.Valid() {
				continue
			}
			colB := components.Collider.GetValue(b)
			if colB.Kind != kindB {
				continue
			}
			c, hit := test(*posA, colA, components.Pos.GetValue(b), colB)
			if !hit {
				continue
			}
			*posA = posA.Sub(c.Normal.Scale(c.Penetration))
			s.StaticContacts = append(s.StaticContacts, sim.Contact{
				A:      components.Rollback.GetValue(a),
				B:      components.Rollback.GetValue(b),
				Normal: c.Normal,
			})
		}
	}
}

// SolveVelocities applies restitution over this frame's contacts, dynamic
// pairs first.
func SolveVelocities(s *sim.State) {
	for _, c := range s.Contacts {
		a, okA := s.Lookup(c.A)
		b, okB := s.Lookup(c.B)
		if !okA || !okB || !hasVelocityState(a) || !hasVelocityState(b) ||
			!a.HasComponent(components.Mass) || !b.HasComponent(components.Mass) {
			continue
		}
		velA, velB := components.Vel.Get(a), components.Vel.Get(b)
		preNormal := components.PreSolveVel.GetValue(a).Sub(components.PreSolveVel.GetValue(b)).Dot(c.Normal)
		normal := velA.Sub(*velB).Dot(c.Normal)
		e := restitution(a, b)

		wA := 1 / components.Mass.GetValue(a)
		wB := 1 / components.Mass.GetValue(b)
		restVel := gamemath.MinF(float32(-e*preNormal), 0)
		impulse := c.Normal.Scale((-normal + restVel) / (wA + wB))
		*velA = velA.Add(impulse.Scale(wA))
		*velB = velB.Sub(impulse.Scale(wB))
	}

	for _, c := range s.StaticContacts {
		a, okA := s.Lookup(c.A)
		b, okB := s.Lookup(c.B)
		if !okA || !okB || !hasVelocityState(a) || !b.HasComponent(components.Restitution) {
			continue
		}
		vel := components.Vel.Get(a)
		preNormal := components.PreSolveVel.GetValue(a).Dot(c.Normal)
		normal := vel.Dot(c.Normal)
		e := restitution(a, b)
		restVel := gamemath.MinF(float32(-e*preNormal), 0)
		*vel = vel.Add(c.Normal.Scale(-normal + restVel))
	}
}

func hasVelocityState(e *donburi.Entry) bool {
	return e.HasComponent(components.Vel) &&
		e.HasComponent(components.PreSolveVel) &&
		e.HasComponent(components.Restitution)
}

func restitution(a, b *donburi.Entry) float32 {
	return (components.Restitution.GetValue(a) + components.Restitution.GetValue(b)) / 2
}
