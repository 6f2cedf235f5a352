package physics

import (
	"testing"

	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/level"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func newState() *sim.State {
	cfg := config.Default()
	return sim.New(cfg, level.Default(cfg), nil)
}

func spawnStatic(s *sim.State, pos gamemath.Vec2, col components.ColliderData, restitution float32) *donburi.Entry {
	e := s.Spawn(components.Pos, components.Collider, components.Restitution, components.Transform)
	components.Pos.SetValue(e, pos)
	components.Collider.SetValue(e, col)
	components.Restitution.SetValue(e, restitution)
	components.Transform.SetValue(e, components.TransformData{Translation: pos.Extend(0)})
	return e
}

func spawnDynamic(s *sim.State, pos gamemath.Vec2, col components.ColliderData, mass, restitution float32) *donburi.Entry {
	e := s.Spawn(
		components.Pos, components.PrevPos, components.Vel, components.PreSolveVel,
		components.Mass, components.Collider, components.Aabb, components.Restitution,
		components.Transform,
	)
	components.Pos.SetValue(e, pos)
	components.PrevPos.SetValue(e, pos)
	components.Mass.SetValue(e, mass)
	components.Collider.SetValue(e, col)
	components.Restitution.SetValue(e, restitution)
	components.Transform.SetValue(e, components.TransformData{Translation: pos.Extend(3)})
	return e
}

func ground(s *sim.State) *donburi.Entry {
	solid := s.Level.Solids[0]
	return spawnStatic(s, solid.Pos, components.Box(solid.Size), 0)
}

func TestFallingBoxLandsOnGround(t *testing.T) {
	s := newState()
	ground(s)
	box := spawnDynamic(s, gamemath.Zero, components.Box(gamemath.V(12, 24)), 1, 0)

	for range 180 {
		Step(s)
	}

	pos := components.Pos.GetValue(box)
	assert.InDelta(t, -88, pos.Y, 0.01)
	assert.InDelta(t, 0, pos.X, 1e-6)
	assert.InDelta(t, 0, components.Vel.GetValue(box).Y, 0.01)

	require.Len(t, s.StaticContacts, 1)
	assert.Equal(t, components.Rollback.GetValue(box), s.StaticContacts[0].A)
	assert.Equal(t, gamemath.V(0, -1), s.StaticContacts[0].Normal)
	assert.Empty(t, s.Contacts)
}

func TestDynamicCorrectionSplitsByInverseMass(t *testing.T) {
	s := newState()
	s.Gravity = gamemath.Zero
	light := spawnDynamic(s, gamemath.Zero, components.Circle(1), 1, 0)
	heavy := spawnDynamic(s, gamemath.V(1.5, 0), components.Circle(1), 3, 0)

	Step(s)

	require.Len(t, s.Pairs, 1)
	require.Len(t, s.Contacts, 1)
	assert.Equal(t, gamemath.V(1, 0), s.Contacts[0].Normal)
	assert.InDelta(t, -0.375, components.Pos.GetValue(light).X, 1e-5)
	assert.InDelta(t, 1.625, components.Pos.GetValue(heavy).X, 1e-5)

	// The velocity pass removes the separating velocity the correction made.
	assert.InDelta(t, 0, components.Vel.GetValue(light).X, 1e-3)
	assert.InDelta(t, 0, components.Vel.GetValue(heavy).X, 1e-3)
}

func TestRestitutionBounces(t *testing.T) {
	s := newState()
	solid := s.Level.Solids[0]
	spawnStatic(s, solid.Pos, components.Box(solid.Size), 1)
	ball := spawnDynamic(s, gamemath.V(0, -60), components.Circle(8), 1, 1)

	bounced := false
	for range 120 {
		Step(s)
		if len(s.StaticContacts) > 0 {
			assert.Greater(t, components.Vel.GetValue(ball).Y, float32(0))
			bounced = true
			break
		}
	}
	require.True(t, bounced)
}

func TestNoRestitutionStops(t *testing.T) {
	s := newState()
	ground(s)
	ball := spawnDynamic(s, gamemath.V(0, -60), components.Circle(8), 1, 0)

	for range 120 {
		Step(s)
		if len(s.StaticContacts) > 0 {
			break
		}
	}
	require.NotEmpty(t, s.StaticContacts)
	assert.InDelta(t, 0, components.Vel.GetValue(ball).Y, 0.01)
}

func TestMissingEntitiesAreSkipped(t *testing.T) {
	s := newState()
	a := spawnDynamic(s, gamemath.Zero, components.Circle(1), 1, 0)
	b := spawnDynamic(s, gamemath.V(1, 0), components.Circle(1), 1, 0)

	UpdateAabbs(s)
	CollectCollisionPairs(s)
	require.Len(t, s.Pairs, 1)

	s.Despawn(b)
	s.Contacts = append(s.Contacts, sim.Contact{A: 40, B: 41, Normal: gamemath.UnitX})
	s.StaticContacts = append(s.StaticContacts, sim.Contact{A: 42, B: 43, Normal: gamemath.UnitY})

	assert.NotPanics(t, func() {
		SolvePositions(s)
		SolveVelocities(s)
	})
	assert.Equal(t, gamemath.Zero, components.Pos.GetValue(a))
}

func TestBroadPhaseOrderAndMargin(t *testing.T) {
	s := newState()
	s.Gravity = gamemath.Zero
	a := spawnDynamic(s, gamemath.Zero, components.Circle(1), 1, 0)
	b := spawnDynamic(s, gamemath.V(2.5, 0), components.Circle(1), 1, 0)
	c := spawnDynamic(s, gamemath.V(100, 0), components.Circle(1), 1, 0)

	UpdateAabbs(s)
	CollectCollisionPairs(s)
	assert.Empty(t, s.Pairs)

	// 2·dt·|v| of margin bridges the gap between a and b.
	components.Vel.SetValue(a, gamemath.V(30, 0))
	UpdateAabbs(s)
	CollectCollisionPairs(s)
	require.Len(t, s.Pairs, 1)
	assert.Equal(t, sim.Pair{A: components.Rollback.GetValue(a), B: components.Rollback.GetValue(b)}, s.Pairs[0])
	assert.NotContains(t, s.Pairs, sim.Pair{A: components.Rollback.GetValue(a), B: components.Rollback.GetValue(c)})
}

func TestSyncTransformsKeepsDepth(t *testing.T) {
	s := newState()
	e := spawnDynamic(s, gamemath.V(5, 5), components.Box(gamemath.One), 1, 0)

	Step(s)

	tr := components.Transform.GetValue(e).Translation
	pos := components.Pos.GetValue(e)
	assert.Equal(t, gamemath.Vec3{X: pos.X, Y: pos.Y, Z: 3}, tr)
}

func TestIntegrateRecordsPreSolveState(t *testing.T) {
	s := newState()
	e := spawnDynamic(s, gamemath.Zero, components.Box(gamemath.One), 2, 0)

	Integrate(s, config.DeltaTime)

	assert.Equal(t, gamemath.Zero, components.PrevPos.GetValue(e))
	vel := components.Vel.GetValue(e)
	assert.Equal(t, vel, components.PreSolveVel.GetValue(e))
	assert.InDelta(t, -96.0/60.0, vel.Y, 1e-5)
}

func TestStepIsDeterministic(t *testing.T) {
	run := func() []gamemath.Vec2 {
		s := newState()
		ground(s)
		var es []*donburi.Entry
		for i := range 6 {
			x := float32(i*7) - 20
			if i%2 == 0 {
				es = append(es, spawnDynamic(s, gamemath.V(x, float32(i*11)), components.Circle(5), 1, 0.3))
			} else {
				es = append(es, spawnDynamic(s, gamemath.V(x, float32(i*11)), components.Box(gamemath.V(8, 8)), 2, 0.1))
			}
		}
		for range 240 {
			Step(s)
		}
		out := make([]gamemath.Vec2, len(es))
		for i, e := range es {
			out[i] = components.Pos.GetValue(e)
		}
		return out
	}
	assert.Equal(t, run(), run())
}
