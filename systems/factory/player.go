package factory

import (
	"github.com/automoto/janitors-nightmare/archetypes"
	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/yohamta/donburi"
)

// AttackerBody is the janitor's collider: half as wide as tall.
func AttackerBody(cfg *config.Config) gamemath.Vec2 {
	return gamemath.V(cfg.Attacker.Size/2, cfg.Attacker.Size)
}

func CreateAttacker(s *sim.State, handle int, pos gamemath.Vec2) *donburi.Entry {
	e := archetypes.Attacker.Spawn(s)
	applyBody(e, SpawnParams{
		Pos:         pos,
		Collider:    components.Box(AttackerBody(s.Config)),
		Mass:        Mass(1),
		Restitution: s.Config.Attacker.Restitution,
		Z:           1,
	})
	components.Attacker.SetValue(e, components.AttackerData{Handle: handle})
	components.AttackerState.SetValue(e, components.NewAttackerState(config.AttackerIdle))
	components.Facing.SetValue(e, 1)
	return e
}

func CreateDefender(s *sim.State, handle int, pos gamemath.Vec2) *donburi.Entry {
	e := archetypes.Defender.Spawn(s)
	components.Pos.SetValue(e, pos)
	components.Transform.SetValue(e, components.TransformData{Translation: pos.Extend(0.5)})
	components.Defender.SetValue(e, components.DefenderData{Handle: handle})
	components.DefenderState.SetValue(e, components.DefenderStateData{ID: config.DefenderIdle})
	// The fortress always faces the arena centre.
	facing := float32(-1)
	if pos.X < 0 {
		facing = 1
	}
	components.Facing.SetValue(e, facing)
	return e
}

func CreateCrosshair(s *sim.State, pos gamemath.Vec2) *donburi.Entry {
	e := archetypes.Crosshair.Spawn(s)
	components.Pos.SetValue(e, pos)
	components.Transform.SetValue(e, components.TransformData{Translation: pos.Extend(2)})
	return e
}
