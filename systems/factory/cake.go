package factory

import (
	"github.com/automoto/janitors-nightmare/archetypes"
	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/yohamta/donburi"
)

func CreateCake(s *sim.State, owner components.RollbackID, pos, vel gamemath.Vec2) *donburi.Entry {
	e := archetypes.Cake.Spawn(s)
	applyBody(e, SpawnParams{
		Pos:         pos,
		Collider:    components.Circle(s.Config.Cake.Size / 2),
		Mass:        Mass(1),
		Restitution: s.Config.Cake.Restitution,
		Vel:         vel,
		Z:           1.5,
	})
	components.Cake.SetValue(e, components.CakeData{Owner: owner, SpawnFrame: s.FrameCount})
	return e
}

func CreateSplat(s *sim.State, pos gamemath.Vec2) *donburi.Entry {
	e := archetypes.Splat.Spawn(s)
	components.Pos.SetValue(e, pos)
	components.Transform.SetValue(e, components.TransformData{Translation: pos.Extend(0.25)})
	components.Splat.SetValue(e, components.SplatData{Dirt: s.Config.Cake.SplatDirt})
	return e
}

// CreateBanner spawns the between-rounds banner for the round about to start.
func CreateBanner(s *sim.State) *donburi.Entry {
	e := archetypes.Banner.Spawn(s)
	components.Banner.SetValue(e, components.BannerData{Round: s.RoundData.CurRound})
	return e
}
