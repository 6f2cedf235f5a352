package factory

import (
	"github.com/automoto/janitors-nightmare/archetypes"
	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/level"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/yohamta/donburi"
)

// CreateSolid spawns a static box of level geometry.
func CreateSolid(s *sim.State, solid level.Solid) *donburi.Entry {
	e := archetypes.Solid.Spawn(s)
	applyBody(e, SpawnParams{
		Pos:      solid.Pos,
		Collider: components.Box(solid.Size),
	})
	return e
}

// CreateLevel spawns every solid of the state's level in file order.
func CreateLevel(s *sim.State) {
	for _, solid := range s.Level.Solids {
		CreateSolid(s, solid)
	}
}
