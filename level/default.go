package level

import (
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
)

// groundSize just has to be bigger than anything the camera can show.
var groundSize = gamemath.V(2000, 2000)

// Default is the built-in arena: one wide ground box whose top is at
// Arena.GroundLevel.
func Default(cfg *config.Config) *Level {
	ground := cfg.Arena.GroundLevel
	return &Level{
		Name:   "default",
		Width:  cfg.Arena.Width,
		Height: cfg.Arena.Height,
		Solids: []Solid{{
			Pos:  gamemath.V(0, float32(-groundSize.Y/2)+ground),
			Size: groundSize,
		}},
		Spawns: map[Role]gamemath.Vec2{
			RoleAttacker:  gamemath.Zero,
			RoleDefender:  gamemath.V(cfg.Defender.XPos, ground+float32(cfg.Defender.Size/2)),
			RoleCrosshair: gamemath.V(0, ground),
		},
	}
}
