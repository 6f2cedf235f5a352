// Package level describes static arena geometry and spawn points. Levels are
// Tiled maps; when none is configured a built-in arena is used.
package level

import "github.com/automoto/janitors-nightmare/shared/gamemath"

// Role names what spawns at a spawn point.
type Role string

const (
	RoleAttacker  Role = "attacker"
	RoleDefender  Role = "defender"
	RoleCrosshair Role = "crosshair"
)

// Solid is a static box, centred on Pos, in simulation coordinates (+Y up,
// origin at the arena centre).
type Solid struct {
	Pos  gamemath.Vec2
	Size gamemath.Vec2
}

type Level struct {
	Name          string
	Width, Height float32
	Solids        []Solid
	Spawns        map[Role]gamemath.Vec2
}

// Spawn returns the spawn point for role.
func (l *Level) Spawn(r Role) (gamemath.Vec2, bool) {
	p, ok := l.Spawns[r]
	return p, ok
}
