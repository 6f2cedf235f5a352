package level

import (
	"errors"
	"fmt"
	"math"

	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/automoto/janitors-nightmare/tags"
	"github.com/solarlune/resolv"
)

var (
	ErrNoSpawns     = errors.New("level is missing a spawn point")
	ErrSpawnBlocked = errors.New("spawn point overlaps solid geometry")
)

const cellSize = 16

// Roles lists every spawn point a level must define.
var Roles = []Role{RoleAttacker, RoleDefender, RoleCrosshair}

// Validate checks that every role has a spawn point and that the attacker can
// spawn without overlapping a solid. body is the attacker's collider size.
func Validate(l *Level, body gamemath.Vec2) error {
	for _, r := range Roles {
		if _, ok := l.Spawn(r); !ok {
			return fmt.Errorf("%w: %s", ErrNoSpawns, r)
		}
	}
	spawn, _ := l.Spawn(RoleAttacker)

	// resolv wants non-negative coordinates; shift everything by the bounds'
	// minimum. Overlap does not care about the y-flip.
	minX, minY := float64(spawn.X-body.X), float64(spawn.Y-body.Y)
	maxX, maxY := float64(spawn.X+body.X), float64(spawn.Y+body.Y)
	for _, s := range l.Solids {
		half := s.Size.Scale(0.5)
		minX = math.Min(minX, float64(s.Pos.X-half.X))
		minY = math.Min(minY, float64(s.Pos.Y-half.Y))
		maxX = math.Max(maxX, float64(s.Pos.X+half.X))
		maxY = math.Max(maxY, float64(s.Pos.Y+half.Y))
	}

	space := resolv.NewSpace(int(math.Ceil(maxX-minX))+cellSize, int(math.Ceil(maxY-minY))+cellSize, cellSize, cellSize)
	add := func(center, size gamemath.Vec2, tag string) *resolv.Object {
		w, h := float64(size.X), float64(size.Y)
		x := float64(center.X) - w/2 - minX
		y := float64(center.Y) - h/2 - minY
		obj := resolv.NewObject(x, y, w, h, tag)
		obj.SetShape(resolv.NewRectangle(0, 0, w, h))
		space.Add(obj)
		return obj
	}

	for _, s := range l.Solids {
		add(s.Pos, s.Size, tags.ResolvSolid)
	}
	player := add(spawn, body, tags.ResolvSpawn)

	check := player.Check(0, 0, tags.ResolvSolid)
	if check == nil {
		return nil
	}
	for _, solid := range check.ObjectsByTags(tags.ResolvSolid) {
		if player.Shape.Intersection(0, 0, solid.Shape) != nil {
			return fmt.Errorf("%w: attacker at (%.1f, %.1f)", ErrSpawnBlocked, spawn.X, spawn.Y)
		}
	}
	return nil
}
