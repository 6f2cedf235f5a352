package level

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/lafriks/go-tiled"
)

const (
	solidsGroup = "Solids"
	spawnsGroup = "Spawns"
)

// Load parses a TMX file. Rectangles in the "Solids" object group become
// static boxes; objects in "Spawns" are keyed by their "role" property. It
// takes an fs.FS so callers can pass embed.FS or os.DirFS.
func Load(fsys fs.FS, tmxPath string) (*Level, error) {
	m, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	w := float32(m.Width * m.TileWidth)
	h := float32(m.Height * m.TileHeight)
	lvl := &Level{
		Name:   strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width:  w,
		Height: h,
		Spawns: map[Role]gamemath.Vec2{},
	}

	// Tiled is y-down with the origin in the top-left corner.
	toWorld := func(x, y float64) gamemath.Vec2 {
		return gamemath.V(float32(x)-w/2, h/2-float32(y))
	}

	for _, og := range m.ObjectGroups {
		switch og.Name {
		case solidsGroup:
			for _, o := range og.Objects {
				if o.Width <= 0 || o.Height <= 0 {
					return nil, fmt.Errorf("%s: solid %d has no area", tmxPath, o.ID)
				}
				lvl.Solids = append(lvl.Solids, Solid{
					Pos:  toWorld(o.X+o.Width/2, o.Y+o.Height/2),
					Size: gamemath.V(float32(o.Width), float32(o.Height)),
				})
			}
		case spawnsGroup:
			for _, o := range og.Objects {
				role := Role(o.Properties.GetString("role"))
				switch role {
				case RoleAttacker, RoleDefender, RoleCrosshair:
				default:
					return nil, fmt.Errorf("%s: spawn %d has unknown role %q", tmxPath, o.ID, role)
				}
				if _, dup := lvl.Spawns[role]; dup {
					return nil, fmt.Errorf("%s: duplicate %s spawn", tmxPath, role)
				}
				lvl.Spawns[role] = toWorld(o.X, o.Y)
			}
		}
	}

	return lvl, nil
}
