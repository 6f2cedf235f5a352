package components

import (
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Pos is authoritative. PrevPos and PreSolveVel are written once per frame by
// integration, before any solver touches Pos or Vel.
var (
	Pos         = donburi.NewComponentType[gamemath.Vec2]()
	PrevPos     = donburi.NewComponentType[gamemath.Vec2]()
	Vel         = donburi.NewComponentType[gamemath.Vec2]()
	PreSolveVel = donburi.NewComponentType[gamemath.Vec2]()
)

// Mass marks an entity as dynamic. Entities without it are static and have
// infinite effective mass.
var Mass = donburi.NewComponentType[float32]()

// Restitution is the bounce coefficient. A pair uses the mean of both values.
var Restitution = donburi.NewComponentType[float32]()

type ColliderKind uint8

const (
	ColliderCircle ColliderKind = iota
	ColliderBox
)

// ColliderData is immutable after spawn. Radius is used by circles, Size
// (full width and height) by boxes.
type ColliderData struct {
	Kind   ColliderKind
	Radius float32
	Size   gamemath.Vec2
}

func Circle(radius float32) ColliderData {
	return ColliderData{Kind: ColliderCircle, Radius: radius}
}

func Box(size gamemath.Vec2) ColliderData {
	return ColliderData{Kind: ColliderBox, Size: size}
}

// HalfExtents returns the half size of the collider's bounding box.
func (c ColliderData) HalfExtents() gamemath.Vec2 {
	if c.Kind == ColliderCircle {
		return gamemath.Splat(c.Radius)
	}
	return c.Size.Scale(0.5)
}

var Collider = donburi.NewComponentType[ColliderData]()

type AabbData struct {
	Min, Max gamemath.Vec2
}

// Intersects is inclusive on the boundary.
func (a AabbData) Intersects(o AabbData) bool {
	return a.Max.X >= o.Min.X &&
		a.Max.Y >= o.Min.Y &&
		a.Min.X <= o.Max.X &&
		a.Min.Y <= o.Max.Y
}

// Aabb is only consumed by the broad phase.
var Aabb = donburi.NewComponentType[AabbData]()

// TransformData is the render-facing position. Z is draw depth and is never
// touched by physics.
type TransformData struct {
	Translation gamemath.Vec3
}

var Transform = donburi.NewComponentType[TransformData]()
