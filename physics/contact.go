// Package physics is the fixed-timestep XPBD-style solver: position
// correction first, then velocities rebuilt from displacement, then a
// velocity pass for restitution. Only circles and axis-aligned boxes exist,
// and nothing rotates.
package physics

import "github.com/automoto/janitors-nightmare/shared/gamemath"

// Contact is the result of a narrow-phase test. Normal points from the first
// shape to the second.
type Contact struct {
	Normal      gamemath.Vec2
	Penetration float32
}

// coincidentNormal is used when two circle centres are at the same point.
var coincidentNormal = gamemath.UnitX

// CircleCircle tests two circles.
func CircleCircle(posA gamemath.Vec2, radiusA float32, posB gamemath.Vec2, radiusB float32) (Contact, bool) {
	ab := posB.Sub(posA)
	combined := radiusA + radiusB
	sqrLen := ab.LengthSquared()
	if sqrLen >= float32(combined*combined) {
		return Contact{}, false
	}
	length := gamemath.Sqrt(sqrLen)
	if length == 0 {
		return Contact{Normal: coincidentNormal, Penetration: combined}, true
	}
	return Contact{Normal: ab.Div(length), Penetration: combined - length}, true
}

// CircleBox tests a circle (A) against a box (B).
func CircleBox(posA gamemath.Vec2, radius float32, posB gamemath.Vec2, sizeB gamemath.Vec2) (Contact, bool) {
	boxToCircle := posA.Sub(posB)
	cornerToCenter := boxToCircle.Abs().Sub(sizeB.Scale(0.5))
	if cornerToCenter.X > radius || cornerToCenter.Y > radius {
		return Contact{}, false
	}

	s := boxToCircle.Signum()
	switch {
	case cornerToCenter.X > 0 && cornerToCenter.Y > 0:
		sqr := cornerToCenter.LengthSquared()
		if sqr > float32(radius*radius) {
			return Contact{}, false
		}
		dist := gamemath.Sqrt(sqr)
		return Contact{
			Normal:      cornerToCenter.Div(dist).Mul(s.Neg()),
			Penetration: radius - dist,
		}, true
	case cornerToCenter.X > cornerToCenter.Y:
		return Contact{Normal: gamemath.V(-s.X, 0), Penetration: radius - cornerToCenter.X}, true
	default:
		return Contact{Normal: gamemath.V(0, -s.Y), Penetration: radius - cornerToCenter.Y}, true
	}
}

// BoxBox tests two axis-aligned boxes. On equal overlap the y axis wins.
func BoxBox(posA, sizeA, posB, sizeB gamemath.Vec2) (Contact, bool) {
	ab := posB.Sub(posA)
	overlap := sizeA.Scale(0.5).Add(sizeB.Scale(0.5)).Sub(ab.Abs())
	switch {
	case overlap.X < 0 || overlap.Y < 0:
		return Contact{}, false
	case overlap.X < overlap.Y:
		return Contact{Normal: gamemath.V(gamemath.Signum(ab.X), 0), Penetration: overlap.X}, true
	default:
		return Contact{Normal: gamemath.V(0, gamemath.Signum(ab.Y)), Penetration: overlap.Y}, true
	}
}
