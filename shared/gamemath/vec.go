// Package gamemath holds the float32 vector math used by the simulation.
//
// Every product that feeds into a sum is wrapped in an explicit float32
// conversion. The compiler may fuse x*y+z into one FMA instruction on some
// architectures; an explicit conversion forbids that, so results stay
// bit-identical across hardware.
package gamemath

// Vec2 is a 2D float32 vector. +Y points up.
type Vec2 struct {
	X, Y float32
}

// Vec3 is used for render-facing transforms; Z is draw depth.
type Vec3 struct {
	X, Y, Z float32
}

var (
	Zero  = Vec2{}
	One   = Vec2{1, 1}
	UnitX = Vec2{1, 0}
	UnitY = Vec2{0, 1}
)

func V(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

// Splat returns a vector with both components set to v.
func Splat(v float32) Vec2 { return Vec2{v, v} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Neg() Vec2       { return Vec2{-v.X, -v.Y} }

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{float32(v.X * s), float32(v.Y * s)}
}

func (v Vec2) Div(s float32) Vec2 {
	return Vec2{float32(v.X / s), float32(v.Y / s)}
}

// Mul is the component-wise product.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{float32(v.X * o.X), float32(v.Y * o.Y)}
}

func (v Vec2) Dot(o Vec2) float32 {
	return float32(v.X*o.X) + float32(v.Y*o.Y)
}

func (v Vec2) LengthSquared() float32 { return v.Dot(v) }

func (v Vec2) Length() float32 { return Sqrt(v.LengthSquared()) }

func (v Vec2) Abs() Vec2 { return Vec2{Abs(v.X), Abs(v.Y)} }

// Signum is the component-wise Signum.
func (v Vec2) Signum() Vec2 { return Vec2{Signum(v.X), Signum(v.Y)} }

// Extend returns the 3D vector (v.X, v.Y, z).
func (v Vec2) Extend(z float32) Vec3 { return Vec3{v.X, v.Y, z} }

// XY drops the Z component.
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }
