package gamemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignumTreatsZeroAsPositive(t *testing.T) {
	assert.Equal(t, float32(1), Signum(0))
	assert.Equal(t, float32(1), Signum(3.5))
	assert.Equal(t, float32(-1), Signum(-0.001))
	assert.Equal(t, float32(-1), Signum(float32(math.Copysign(0, -1))))
}

func TestVecOps(t *testing.T) {
	a := V(3, 4)
	assert.Equal(t, float32(5), a.Length())
	assert.Equal(t, float32(25), a.LengthSquared())
	assert.Equal(t, V(1, 2), V(4, 6).Sub(a))
	assert.Equal(t, V(6, 8), a.Scale(2))
	assert.Equal(t, V(1.5, 2), a.Div(2))
	assert.Equal(t, float32(11), a.Dot(V(1, 2)))
	assert.Equal(t, V(3, 4), V(-3, 4).Abs())
	assert.Equal(t, Vec3{3, 4, 7}, a.Extend(7))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(2), Clamp(5, -2, 2))
	assert.Equal(t, float32(-2), ClampSpeed(-5, 2))
	assert.Equal(t, float32(1), Clamp(1, -2, 2))
}
