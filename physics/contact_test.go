package physics

import (
	"testing"

	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxBoxClear(t *testing.T) {
	for _, p := range []gamemath.Vec2{
		gamemath.V(1.1, 0),
		gamemath.V(-1.1, 0),
		gamemath.V(0, 1.1),
		gamemath.V(0, -1.1),
	} {
		_, hit := BoxBox(gamemath.Zero, gamemath.One, p, gamemath.One)
		assert.False(t, hit, "box at %v", p)
	}
}

func TestBoxBoxIntersection(t *testing.T) {
	for _, p := range []gamemath.Vec2{
		gamemath.Zero,
		gamemath.V(0.9, 0.9),
		gamemath.V(-0.9, -0.9),
	} {
		_, hit := BoxBox(gamemath.Zero, gamemath.One, p, gamemath.One)
		assert.True(t, hit, "box at %v", p)
	}
}

func TestBoxBoxContact(t *testing.T) {
	tests := []struct {
		name   string
		posB   gamemath.Vec2
		normal gamemath.Vec2
	}{
		{"horizontal", gamemath.V(0.9, 0), gamemath.V(1, 0)},
		{"vertical", gamemath.V(0, 0.9), gamemath.V(0, 1)},
		{"left", gamemath.V(-0.9, 0), gamemath.V(-1, 0)},
		{"below", gamemath.V(0, -0.9), gamemath.V(0, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, hit := BoxBox(gamemath.Zero, gamemath.One, tt.posB, gamemath.One)
			require.True(t, hit)
			assert.Equal(t, tt.normal, c.Normal)
			assert.InDelta(t, 0.1, c.Penetration, 0.001)
		})
	}
}

func TestBoxBoxTieBreakPicksY(t *testing.T) {
	c, hit := BoxBox(gamemath.Zero, gamemath.One, gamemath.V(0.5, 0.5), gamemath.One)
	require.True(t, hit)
	assert.Equal(t, gamemath.V(0, 1), c.Normal)
	assert.Equal(t, float32(0.5), c.Penetration)

	// Coincident boxes resolve along +y.
	c, hit = BoxBox(gamemath.Zero, gamemath.One, gamemath.Zero, gamemath.One)
	require.True(t, hit)
	assert.Equal(t, gamemath.V(0, 1), c.Normal)
}

func TestCircleCircle(t *testing.T) {
	c, hit := CircleCircle(gamemath.Zero, 1, gamemath.V(1.5, 0), 1)
	require.True(t, hit)
	assert.Equal(t, gamemath.V(1, 0), c.Normal)
	assert.InDelta(t, 0.5, c.Penetration, 1e-6)

	_, hit = CircleCircle(gamemath.Zero, 1, gamemath.V(2, 0), 1)
	assert.False(t, hit, "touching circles do not collide")

	c, hit = CircleCircle(gamemath.V(0, 3), 1, gamemath.Zero, 2.5)
	require.True(t, hit)
	assert.Equal(t, gamemath.V(0, -1), c.Normal)
}

func TestCircleCircleCoincident(t *testing.T) {
	c, hit := CircleCircle(gamemath.V(4, 4), 1, gamemath.V(4, 4), 2)
	require.True(t, hit)
	assert.Equal(t, gamemath.V(1, 0), c.Normal)
	assert.Equal(t, float32(3), c.Penetration)
}

func TestCircleBox(t *testing.T) {
	box := gamemath.V(4, 2)

	t.Run("above edge", func(t *testing.T) {
		c, hit := CircleBox(gamemath.V(0, 1.5), 1, gamemath.Zero, box)
		require.True(t, hit)
		assert.Equal(t, gamemath.V(0, -1), c.Normal)
		assert.InDelta(t, 0.5, c.Penetration, 1e-6)
	})

	t.Run("side edge", func(t *testing.T) {
		c, hit := CircleBox(gamemath.V(-2.75, 0), 1, gamemath.Zero, box)
		require.True(t, hit)
		assert.Equal(t, gamemath.V(1, 0), c.Normal)
		assert.InDelta(t, 0.25, c.Penetration, 1e-6)
	})

	t.Run("corner", func(t *testing.T) {
		c, hit := CircleBox(gamemath.V(2.3, 1.4), 1, gamemath.Zero, box)
		require.True(t, hit)
		assert.InDelta(t, -0.6, c.Normal.X, 1e-5)
		assert.InDelta(t, -0.8, c.Normal.Y, 1e-5)
		assert.InDelta(t, 0.5, c.Penetration, 1e-5)
	})

	t.Run("near corner but clear", func(t *testing.T) {
		_, hit := CircleBox(gamemath.V(2.8, 1.8), 1, gamemath.Zero, box)
		assert.False(t, hit)
	})

	t.Run("far", func(t *testing.T) {
		_, hit := CircleBox(gamemath.V(0, 5), 1, gamemath.Zero, box)
		assert.False(t, hit)
	})
}
