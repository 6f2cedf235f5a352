package checksum

import (
	"testing"

	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/level"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/automoto/janitors-nightmare/systems/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestFletcher16(t *testing.T) {
	tests := []struct {
		in   string
		want uint16
	}{
		{"", 0},
		{"abcde", 0xC8F0},
		{"abcdef", 0x2057},
		{"abcdefgh", 0x0627},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fletcher16([]byte(tt.in)))
		})
	}
}

func newState() *sim.State {
	cfg := config.Default()
	return sim.New(cfg, level.Default(cfg), nil)
}

func TestEncodeLayouts(t *testing.T) {
	s := newState()
	att := factory.CreateAttacker(s, 0, gamemath.V(1, 2))
	def := factory.CreateDefender(s, 1, gamemath.V(250, -16))
	xh := factory.CreateCrosshair(s, gamemath.Zero)
	cake := factory.CreateCake(s, 1, gamemath.V(3, 4), gamemath.V(5, 6))
	splat := factory.CreateSplat(s, gamemath.V(7, -100))
	solid := factory.CreateSolid(s, s.Level.Solids[0])

	tests := []struct {
		name  string
		entry *donburi.Entry
		size  int
	}{
		{"attacker", att, 7*4 + 1 + 2},
		{"defender", def, 2*4 + 1 + 2},
		{"crosshair", xh, 2 * 4},
		{"cake", cake, 7 * 4},
		{"splat", splat, 2*4 + 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, ok := Encode(tt.entry, nil)
			require.True(t, ok)
			assert.Len(t, buf, tt.size)
		})
	}

	_, ok := Encode(solid, nil)
	assert.False(t, ok)

	// Attacker: transform x first, little-endian, state kind and frames last.
	components.AttackerState.SetValue(att, components.AttackerStateData{ID: config.AttackerWalk, Frames: 0x0102})
	buf, _ := Encode(att, nil)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, buf[:4])
	assert.Equal(t, []byte{byte(config.AttackerWalk), 0x02, 0x01}, buf[28:])
}

func TestUpdate(t *testing.T) {
	s := newState()
	att := factory.CreateAttacker(s, 0, gamemath.V(1, 2))
	xh := factory.CreateCrosshair(s, gamemath.V(10, 10))

	Update(s)
	first := Collect(s)
	require.Len(t, first, 2)
	assert.Equal(t, components.Rollback.GetValue(att), first[0].ID)
	assert.Equal(t, components.Rollback.GetValue(xh), first[1].ID)

	buf, _ := Encode(att, nil)
	assert.Equal(t, Fletcher16(buf), components.Checksum.GetValue(att))

	digest := FrameDigest(s)
	Update(s)
	assert.Equal(t, digest, FrameDigest(s), "recomputing without changes is stable")

	components.Pos.SetValue(xh, gamemath.V(11, 10))
	Update(s)
	second := Collect(s)
	assert.Equal(t, first[0], second[0])
	assert.NotEqual(t, first[1].Checksum, second[1].Checksum)
	assert.NotEqual(t, digest, FrameDigest(s))
}

func TestFrameDigestCoversRoundState(t *testing.T) {
	s := newState()
	before := FrameDigest(s)
	s.FrameCount++
	assert.NotEqual(t, before, FrameDigest(s))
	s.FrameCount--
	s.Round = config.Round
	assert.NotEqual(t, before, FrameDigest(s))
}
