package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefaultGravity(t *testing.T) {
	x, y := Default().Gravity()
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(-96), y)
}

func TestExplicitGravity(t *testing.T) {
	cfg := Default()
	cfg.Physics.GravityY = -10
	x, y := cfg.Gravity()
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(-10), y)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[round]
num_rounds = 4
round_length = 900

[cake]
max_splat = 8

[logging]
level = "debug"
`))
	require.NoError(t, err)
	assert.Equal(t, uint32(4), cfg.Round.NumRounds)
	assert.Equal(t, uint32(900), cfg.Round.RoundLength)
	assert.Equal(t, uint32(60), cfg.Round.InterludeLength, "untouched keys keep defaults")
	assert.Equal(t, uint32(8), cfg.Cake.MaxSplat)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", `[round`},
		{"no rounds", "[round]\nnum_rounds = 0"},
		{"release after animation", "[defender]\nfire_frames = 10\nfire_release_frame = 10"},
		{"splat range", "[cake]\nmin_splat = 6\nmax_splat = 2"},
		{"too many splats", "[cake]\nmin_splat = 0\nmax_splat = 4294967295"},
		{"splat limit", "[cake]\nmax_splat = 65"},
		{"flight", "[defender]\ncake_flight_frames = 0"},
		{"jump time", "[attacker]\njump_time_to_peak = 0.0"},
		{"check distance", "[session]\ncheck_distance = -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			assert.Error(t, err)
		})
	}
}

func TestSplatLimitAccepted(t *testing.T) {
	cfg, err := Parse([]byte("[cake]\nmin_splat = 0\nmax_splat = 64"))
	require.NoError(t, err)
	assert.Equal(t, uint32(MaxSplatLimit), cfg.Cake.MaxSplat)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.toml")
	require.NoError(t, os.WriteFile(path, []byte("[crosshair]\nspeed = 5.5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(5.5), cfg.Crosshair.Speed)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	base := Default().Fingerprint()
	assert.Equal(t, base, Default().Fingerprint())

	tuned := Default()
	tuned.Attacker.MaxSpeed++
	assert.NotEqual(t, base, tuned.Fingerprint())

	script := Default()
	script.Script.RoundEnd = "rules.lua"
	assert.NotEqual(t, base, script.Fingerprint())

	cosmetic := Default()
	cosmetic.Logging.Level = "debug"
	cosmetic.Session.InputDelay = 5
	cosmetic.Replay.Enabled = true
	assert.Equal(t, base, cosmetic.Fingerprint())
}

func TestParseBotDifficulty(t *testing.T) {
	for name, want := range map[string]BotDifficulty{
		"easy":   BotDifficultyEasy,
		"normal": BotDifficultyNormal,
		"hard":   BotDifficultyHard,
	} {
		got, ok := ParseBotDifficulty(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got)
		assert.Contains(t, BotDifficulties, got)
	}
	_, ok := ParseBotDifficulty("nightmare")
	assert.False(t, ok)
}
