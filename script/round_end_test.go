package script

import (
	"path/filepath"
	"testing"

	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/core"
	"github.com/automoto/janitors-nightmare/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndEvaluate(t *testing.T) {
	r, err := Load(filepath.Join("testdata", "splats.lua"), nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		ctx  Context
		want bool
	}{
		{"timeout", Context{Frame: 6000, RoundLength: 6000, Splats: 3}, true},
		{"too early", Context{Frame: 10, RoundLength: 6000}, false},
		{"clean arena", Context{Frame: 301, RoundLength: 6000}, true},
		{"dirty arena", Context{Frame: 301, RoundLength: 6000, Splats: 1}, false},
		{"cake in flight", Context{Frame: 301, RoundLength: 6000, Cakes: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Over(tt.ctx))
		})
	}
}

func TestAttackerStateIsVisible(t *testing.T) {
	r, err := Compile("inline", `function round_over(ctx) return ctx.attacker_state == "hit" end`, nil)
	require.NoError(t, err)

	assert.True(t, r.Over(Context{AttackerState: "hit"}))
	assert.False(t, r.Over(Context{AttackerState: "idle"}))
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("syntax", "function round_over(", nil)
	require.Error(t, err)

	_, err = Compile("missing", "x = 1", nil)
	require.Error(t, err)
}

func TestRuntimeErrorIsNotOver(t *testing.T) {
	r, err := Compile("boom", `function round_over(ctx) error("boom") end`, nil)
	require.NoError(t, err)

	assert.False(t, r.Over(Context{Frame: 1}))
}

func TestNoRandomness(t *testing.T) {
	r, err := Compile("rand", `function round_over(ctx) return math.random ~= nil end`, nil)
	require.NoError(t, err)

	assert.False(t, r.Over(Context{}))
}

func TestSandboxedLibraries(t *testing.T) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "collectgarbage", "rawset"} {
		t.Run(name, func(t *testing.T) {
			r, err := Compile(name, `function round_over(ctx) return `+name+` == nil end`, nil)
			require.NoError(t, err)
			assert.True(t, r.Over(Context{}))
		})
	}

	r, err := Compile("libs", `function round_over(ctx) return math.floor(ctx.frame / 2) == 3 and string.len("ab") == 2 end`, nil)
	require.NoError(t, err)
	assert.True(t, r.Over(Context{Frame: 7}))
}

func TestGlobalsAreReadOnly(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"existing global", `calls = 0
function round_over(ctx) calls = calls + 1 return calls == 2 end`},
		{"new global", `function round_over(ctx) seen = true return true end`},
		{"unlock", `function round_over(ctx) setmetatable(_G, nil) return true end`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Compile(tt.name, tt.src, nil)
			require.NoError(t, err)
			for range 3 {
				assert.False(t, r.Over(Context{}))
			}
		})
	}
}

func TestCallsDoNotShareState(t *testing.T) {
	r, err := Compile("table", `state = {n = 0}
function round_over(ctx) state.n = state.n + 1 return state.n >= 2 end`, nil)
	require.NoError(t, err)
	for range 3 {
		assert.False(t, r.Over(Context{}))
	}
}

func TestScriptSurvivesRollback(t *testing.T) {
	cfg := config.Default()
	cfg.Round.InterludeLength = 3
	cfg.Round.RoundLength = 1000

	tests := []struct {
		name      string
		src       string
		roundEnds bool
	}{
		{"counter", `calls = 0
function round_over(ctx) calls = calls + 1 return calls == 20 end`, false},
		{"table counter", `state = {n = 0}
function round_over(ctx) state.n = state.n + 1 return state.n == 20 end`, false},
		{"frame rule", `function round_over(ctx) return ctx.frame >= 20 end`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Compile(tt.name, tt.src, nil)
			require.NoError(t, err)
			m, err := core.New(cfg, nil, core.WithRoundOver(r.Predicate()))
			require.NoError(t, err)

			st := core.NewSyncTest(m, 2)
			for range 60 {
				require.NoError(t, st.Step([config.NumPlayers]input.PlayerInput{}), "frame %d", m.Frame())
			}
			_, ended := m.State().RoundData.Results[0]
			assert.Equal(t, tt.roundEnds, ended)
		})
	}
}
