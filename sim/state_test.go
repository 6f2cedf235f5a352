package sim

import (
	"testing"

	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi/filter"
)

func newState() *State {
	cfg := config.Default()
	return New(cfg, level.Default(cfg), nil)
}

func TestNew(t *testing.T) {
	s := newState()
	assert.Equal(t, config.InterludeStart, s.Round)
	assert.Equal(t, config.ModeRound, s.Mode)
	assert.Equal(t, float32(-96), s.Gravity.Y)
	assert.NotNil(t, s.Log)
	assert.NotNil(t, s.RoundData.Results)
}

func TestSpawnAllocatesIDs(t *testing.T) {
	s := newState()
	a := s.Spawn(components.Pos)
	b := s.Spawn(components.Pos, components.Vel)
	assert.Equal(t, components.RollbackID(0), components.Rollback.GetValue(a))
	assert.Equal(t, components.RollbackID(1), components.Rollback.GetValue(b))
	assert.Equal(t, components.RollbackID(2), s.NextID)

	s.Despawn(a)
	c := s.Spawn(components.Pos)
	assert.Equal(t, components.RollbackID(2), components.Rollback.GetValue(c), "ids are never reused")
}

func TestLookupAndDespawn(t *testing.T) {
	s := newState()
	e := s.Spawn(components.Pos)
	id := components.Rollback.GetValue(e)

	got, ok := s.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, e.Entity(), got.Entity())

	s.Despawn(e)
	_, ok = s.Lookup(id)
	assert.False(t, ok)
	s.Despawn(e)
	s.Despawn(nil)

	_, ok = s.Lookup(1234)
	assert.False(t, ok)
}

func TestSortedFollowsIDs(t *testing.T) {
	s := newState()
	// Mix archetypes so storage order differs from id order.
	s.SpawnWithID(5, components.Pos)
	s.SpawnWithID(1, components.Pos, components.Vel)
	s.SpawnWithID(3, components.Pos)
	s.SpawnWithID(2, components.Pos, components.Vel)

	var ids []components.RollbackID
	for _, e := range s.Sorted(filter.Contains(components.Pos)) {
		ids = append(ids, components.Rollback.GetValue(e))
	}
	assert.Equal(t, []components.RollbackID{1, 2, 3, 5}, ids)

	ids = ids[:0]
	for _, e := range s.Sorted(filter.Contains(components.Vel)) {
		ids = append(ids, components.Rollback.GetValue(e))
	}
	assert.Equal(t, []components.RollbackID{1, 2}, ids)
}

func TestResetWorld(t *testing.T) {
	s := newState()
	e := s.Spawn(components.Pos)
	s.ResetWorld()
	_, ok := s.Lookup(components.Rollback.GetValue(e))
	assert.False(t, ok)
	assert.Empty(t, s.Sorted(filter.Contains(components.Pos)))
}

func TestRequestMode(t *testing.T) {
	s := newState()
	require.NoError(t, s.RequestMode(config.ModeWin))
	assert.Equal(t, config.ModeWin, s.Mode)
	assert.ErrorIs(t, s.RequestMode(config.ModeWin), ErrModeAlreadySet)
}

func TestHandlesSwap(t *testing.T) {
	s := newState()
	a, d := s.Handles()
	assert.Equal(t, [2]int{0, 1}, [2]int{a, d})
	s.RoundData.CurRound = 1
	a, d = s.Handles()
	assert.Equal(t, [2]int{1, 0}, [2]int{a, d})
}

func TestTimeout(t *testing.T) {
	s := newState()
	s.FrameCount = s.Config.Round.RoundLength - 1
	assert.False(t, Timeout(s))
	s.FrameCount++
	assert.True(t, Timeout(s))
}

func TestRoundDataClone(t *testing.T) {
	rd := RoundData{Results: map[uint32]RoundResult{0: {Hits: 2}}}
	c := rd.Clone()
	c.Results[1] = RoundResult{Hits: 9}
	assert.Len(t, rd.Results, 1)
	assert.Equal(t, rd.Results[0], c.Results[0])
}
