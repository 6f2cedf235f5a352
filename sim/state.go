// Package sim holds the state every simulation system reads and writes.
package sim

import (
	"errors"
	"slices"

	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/input"
	"github.com/automoto/janitors-nightmare/level"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"go.uber.org/zap"
)

// ErrModeAlreadySet is returned when the outer mode is requested twice.
// Rollback can replay the frame that made the request, so callers log it and
// carry on.
var ErrModeAlreadySet = errors.New("mode already set")

// Pair is a broad-phase candidate.
type Pair struct {
	A, B components.RollbackID
}

// Contact records a solved collision. Normal points from A to B. In
// StaticContacts, A is always the dynamic entity.
type Contact struct {
	A, B   components.RollbackID
	Normal gamemath.Vec2
}

// RoundResult is the tally of one round.
type RoundResult struct {
	Attacker   int
	Defender   int
	Frames     uint32
	CakesFired uint32
	Hits       uint32
	Splats     uint32
	Cleaned    uint32
}

// RoundData survives across rounds.
type RoundData struct {
	CurRound uint32
	Results  map[uint32]RoundResult
	// Current is the tally of the round in progress.
	Current RoundResult
}

// Clone deep-copies the results map.
func (r RoundData) Clone() RoundData {
	out := r
	out.Results = make(map[uint32]RoundResult, len(r.Results))
	for k, v := range r.Results {
		out.Results[k] = v
	}
	return out
}

// RoundOverFunc decides when a round in progress is finished.
type RoundOverFunc func(s *State) bool

// State is the single resource struct passed to every system. Everything
// below World except Config, Log, Level, RoundOver and Inputs is captured by
// snapshots.
type State struct {
	World  donburi.World
	Config *config.Config
	Log    *zap.Logger
	Level  *level.Level

	Gravity    gamemath.Vec2
	Round      config.RoundState
	RoundData  RoundData
	FrameCount uint32
	Frame      uint64
	NextID     components.RollbackID
	Mode       config.Mode

	Inputs [config.NumPlayers]input.PlayerInput

	Pairs          []Pair
	Contacts       []Contact
	StaticContacts []Contact

	RoundOver RoundOverFunc

	index map[components.RollbackID]donburi.Entity
}

// New returns a state at the start of the first interlude.
func New(cfg *config.Config, lvl *level.Level, log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}
	gx, gy := cfg.Gravity()
	return &State{
		World:     donburi.NewWorld(),
		Config:    cfg,
		Log:       log,
		Level:     lvl,
		Gravity:   gamemath.V(gx, gy),
		Round:     config.InterludeStart,
		RoundData: RoundData{Results: map[uint32]RoundResult{}},
		RoundOver: Timeout,
		index:     map[components.RollbackID]donburi.Entity{},
	}
}

// Timeout ends the round after Round.RoundLength frames.
func Timeout(s *State) bool {
	return s.FrameCount >= s.Config.Round.RoundLength
}

// Spawn creates an entity with the next rollback id.
func (s *State) Spawn(cs ...donburi.IComponentType) *donburi.Entry {
	id := s.NextID
	s.NextID++
	return s.SpawnWithID(id, cs...)
}

// SpawnWithID creates an entity with a known rollback id. Only restore
// should call this directly.
func (s *State) SpawnWithID(id components.RollbackID, cs ...donburi.IComponentType) *donburi.Entry {
	if !slices.Contains(cs, donburi.IComponentType(components.Rollback)) {
		cs = append(cs, components.Rollback)
	}
	e := s.World.Create(cs...)
	entry := s.World.Entry(e)
	components.Rollback.SetValue(entry, id)
	s.index[id] = e
	return entry
}

// Despawn removes an entity. It is a no-op for stale entries.
func (s *State) Despawn(entry *donburi.Entry) {
	if entry == nil || !entry.Valid() {
		return
	}
	delete(s.index, components.Rollback.GetValue(entry))
	s.World.Remove(entry.Entity())
}

// Lookup finds a live entity by rollback id.
func (s *State) Lookup(id components.RollbackID) (*donburi.Entry, bool) {
	e, ok := s.index[id]
	if !ok || !s.World.Valid(e) {
		return nil, false
	}
	return s.World.Entry(e), true
}

// Sorted returns every entity matching f in ascending rollback id order.
// Storage order in donburi depends on archetype layout and removal history,
// which differs after a restore, so systems never iterate it directly.
func (s *State) Sorted(f filter.LayoutFilter) []*donburi.Entry {
	var out []*donburi.Entry
	donburi.NewQuery(filter.And(filter.Contains(components.Rollback), f)).Each(s.World, func(e *donburi.Entry) {
		out = append(out, e)
	})
	slices.SortFunc(out, func(a, b *donburi.Entry) int {
		ia, ib := components.Rollback.GetValue(a), components.Rollback.GetValue(b)
		switch {
		case ia < ib:
			return -1
		case ia > ib:
			return 1
		}
		return 0
	})
	return out
}

// ResetWorld swaps in an empty world. Used by restore.
func (s *State) ResetWorld() {
	s.World = donburi.NewWorld()
	s.index = map[components.RollbackID]donburi.Entity{}
}

// RequestMode asks the outer application to switch mode.
func (s *State) RequestMode(m config.Mode) error {
	if s.Mode == m {
		return ErrModeAlreadySet
	}
	s.Log.Debug("mode requested", zap.Uint8("mode", uint8(m)))
	s.Mode = m
	return nil
}

// Handles returns the players controlling the attacker and the defender in
// the current round. Roles swap every round.
func (s *State) Handles() (attacker, defender int) {
	attacker = int(s.RoundData.CurRound % config.NumPlayers)
	return attacker, (attacker + 1) % config.NumPlayers
}
