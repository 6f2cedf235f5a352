package systems

import (
	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/level"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/automoto/janitors-nightmare/systems/factory"
	"github.com/automoto/janitors-nightmare/tags"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/filter"
	"go.uber.org/zap"
)

// Each lifecycle handler runs once per frame for its phase. A transition set
// by a handler takes effect on the next frame, except RoundStart which falls
// straight through to Round.

func transition(s *sim.State, next config.RoundState) {
	s.Log.Debug("round state",
		zap.Stringer("from", s.Round),
		zap.Stringer("to", next),
		zap.Uint32("round", s.RoundData.CurRound),
		zap.Uint64("frame", s.Frame),
	)
	s.Round = next
	s.FrameCount = 0
}

func InterludeStart(s *sim.State) {
	factory.CreateBanner(s)
	transition(s, config.Interlude)
}

func Interlude(s *sim.State) {
	s.FrameCount++
	length := s.Config.Round.InterludeLength
	for _, e := range s.Sorted(filter.Contains(components.Banner)) {
		b := components.Banner.Get(e)
		b.Progress = 1
		if length > 0 {
			b.Progress = ease.OutCubic(float32(min(s.FrameCount, length)), 0, 1, float32(length))
		}
	}
	if s.FrameCount >= length {
		transition(s, config.InterludeEnd)
	}
}

func InterludeEnd(s *sim.State) {
	for _, e := range s.Sorted(filter.Contains(tags.Interlude)) {
		s.Despawn(e)
	}
	transition(s, config.RoundStart)
}

// RoundStart spawns the level and both players, then enters Round in the
// same frame. Levels are validated on load, so a missing spawn point only
// skips that entity.
func RoundStart(s *sim.State) {
	attacker, defender := s.Handles()
	factory.CreateLevel(s)

	if pos, ok := spawnPoint(s, level.RoleAttacker); ok {
		factory.CreateAttacker(s, attacker, pos)
	}
	if pos, ok := spawnPoint(s, level.RoleDefender); ok {
		factory.CreateDefender(s, defender, pos)
	}
	if pos, ok := spawnPoint(s, level.RoleCrosshair); ok {
		factory.CreateCrosshair(s, pos)
	}

	s.RoundData.Current = sim.RoundResult{Attacker: attacker, Defender: defender}
	transition(s, config.Round)
}

func spawnPoint(s *sim.State, role level.Role) (gamemath.Vec2, bool) {
	pos, ok := s.Level.Spawn(role)
	if !ok {
		s.Log.Error("level has no spawn point",
			zap.String("level", s.Level.Name),
			zap.String("role", string(role)),
		)
	}
	return pos, ok
}

func Round(s *sim.State) {
	s.FrameCount++
	over := s.RoundOver
	if over == nil {
		over = sim.Timeout
	}
	if over(s) {
		s.RoundData.Current.Frames = s.FrameCount
		transition(s, config.RoundEnd)
	}
}

// RoundEnd records the result, clears the arena and either starts the next
// interlude or requests the win screen.
func RoundEnd(s *sim.State) {
	if s.Mode == config.ModeWin {
		return
	}
	result := s.RoundData.Current
	s.RoundData.Results[s.RoundData.CurRound] = result
	s.Log.Info("round finished",
		zap.Uint32("round", s.RoundData.CurRound),
		zap.Int("attacker", result.Attacker),
		zap.Uint32("cakes", result.CakesFired),
		zap.Uint32("hits", result.Hits),
		zap.Uint32("splats", result.Splats),
		zap.Uint32("cleaned", result.Cleaned),
	)

	for _, e := range s.Sorted(filter.Contains(tags.RoundEntity)) {
		s.Despawn(e)
	}
	s.RoundData.Current = sim.RoundResult{}
	s.RoundData.CurRound++

	if s.RoundData.CurRound >= s.Config.Round.NumRounds {
		if err := s.RequestMode(config.ModeWin); err != nil {
			s.Log.Warn("win transition ignored", zap.Error(err))
		}
		return
	}
	transition(s, config.InterludeStart)
}
