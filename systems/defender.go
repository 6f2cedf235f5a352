package systems

import (
	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/automoto/janitors-nightmare/systems/factory"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/filter"
	"go.uber.org/zap"
)

// UpdateDefenderStates advances the defender's fire animation and releases a
// cake at Defender.FireReleaseFrame.
func UpdateDefenderStates(s *sim.State) {
	cfg := &s.Config.Defender
	for _, e := range s.Sorted(filter.Contains(components.Defender, components.DefenderState)) {
		st := components.DefenderState.GetValue(e)
		fire := components.DefenderControls.GetValue(e).FirePressed()

		switch st.ID {
		case config.DefenderIdle:
			if fire {
				st.Enter(config.DefenderFire)
			} else {
				st.Tick()
			}
		case config.DefenderFire:
			if st.Frames >= cfg.FireFrames {
				st.Enter(config.DefenderIdle)
				break
			}
			if st.Frames == cfg.FireReleaseFrame {
				launchCake(s, components.Rollback.GetValue(e), components.Pos.GetValue(e))
			}
			st.Tick()
		}
		components.DefenderState.SetValue(e, st)
	}
}

// launchCake fires a cake from the top of the defender on the ballistic arc
// that reaches the crosshair after Defender.CakeFlightFrames.
func launchCake(s *sim.State, owner components.RollbackID, defenderPos gamemath.Vec2) {
	start := defenderPos.Add(gamemath.V(0, s.Config.Defender.Size/2))
	target := start
	if xs := s.Sorted(filter.Contains(components.Crosshair)); len(xs) > 0 {
		target = components.Pos.GetValue(xs[0])
	}
	t := float32(float32(s.Config.Defender.CakeFlightFrames) * config.DeltaTime)
	vel := target.Sub(start).Div(t).Sub(s.Gravity.Scale(float32(0.5 * t)))

	cake := factory.CreateCake(s, owner, start, vel)
	s.RoundData.Current.CakesFired++
	s.Log.Debug("cake fired",
		zap.Uint32("id", uint32(components.Rollback.GetValue(cake))),
		zap.Float32("target_x", target.X),
		zap.Float32("target_y", target.Y),
	)
}

// CrosshairSpeed is the crosshair speed after heldFrames of steering. It eases
// from MinFactor to full speed over RampFrames.
func CrosshairSpeed(cfg *config.CrosshairConfig, heldFrames uint16) float32 {
	if cfg.RampFrames == 0 {
		return cfg.Speed
	}
	t := float32(min(heldFrames, cfg.RampFrames))
	factor := ease.OutQuad(t, cfg.MinFactor, 1-cfg.MinFactor, float32(cfg.RampFrames))
	return float32(factor * cfg.Speed)
}

// MoveCrosshair steers the crosshair with the defender's directional input,
// clamped to the arena.
func MoveCrosshair(s *sim.State) {
	defenders := s.Sorted(filter.Contains(components.Defender, components.DefenderControls))
	if len(defenders) == 0 {
		return
	}
	c := components.DefenderControls.GetValue(defenders[0])
	dir := gamemath.V(c.Horizontal, c.Vertical)

	halfW, halfH := s.Level.Width/2, s.Level.Height/2
	for _, e := range s.Sorted(filter.Contains(components.Crosshair, components.Pos)) {
		ch := components.Crosshair.Get(e)
		if dir == gamemath.Zero {
			ch.HeldFrames = 0
			continue
		}
		if ch.HeldFrames < s.Config.Crosshair.RampFrames {
			ch.HeldFrames++
		}
		pos := components.Pos.Get(e)
		*pos = pos.Add(dir.Scale(CrosshairSpeed(&s.Config.Crosshair, ch.HeldFrames)))
		pos.X = gamemath.Clamp(pos.X, -halfW, halfW)
		pos.Y = gamemath.Clamp(pos.Y, -halfH, halfH)
	}
}
