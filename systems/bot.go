package systems

import (
	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/input"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/yohamta/donburi/filter"
)

// Bot produces inputs for one player from the simulation state. It only reads
// the state, and it decides purely from what it sees, so two bots fed the
// same frames press the same buttons. Its own memory lives outside the
// simulation; replays record the bits it produced, not the bot.
type Bot struct {
	Handle     int
	Difficulty config.BotDifficulty

	held     input.Bits
	decided  bool
	lastFire bool
}

func NewBot(handle int, d config.BotDifficulty) *Bot {
	return &Bot{Handle: handle, Difficulty: d}
}

// Input returns the bits for this frame. Between decisions the previous
// choice is held, which is what makes easier bots slower.
func (b *Bot) Input(s *sim.State) input.Bits {
	if s.Round != config.Round {
		b.decided = false
		return 0
	}
	d := config.BotDifficulties[b.Difficulty]
	if b.decided && d.ReactionDelay > 0 && s.Frame%d.ReactionDelay != 0 {
		return b.held &^ input.Action | b.fire(s)
	}
	b.decided = true

	attacker, _ := s.Handles()
	if b.Handle == attacker {
		b.held = b.janitor(s, d)
	} else {
		b.held = b.fortress(s, d)
	}
	return b.held
}

// fire keeps the defender's trigger edge alive between decisions.
func (b *Bot) fire(s *sim.State) input.Bits {
	if attacker, _ := s.Handles(); b.Handle == attacker {
		return b.held & input.Action
	}
	if b.held&input.Action == 0 {
		return 0
	}
	b.lastFire = !b.lastFire
	if b.lastFire {
		return input.Action
	}
	return 0
}

func (b *Bot) janitor(s *sim.State, d config.BotDifficultyConfig) input.Bits {
	self := s.Sorted(filter.Contains(components.Attacker))
	if len(self) == 0 {
		return 0
	}
	pos := components.Pos.GetValue(self[0])

	// Dodge the closest falling cake first.
	for _, cake := range s.Sorted(filter.Contains(components.Cake)) {
		cp := components.Pos.GetValue(cake)
		if cp.Y > pos.Y && gamemath.Abs(cp.X-pos.X) < d.DodgeRange && components.Vel.GetValue(cake).Y < 0 {
			if cp.X > pos.X {
				return input.Left
			}
			return input.Right
		}
	}

	splats := s.Sorted(filter.Contains(components.Splat))
	if len(splats) == 0 {
		return 0
	}
	best := components.Pos.GetValue(splats[0])
	for _, sp := range splats[1:] {
		p := components.Pos.GetValue(sp)
		if gamemath.Abs(p.X-pos.X) < gamemath.Abs(best.X-pos.X) {
			best = p
		}
	}
	dx := best.X - pos.X
	reach := s.Config.Attacker.CleanReach / 2
	switch {
	case dx > reach:
		return input.Right
	case dx < -reach:
		return input.Left
	}
	return input.Action
}

func (b *Bot) fortress(s *sim.State, d config.BotDifficultyConfig) input.Bits {
	targets := s.Sorted(filter.Contains(components.Attacker))
	crosshairs := s.Sorted(filter.Contains(components.Crosshair))
	if len(targets) == 0 || len(crosshairs) == 0 {
		return 0
	}
	delta := components.Pos.GetValue(targets[0]).Sub(components.Pos.GetValue(crosshairs[0]))

	var bits input.Bits
	switch {
	case delta.X > d.AimTolerance/2:
		bits |= input.Right
	case delta.X < -d.AimTolerance/2:
		bits |= input.Left
	}
	switch {
	case delta.Y > d.AimTolerance/2:
		bits |= input.Up
	case delta.Y < -d.AimTolerance/2:
		bits |= input.Down
	}
	if delta.LengthSquared() <= float32(d.AimTolerance*d.AimTolerance) {
		bits |= input.Action
	}
	return bits
}
