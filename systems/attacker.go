package systems

import (
	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Grounded reports whether id stood on something during the last physics
// step. Normals point from A to B, so standing on B means normal.y < 0.
func Grounded(s *sim.State, id components.RollbackID) bool {
	for _, c := range s.StaticContacts {
		if c.A == id && c.Normal.Y < 0 {
			return true
		}
	}
	for _, c := range s.Contacts {
		if (c.A == id && c.Normal.Y < 0) || (c.B == id && c.Normal.Y > 0) {
			return true
		}
	}
	return false
}

// UpdateAttackerStates advances every attacker's state machine from the
// velocity and contacts left by the previous physics step. Must run before
// ApplyInputs and MoveAttackers.
func UpdateAttackerStates(s *sim.State) {
	for _, e := range s.Sorted(filter.Contains(components.Attacker, components.AttackerState)) {
		st := components.AttackerState.Get(e)
		grounded := Grounded(s, components.Rollback.GetValue(e))
		horizontal := components.AttackerControls.Get(e).Horizontal
		NextAttackerState(st, components.Vel.GetValue(e), horizontal, grounded, &s.Config.Attacker)
	}
}

// NextAttackerState applies one frame of the attacker state machine to st.
func NextAttackerState(st *components.AttackerStateData, vel gamemath.Vec2, horizontal float32, grounded bool, cfg *config.AttackerConfig) {
	eps := cfg.IdleThresh
	switch st.ID {
	case config.AttackerIdle:
		switch {
		case vel.Y < -eps:
			st.Enter(config.AttackerFall)
		case vel.Y > eps:
			st.Enter(config.AttackerJump)
		case gamemath.Abs(horizontal) > eps:
			st.Enter(config.AttackerWalk)
		default:
			st.Tick()
		}
	case config.AttackerJump:
		if vel.Y <= eps {
			st.Enter(config.AttackerFall)
		} else {
			st.Tick()
		}
	case config.AttackerFall:
		if grounded {
			st.Enter(config.AttackerLand)
		} else {
			st.Tick()
		}
	case config.AttackerLand:
		switch {
		case vel.Y < -eps:
			st.Enter(config.AttackerFall)
		case st.Frames >= cfg.LandFrames:
			st.Enter(config.AttackerIdle)
		default:
			st.Tick()
		}
	case config.AttackerWalk:
		switch {
		case vel.Y < -eps:
			st.Enter(config.AttackerFall)
		case vel.Y > eps:
			st.Enter(config.AttackerJump)
		case gamemath.Abs(horizontal) <= eps:
			st.Enter(config.AttackerIdle)
		default:
			st.Tick()
		}
	case config.AttackerHit:
		if st.Frames >= cfg.StunFrames {
			st.Enter(config.AttackerIdle)
		} else {
			st.Tick()
		}
	}
}

// MoveAttackers turns control intents into velocity. Horizontal velocity is
// overwritten every frame.
func MoveAttackers(s *sim.State) {
	cfg := &s.Config.Attacker
	jumpSpeed := gamemath.Sqrt(float32(-2 * cfg.JumpHeight * s.Gravity.Y))
	for _, e := range s.Sorted(filter.Contains(components.Attacker, components.Vel)) {
		st := components.AttackerState.GetValue(e)
		c := components.AttackerControls.GetValue(e)
		vel := components.Vel.Get(e)

		vel.X = 0
		if st.CanWalk() {
			vel.X = float32(c.Horizontal * cfg.MaxSpeed)
		}
		if c.Vertical > 0 && st.CanJump() {
			vel.Y = float32(c.Vertical * jumpSpeed)
		}
		updateFacing(e, c.Horizontal)
	}
}

func updateFacing(e *donburi.Entry, horizontal float32) {
	if horizontal != 0 && e.HasComponent(components.Facing) {
		components.Facing.SetValue(e, gamemath.Signum(horizontal))
	}
}
