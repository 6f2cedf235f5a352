package components

import (
	"math"

	"github.com/automoto/janitors-nightmare/config"
	"github.com/yohamta/donburi"
)

// AttackerStateData is the janitor's state plus the number of frames spent in it.
type AttackerStateData struct {
	ID     config.AttackerStateID
	Frames uint16
}

func NewAttackerState(id config.AttackerStateID) AttackerStateData {
	return AttackerStateData{ID: id}
}

// Enter switches state and resets the counter.
func (s *AttackerStateData) Enter(id config.AttackerStateID) {
	s.ID = id
	s.Frames = 0
}

// Tick counts one more frame in the current state.
func (s *AttackerStateData) Tick() {
	if s.Frames < math.MaxUint16 {
		s.Frames++
	}
}

func (s AttackerStateData) IsGrounded() bool {
	switch s.ID {
	case config.AttackerIdle, config.AttackerLand, config.AttackerWalk:
		return true
	}
	return false
}

func (s AttackerStateData) CanJump() bool {
	return s.ID == config.AttackerIdle || s.ID == config.AttackerWalk
}

func (s AttackerStateData) CanWalk() bool {
	return s.ID != config.AttackerHit
}

func (s AttackerStateData) CanClean() bool {
	switch s.ID {
	case config.AttackerIdle, config.AttackerWalk, config.AttackerLand:
		return true
	}
	return false
}

var AttackerState = donburi.NewComponentType[AttackerStateData]()

// DefenderStateData is the fortress' state plus the number of frames spent in it.
type DefenderStateData struct {
	ID     config.DefenderStateID
	Frames uint16
}

func (s *DefenderStateData) Enter(id config.DefenderStateID) {
	s.ID = id
	s.Frames = 0
}

func (s *DefenderStateData) Tick() {
	if s.Frames < math.MaxUint16 {
		s.Frames++
	}
}

var DefenderState = donburi.NewComponentType[DefenderStateData]()
